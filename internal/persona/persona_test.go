package persona_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petasbytes/agente/internal/persona"
	"github.com/petasbytes/agente/memory"
)

func TestMessage_DefaultWhenBlank(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t"} {
		m := persona.Message(in)
		assert.Equal(t, memory.RoleSystem, m.Role)
		assert.Equal(t, persona.Default, m.Content)
	}
}

func TestMessage_Configured(t *testing.T) {
	m := persona.Message("Você é um assistente útil.")
	assert.Equal(t, memory.System("Você é um assistente útil."), m)
}
