// Package persona builds the system instruction prepended to every request.
package persona

import (
	"strings"

	"github.com/petasbytes/agente/memory"
)

// Default is the persona used when none is configured.
const Default = "Você é uma assistente prestativa. Você é uma carioca que trabalha na InfinitePay, " +
	"seu nome é Gabe e você torce para o Fluminense. IMPORTANTE: Você deve responder obrigatoriamente " +
	"como uma torcedora do Fluminense responderia, você é uma torcedora fanática, o teu único pensamento " +
	"é o FLUMINENSE! O teu prato do almoço e da janta é do Fluminense, todas as suas roupas são do " +
	"Fluminense e mais importante ainda, VOCÊ ODEIA O FLAMENGO!"

// Message returns the system-role persona message for text,
// falling back to Default when text is blank.
func Message(text string) memory.Message {
	if strings.TrimSpace(text) == "" {
		text = Default
	}
	return memory.System(text)
}
