package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petasbytes/agente/internal/provider/providertest"
	"github.com/petasbytes/agente/internal/runner"
	"github.com/petasbytes/agente/internal/session"
)

func newTestModel(t *testing.T, steps ...providertest.Step) (Model, *providertest.Stub) {
	t.Helper()
	stub := providertest.New(steps...)
	sess := session.New(runner.New(stub, "", runner.SurfaceChat, nil))
	m := New(context.Background(), sess)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return next.(Model), stub
}

func typeAndSend(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.textarea.SetValue(text)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

// replyFrom runs the batched submit command and returns its replyMsg.
func replyFrom(t *testing.T, cmd tea.Cmd) replyMsg {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok, "expected batch of submit and spinner tick")
	for _, c := range batch {
		if c == nil {
			continue
		}
		if r, ok := c().(replyMsg); ok {
			return r
		}
	}
	t.Fatal("no replyMsg in batch")
	return replyMsg{}
}

func TestView_BeforeResize(t *testing.T) {
	stub := providertest.New()
	m := New(context.Background(), session.New(runner.New(stub, "", runner.SurfaceChat, nil)))
	assert.Equal(t, "Inicializando...", m.View())
}

func TestSubmit_RoundTrip(t *testing.T) {
	m, stub := newTestModel(t, providertest.Reply("Vamos, Flu!"))

	m, cmd := typeAndSend(t, m, "Oi")
	assert.True(t, m.pending)
	assert.Empty(t, m.textarea.Value())
	assert.Contains(t, m.View(), "Pensando...")
	assert.Contains(t, m.View(), "Oi")

	reply := replyFrom(t, cmd)
	assert.False(t, reply.entry.Failed)
	next, _ := m.Update(reply)
	m = next.(Model)

	assert.False(t, m.pending)
	assert.Equal(t, m.sess.Display(), m.transcript)
	assert.Contains(t, m.View(), "Vamos, Flu!")
	assert.NotContains(t, m.View(), "Pensando...")
	assert.Equal(t, 1, stub.Calls())
}

func TestSubmit_FailureIsRendered(t *testing.T) {
	m, _ := newTestModel(t, providertest.Fail(errors.New("boom")))

	m, cmd := typeAndSend(t, m, "Oi")
	reply := replyFrom(t, cmd)
	assert.True(t, reply.entry.Failed)

	next, _ := m.Update(reply)
	m = next.(Model)
	assert.Contains(t, m.View(), "Erro inesperado")
	assert.Empty(t, m.sess.Memory())
}

func TestEnterIgnoredWhilePending(t *testing.T) {
	m, stub := newTestModel(t, providertest.Reply("r1"))

	m, _ = typeAndSend(t, m, "A")
	m, cmd := typeAndSend(t, m, "B")
	assert.Nil(t, cmd)
	assert.Zero(t, stub.Calls(), "submit command has not been run yet")
}

func TestBlankInputDoesNothing(t *testing.T) {
	m, stub := newTestModel(t)
	m, cmd := typeAndSend(t, m, "   ")
	assert.Nil(t, cmd)
	assert.False(t, m.pending)
	assert.Zero(t, stub.Calls())
}

func TestResetCommand(t *testing.T) {
	m, _ := newTestModel(t, providertest.Reply("r1"))
	m, cmd := typeAndSend(t, m, "A")
	next, _ := m.Update(replyFrom(t, cmd))
	m = next.(Model)
	require.Len(t, m.sess.Memory(), 2)

	m, cmd = typeAndSend(t, m, CmdReset)
	assert.Nil(t, cmd)
	assert.Empty(t, m.sess.Memory())
	assert.Empty(t, m.transcript)
	assert.Contains(t, m.View(), "Conversa reiniciada.")
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		m, _ := newTestModel(t)
		_, cmd := m.Update(tea.KeyMsg{Type: k})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}

	m, _ := newTestModel(t)
	_, cmd := typeAndSend(t, m, CmdQuit)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSpinnerTickIgnoredWhenIdle(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(m.spinner.Tick())
	assert.Nil(t, cmd)
}
