package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/petasbytes/agente/memory"
)

func (m Model) View() string {
	if !m.ready {
		return "Inicializando..."
	}

	var status string
	if m.pending {
		status = m.spinner.View() + " Pensando..."
	} else {
		status = m.styles.Help.Render("Enter envia · " + CmdReset + " reinicia · Esc sai")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Agente Simples"),
		m.viewport.View(),
		status,
		m.styles.Input.Render(m.textarea.View()),
	)
}

func (m Model) renderTranscript() string {
	var sb strings.Builder
	if m.notice != "" {
		sb.WriteString(m.styles.Notice.Render(m.notice))
		sb.WriteString("\n")
	}
	for _, e := range m.transcript {
		switch {
		case e.Role == memory.RoleUser:
			sb.WriteString(m.styles.User.Render("Você") + "\n")
			sb.WriteString(e.Content)
			sb.WriteString("\n")
		case e.Failed:
			sb.WriteString(m.styles.Assistant.Render("Agente") + "\n")
			sb.WriteString(m.styles.Failed.Render(e.Content))
			sb.WriteString("\n")
		default:
			sb.WriteString(m.styles.Assistant.Render("Agente") + "\n")
			sb.WriteString(m.renderMarkdown(e.Content))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// renderMarkdown falls back to the raw text if glamour fails or panics.
func (m Model) renderMarkdown(content string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = content
		}
	}()
	if m.renderer == nil || content == "" {
		return content
	}
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}
