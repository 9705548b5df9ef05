// Package tui is the terminal chat surface over a session.Session.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/petasbytes/agente/internal/session"
	"github.com/petasbytes/agente/memory"
)

// Commands typed into the input instead of a prompt.
const (
	CmdReset = "/limpar"
	CmdQuit  = "/sair"
)

const (
	headerHeight = 1
	footerHeight = 2
	inputHeight  = 5
)

// replyMsg carries the entry one Submit appended for the reply.
type replyMsg struct {
	entry session.Entry
}

// Model renders one session. While a reply is pending the input is locked,
// so the session only ever has one Submit in flight.
type Model struct {
	ctx  context.Context
	sess *session.Session

	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	styles   styles

	// transcript mirrors sess.Display(); while pending it already holds the
	// prompt awaiting a reply.
	transcript []session.Entry
	notice     string
	pending    bool
	ready      bool
	width      int
	height     int
}

func New(ctx context.Context, sess *session.Session) Model {
	st := defaultStyles()

	ta := textarea.New()
	ta.Placeholder = "Digite sua mensagem... (Enter envia)"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(3)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.Spinner

	return Model{
		ctx:        ctx,
		sess:       sess,
		textarea:   ta,
		spinner:    sp,
		styles:     st,
		transcript: sess.Display(),
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.pending {
				return m, nil
			}
			return m.handleInput(m.textarea.Value())
		}
		if m.pending {
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case replyMsg:
		m.pending = false
		m.transcript = append(m.transcript, msg.entry)
		m.textarea.Focus()
		m.refresh()
		return m, nil
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)
	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

func (m Model) handleInput(raw string) (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(raw)
	m.textarea.Reset()
	m.notice = ""

	switch text {
	case "":
		return m, nil
	case CmdQuit:
		return m, tea.Quit
	case CmdReset:
		m.sess.Reset()
		m.transcript = nil
		m.notice = "Conversa reiniciada."
		m.refresh()
		return m, nil
	}

	m.pending = true
	m.transcript = append(m.transcript, session.Entry{Role: memory.RoleUser, Content: text})
	m.textarea.Blur()
	m.refresh()
	return m, tea.Batch(m.submit(text), m.spinner.Tick)
}

func (m Model) submit(text string) tea.Cmd {
	ctx, sess := m.ctx, m.sess
	return func() tea.Msg {
		// Submit reports provider failures as a Failed entry as well as an
		// error; the entry is all the transcript needs.
		e, _ := sess.Submit(ctx, text)
		return replyMsg{entry: e}
	}
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	vpHeight := h - headerHeight - footerHeight - inputHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	if w < 1 {
		w = 1
	}
	if !m.ready {
		m.viewport = viewport.New(w, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = w
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(max(w-4, 1))

	wrap := max(w-4, 10)
	if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wrap)); err == nil {
		m.renderer = r
	}
	m.refresh()
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}
