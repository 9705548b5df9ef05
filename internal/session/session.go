// Package session holds the state of one interactive chat: what the user
// sees and what the model remembers.
//
// The two differ on failure. A failed exchange shows the error to the user
// but leaves the model's memory as it was, so the next prompt is sent with
// only the successful turns.
package session

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/petasbytes/agente/internal/provider"
	"github.com/petasbytes/agente/internal/runner"
	"github.com/petasbytes/agente/internal/telemetry"
	"github.com/petasbytes/agente/memory"
)

// ErrBlankInput is returned by Submit for whitespace-only text.
var ErrBlankInput = errors.New("blank input")

// Entry is one line of the visible transcript.
type Entry struct {
	Role    memory.Role
	Content string
	Failed  bool
}

// Session is single-writer: callers must not Submit concurrently.
type Session struct {
	ID      string
	runner  *runner.Runner
	memory  *memory.Conversation
	display []Entry
	turns   int
}

func New(r *runner.Runner) *Session {
	return &Session{
		ID:     uuid.NewString(),
		runner: r,
		memory: memory.NewConversation(),
	}
}

// Submit sends text through the runner and returns the entry appended for
// the reply. On a provider failure the returned entry is marked Failed,
// carries the user message, and err is the *provider.Error.
func (s *Session) Submit(ctx context.Context, text string) (Entry, error) {
	if strings.TrimSpace(text) == "" {
		return Entry{}, ErrBlankInput
	}
	s.display = append(s.display, Entry{Role: memory.RoleUser, Content: text})

	s.turns++
	ctx = telemetry.WithTurnID(ctx, s.turnID())
	reply, err := s.runner.Exchange(ctx, s.memory, text)
	if err != nil {
		perr := provider.Classify(err)
		e := Entry{Role: memory.RoleAssistant, Content: perr.UserMessage(), Failed: true}
		s.display = append(s.display, e)
		return e, perr
	}
	e := Entry{Role: memory.RoleAssistant, Content: reply}
	s.display = append(s.display, e)
	return e, nil
}

func (s *Session) turnID() string {
	return s.ID + "/" + strconv.Itoa(s.turns)
}

// Display returns a copy of the visible transcript.
func (s *Session) Display() []Entry {
	out := make([]Entry, len(s.display))
	copy(out, s.display)
	return out
}

// Memory returns a copy of the model-facing history.
func (s *Session) Memory() []memory.Message {
	return s.memory.Snapshot()
}

// Reset drops both transcript and memory and starts a new session id.
func (s *Session) Reset() {
	s.display = nil
	s.memory.Reset()
	s.turns = 0
	s.ID = uuid.NewString()
}
