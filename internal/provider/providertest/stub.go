// Package providertest provides a scripted provider.Client for tests.
package providertest

import (
	"context"
	"fmt"
	"sync"

	"github.com/petasbytes/agente/internal/provider"
	"github.com/petasbytes/agente/memory"
)

// Step is one scripted outcome: Reply on success, or Err (classified).
type Step struct {
	Reply string
	Err   error
}

// Stub replays Steps in order and records every request it receives.
// When the script runs out it echoes the last user message.
type Stub struct {
	mu       sync.Mutex
	steps    []Step
	requests [][]memory.Message
}

func New(steps ...Step) *Stub {
	return &Stub{steps: steps}
}

// Reply is shorthand for a successful Step.
func Reply(text string) Step { return Step{Reply: text} }

// Fail is shorthand for a failing Step.
func Fail(err error) Step { return Step{Err: err} }

func (s *Stub) Complete(_ context.Context, msgs []memory.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]memory.Message, len(msgs))
	copy(cp, msgs)
	s.requests = append(s.requests, cp)

	if len(s.steps) == 0 {
		if len(msgs) == 0 {
			return "", provider.Classify(fmt.Errorf("empty message list"))
		}
		return "eco: " + msgs[len(msgs)-1].Content, nil
	}
	step := s.steps[0]
	s.steps = s.steps[1:]
	if step.Err != nil {
		return "", provider.Classify(step.Err)
	}
	return step.Reply, nil
}

// Requests returns copies of every request seen so far.
func (s *Stub) Requests() [][]memory.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]memory.Message, len(s.requests))
	copy(out, s.requests)
	return out
}

// Calls reports how many times Complete ran.
func (s *Stub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}
