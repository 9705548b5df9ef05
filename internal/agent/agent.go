// Package agent is the direct-call entry point: one persona+prompt pair in,
// reply text or a readable error string out.
package agent

import (
	"context"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/petasbytes/agente/internal/config"
	"github.com/petasbytes/agente/internal/provider"
	"github.com/petasbytes/agente/internal/runner"
)

// Agent answers single prompts without memory. The provider client is
// created on first use so a missing credential only surfaces when a prompt
// is actually asked.
type Agent struct {
	cfg config.Config
	hc  *http.Client
	log *zap.Logger

	once    sync.Once
	runner  *runner.Runner
	initErr *provider.Error
}

type Option func(*Agent)

// WithHTTPClient routes provider traffic through hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *Agent) { a.hc = hc }
}

// WithLogger sets the logger; the default discards output.
func WithLogger(log *zap.Logger) Option {
	return func(a *Agent) { a.log = log }
}

func New(cfg config.Config, opts ...Option) *Agent {
	a := &Agent{cfg: cfg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Agent) init() {
	if a.cfg.APIKey == "" {
		a.initErr = provider.Classify(config.ErrMissingAPIKey)
		return
	}
	client, err := provider.New(a.cfg, a.hc)
	if err != nil {
		a.initErr = provider.Classify(err)
		return
	}
	a.runner = runner.New(client, a.cfg.Persona, runner.SurfaceDirect, a.log)
}

// Ask returns the model's reply to prompt, or the user-facing message of
// the classified failure. It never panics on provider errors.
func (a *Agent) Ask(ctx context.Context, prompt string) string {
	reply, err := a.AskErr(ctx, prompt)
	if err != nil {
		return err.UserMessage()
	}
	return reply
}

// AskErr is Ask with the classified error kept separate from the reply.
func (a *Agent) AskErr(ctx context.Context, prompt string) (string, *provider.Error) {
	a.once.Do(a.init)
	if a.initErr != nil {
		a.log.Warn("direct call rejected", zap.String("kind", a.initErr.Kind.String()))
		return "", a.initErr
	}
	reply, err := a.runner.Exchange(ctx, nil, prompt)
	if err != nil {
		return "", provider.Classify(err)
	}
	return reply, nil
}
