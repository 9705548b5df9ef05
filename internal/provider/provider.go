// Package provider issues completion requests to a hosted model and
// classifies their failures.
//
// Every Complete call makes exactly one outbound request. SDK-level retries
// are disabled; a failure is terminal for the request that triggered it.
//
// Replies are trimmed of surrounding whitespace. A reply with no text left,
// or no choice or text block at all, fails with ErrEmptyResponse on every
// backend.
package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/petasbytes/agente/internal/config"
	"github.com/petasbytes/agente/memory"
)

// Client turns an ordered message list into the model's reply text.
// A non-nil error is always a *Error.
type Client interface {
	Complete(ctx context.Context, msgs []memory.Message) (string, error)
}

// New returns the backend named by cfg.Provider. hc may be nil to use the
// SDK default transport. A missing API key is not an error here; it is
// reported by Complete so one-shot callers can surface it per call.
func New(cfg config.Config, hc *http.Client) (Client, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		return NewOpenAI(cfg, hc), nil
	case config.ProviderAnthropic:
		return NewAnthropic(cfg, hc), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// withDeadline applies the configured timeout unless ctx already has one.
func withDeadline(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func checkRequest(apiKey string, msgs []memory.Message) error {
	if apiKey == "" {
		return Classify(config.ErrMissingAPIKey)
	}
	if len(msgs) == 0 {
		return &Error{Kind: KindUnknown, Err: fmt.Errorf("empty message list")}
	}
	return nil
}
