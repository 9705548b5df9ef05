package runner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/petasbytes/agente/internal/metrics"
	"github.com/petasbytes/agente/internal/persona"
	"github.com/petasbytes/agente/internal/provider"
	"github.com/petasbytes/agente/internal/telemetry"
	"github.com/petasbytes/agente/memory"
)

// Surfaces label the entry point in logs and telemetry.
const (
	SurfaceDirect = "direct"
	SurfaceChat   = "chat"
	SurfaceHTTP   = "http"
)

type Runner struct {
	Client  provider.Client
	Persona memory.Message
	Surface string
	Log     *zap.Logger
}

// New returns a Runner for surface. A blank personaText selects the default
// persona; a nil log discards output.
func New(client provider.Client, personaText, surface string, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		Client:  client,
		Persona: persona.Message(personaText),
		Surface: surface,
		Log:     log.With(zap.String("surface", surface)),
	}
}

// BuildRequest returns a newly allocated [persona] + history + [user(input)].
func BuildRequest(personaMsg memory.Message, history []memory.Message, input string) []memory.Message {
	req := make([]memory.Message, 0, len(history)+2)
	req = append(req, personaMsg)
	req = append(req, history...)
	return append(req, memory.User(input))
}

// Exchange sends input with the persona and conv's history, and on success
// records the turn in conv. conv may be nil for stateless callers. A
// non-nil error is always a *provider.Error and leaves conv untouched.
func (r *Runner) Exchange(ctx context.Context, conv *memory.Conversation, input string) (string, error) {
	ctx, turnID := telemetry.EnsureTurnID(ctx)
	history := conv.Snapshot()
	req := BuildRequest(r.Persona, history, input)

	log := r.Log.With(zap.String("turn_id", turnID), zap.Int("history_len", len(history)))
	log.Debug("exchange started", metrics.CountFeatures(input).Fields("prompt")...)

	start := time.Now()
	reply, err := r.Client.Complete(ctx, req)
	elapsed := time.Since(start)

	ex := telemetry.Exchange{
		Surface:    r.Surface,
		HistoryLen: len(history),
		Prompt:     input,
		Duration:   elapsed,
	}
	if err != nil {
		perr := provider.Classify(err)
		ex.ErrorKind = perr.Kind.String()
		telemetry.EmitExchange(ctx, ex)
		log.Warn("exchange failed",
			zap.String("kind", perr.Kind.String()),
			zap.Bool("retryable", perr.Kind.Retryable()),
			zap.Int("upstream_status", perr.Status),
			zap.Duration("elapsed", elapsed),
			zap.Error(perr.Err),
		)
		return "", perr
	}

	ex.Reply = reply
	telemetry.EmitExchange(ctx, ex)
	log.Info("exchange completed",
		append(metrics.CountFeatures(reply).Fields("reply"), zap.Duration("elapsed", elapsed))...,
	)
	if conv != nil {
		conv.AppendTurn(input, reply)
	}
	return reply, nil
}
