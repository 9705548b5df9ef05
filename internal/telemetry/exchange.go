package telemetry

import (
	"context"
	"time"

	"github.com/petasbytes/agente/internal/metrics"
)

// Exchange describes one completed (or failed) completion call.
type Exchange struct {
	Surface    string // "direct", "chat" or "http"
	HistoryLen int
	Prompt     string
	Reply      string
	ErrorKind  string // empty on success
	Duration   time.Duration
}

// EmitExchange records ex as an "exchange" event. Prompt and reply are
// reduced to text features.
func EmitExchange(ctx context.Context, ex Exchange) {
	if !ObserveEnabled() {
		return
	}
	turnID, _ := TurnIDFromContext(ctx)
	fields := map[string]any{
		"turn_id":          turnID,
		"surface":          ex.Surface,
		"history_len":      ex.HistoryLen,
		"duration_ms":      ex.Duration.Milliseconds(),
		"features_version": "1",
		"prompt":           featureMap(metrics.CountFeatures(ex.Prompt)),
	}
	if ex.ErrorKind != "" {
		fields["error"] = ex.ErrorKind
	} else {
		fields["error"] = nil
		fields["reply"] = featureMap(metrics.CountFeatures(ex.Reply))
	}
	Emit("exchange", fields)
}

func featureMap(f metrics.Features) map[string]any {
	return map[string]any{
		"bytes": f.Bytes,
		"runes": f.Runes,
		"words": f.Words,
		"lines": f.Lines,
	}
}
