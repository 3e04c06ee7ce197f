package fallback

import (
	"context"
	"log/slog"

	"github.com/abhisek/lingua/internal/store"
)

// EventObserver records every attempt in the service event log under kind.
// Write failures are logged and otherwise ignored.
func EventObserver(repo store.EventRepo, kind string) Observer {
	return func(ctx context.Context, c Call) {
		data := store.ServiceCallEventData{
			Kind:      kind,
			Provider:  c.Strategy,
			LatencyMs: c.Latency.Milliseconds(),
			Success:   c.Err == nil,
		}
		if c.Err != nil {
			data.ErrorMessage = string(c.Reason) + ": " + c.Err.Error()
		}
		// The request context may already be done; the record should still land.
		if err := repo.AppendServiceCall(context.WithoutCancel(ctx), data); err != nil {
			slog.Warn("record service call", "kind", kind, "provider", c.Strategy, "error", err)
		}
	}
}
