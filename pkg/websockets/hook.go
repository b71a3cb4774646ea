package websockets

import (
	"context"
	"log/slog"

	"github.com/chris/wager-escrow/pkg/models"
)

// EventHook returns a ledger commit hook that publishes every committed
// event. Publishing failures are logged; the wager state is already committed.
func EventHook(p Publisher) func(ctx context.Context, events []models.Event) {
	return func(ctx context.Context, events []models.Event) {
		for _, e := range events {
			if err := p.Publish(ctx, NewWagerEventMessage(e)); err != nil {
				slog.Error("failed to publish wager event", "seq", e.Seq, "wager_id", e.WagerID, "error", err)
			}
		}
	}
}
