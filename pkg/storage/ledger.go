package storage

import (
	"context"

	"github.com/chris/wager-escrow/pkg/models"
)

// LedgerReader defines the interface for reading custody ledger entries.
type LedgerReader interface {
	// ListLedgerEntries retrieves the most recent ledger entries, newest first.
	ListLedgerEntries(ctx context.Context, limit int32) ([]models.LedgerEntry, error)
}
