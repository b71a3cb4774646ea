package ledger

import (
	"net/http"

	"github.com/chris/wager-escrow/pkg/api"
	"github.com/chris/wager-escrow/pkg/handlers/respond"
	"github.com/chris/wager-escrow/pkg/mapping"
	"github.com/chris/wager-escrow/pkg/storage"
)

// DefaultLimit is the number of entries returned when no limit is given.
const DefaultLimit = 20

// LedgerHandler serves the custody ledger.
type LedgerHandler struct {
	Store storage.LedgerReader
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(store storage.LedgerReader) *LedgerHandler {
	return &LedgerHandler{Store: store}
}

// ListLedgerEntries returns the most recent stake, refund and payout entries.
func (h *LedgerHandler) ListLedgerEntries(w http.ResponseWriter, r *http.Request, params api.ListLedgerEntriesParams) {
	limit := int32(DefaultLimit)
	if params.Limit != nil {
		limit = *params.Limit
	}
	if limit <= 0 {
		respond.BadRequest(w, "limit must be positive")
		return
	}

	domainEntries, err := h.Store.ListLedgerEntries(r.Context(), limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	apiEntries := make([]*api.LedgerEntry, len(domainEntries))
	for i, entry := range domainEntries {
		entry := entry
		apiEntries[i] = mapping.ToApiLedgerEntry(&entry)
	}
	respond.JSON(w, http.StatusOK, apiEntries)
}
