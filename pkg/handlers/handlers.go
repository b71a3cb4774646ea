package handlers

import (
	"github.com/chris/wager-escrow/pkg/api"
	"github.com/chris/wager-escrow/pkg/handlers/ledger"
	"github.com/chris/wager-escrow/pkg/handlers/wagers"
	"github.com/chris/wager-escrow/pkg/handlers/wallets"
	"github.com/chris/wager-escrow/pkg/scheduler"
	"github.com/chris/wager-escrow/pkg/storage"
)

// ApiHandler implements the generated server interface by composing the
// per-resource handlers.
type ApiHandler struct {
	*wagers.WagersHandler
	*wallets.WalletsHandler
	*ledger.LedgerHandler
}

// Config holds the dependencies of the API.
type Config struct {
	Ledger      wagers.Ledger
	Store       storage.ApiStore
	Scheduler   scheduler.ResolutionScheduler
	SeedBalance int64
}

// NewApiHandler creates a new ApiHandler. A nil Scheduler disables delayed resolution.
func NewApiHandler(cfg Config) *ApiHandler {
	return &ApiHandler{
		WagersHandler:  wagers.NewWagersHandler(cfg.Ledger, cfg.Scheduler),
		WalletsHandler: wallets.NewWalletsHandler(cfg.Store, cfg.SeedBalance),
		LedgerHandler:  ledger.NewLedgerHandler(cfg.Store),
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)
