package wallets

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/chris/wager-escrow/pkg/api"
	"github.com/chris/wager-escrow/pkg/handlers/respond"
	"github.com/chris/wager-escrow/pkg/mapping"
	"github.com/chris/wager-escrow/pkg/models"
	"github.com/chris/wager-escrow/pkg/storage"
)

// WalletsHandler holds the dependencies for wallet-related handlers.
type WalletsHandler struct {
	Store       storage.WalletStore
	SeedBalance int64
}

// NewWalletsHandler creates a new WalletsHandler. New wallets start with seed units.
func NewWalletsHandler(store storage.WalletStore, seed int64) *WalletsHandler {
	return &WalletsHandler{Store: store, SeedBalance: seed}
}

// CreateWallet handles the logic for creating a new wallet.
func (h *WalletsHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	var newWallet api.NewWallet
	if err := json.NewDecoder(r.Body).Decode(&newWallet); err != nil {
		respond.BadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(newWallet.UserId) == "" {
		respond.BadRequest(w, "user_id is required")
		return
	}
	// The escrow account is not a user wallet.
	if newWallet.UserId == models.EscrowAccount {
		respond.BadRequest(w, fmt.Sprintf("user_id %q is reserved", models.EscrowAccount))
		return
	}

	domainWallet := mapping.ToDomainNewWallet(&newWallet, h.SeedBalance)
	domainWallet.CreatedAt = time.Now()

	createdWallet, err := h.Store.CreateWallet(r.Context(), domainWallet)
	if err != nil {
		if errors.Is(err, storage.ErrWalletExists) {
			respond.Fail(w, http.StatusConflict, respond.KindWalletExists, "Wallet for this user already exists")
		} else {
			respond.Error(w, r, err)
		}
		return
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiWallet(createdWallet))
}

// DeleteWallet handles the logic for deleting a user's wallet.
func (h *WalletsHandler) DeleteWallet(w http.ResponseWriter, r *http.Request, userId string) {
	if err := h.Store.DeleteWallet(r.Context(), userId); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListWallets handles the logic for retrieving all wallets, newest first.
func (h *WalletsHandler) ListWallets(w http.ResponseWriter, r *http.Request) {
	domainWallets, err := h.Store.ListWallets(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	sort.SliceStable(domainWallets, func(i, j int) bool {
		return domainWallets[i].CreatedAt.After(domainWallets[j].CreatedAt)
	})

	apiWallets := make([]*api.Wallet, len(domainWallets))
	for i, wallet := range domainWallets {
		apiWallets[i] = mapping.ToApiWallet(&wallet)
	}
	respond.JSON(w, http.StatusOK, apiWallets)
}

// GetWalletByUserId handles the logic for retrieving a user's wallet.
func (h *WalletsHandler) GetWalletByUserId(w http.ResponseWriter, r *http.Request, userId string) {
	domainWallet, err := h.Store.GetWallet(r.Context(), userId)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiWallet(domainWallet))
}
