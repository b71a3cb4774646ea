package storage

import (
	"context"

	"github.com/chris/wager-escrow/pkg/models"
)

// WalletStore defines the interface for managing wallets.
type WalletStore interface {
	// GetWallet retrieves a user's wallet. Returns ErrWalletNotFound if absent.
	GetWallet(ctx context.Context, userID string) (*models.Wallet, error)

	// CreateWallet creates a new wallet. Returns ErrWalletExists on duplicates.
	CreateWallet(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error)

	DeleteWallet(ctx context.Context, userID string) error

	ListWallets(ctx context.Context) ([]models.Wallet, error)
}
