package escrow

import (
	"errors"

	"github.com/chris/wager-escrow/pkg/storage"
)

var (
	// ErrInvalidStake is returned when a wager is created without a positive stake.
	ErrInvalidStake = errors.New("stake must be positive")
	// ErrNotFound is returned when no wager has the requested id.
	ErrNotFound = errors.New("wager does not exist")
	// ErrNotOpen is returned when a wager is not open for acceptance or cancellation.
	ErrNotOpen = errors.New("wager is not open")
	// ErrNotMatched is returned when resolving a wager that has no challenger.
	ErrNotMatched = errors.New("wager is not matched")
	// ErrSelfMatch is returned when the creator tries to accept their own wager.
	ErrSelfMatch = errors.New("cannot accept your own wager")
	// ErrAlreadyMatched is returned when the wager already has a challenger.
	ErrAlreadyMatched = errors.New("wager already has a challenger")
	// ErrStakeMismatch is returned when the challenger's payment differs from the creator's stake.
	ErrStakeMismatch = errors.New("stake must match the creator's stake exactly")
	// ErrUnauthorized is returned when the caller may not perform the operation.
	ErrUnauthorized = errors.New("caller is not authorized")
)

// Kind names an error class in a stable form for APIs and metrics.
type Kind string

const (
	KindNone              Kind = ""
	KindInvalidStake      Kind = "InvalidStake"
	KindNotFound          Kind = "NotFound"
	KindNotOpen           Kind = "NotOpen"
	KindNotMatched        Kind = "NotMatched"
	KindSelfMatch         Kind = "SelfMatch"
	KindAlreadyMatched    Kind = "AlreadyMatched"
	KindStakeMismatch     Kind = "StakeMismatch"
	KindUnauthorized      Kind = "Unauthorized"
	KindInsufficientFunds Kind = "InsufficientFunds"
	KindWalletNotFound    Kind = "WalletNotFound"
	KindConflict          Kind = "Conflict"
	KindInternal          Kind = "Internal"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrInvalidStake, KindInvalidStake},
	{ErrNotFound, KindNotFound},
	{ErrNotOpen, KindNotOpen},
	{ErrNotMatched, KindNotMatched},
	{ErrSelfMatch, KindSelfMatch},
	{ErrAlreadyMatched, KindAlreadyMatched},
	{ErrStakeMismatch, KindStakeMismatch},
	{ErrUnauthorized, KindUnauthorized},
	{storage.ErrInsufficientFunds, KindInsufficientFunds},
	{storage.ErrWalletNotFound, KindWalletNotFound},
	{storage.ErrConflict, KindConflict},
}

// KindOf classifies err. It returns KindNone for nil and KindInternal for
// anything that is not a known ledger or collaborator error.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
