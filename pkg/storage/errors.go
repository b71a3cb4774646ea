package storage

import "errors"

// ErrNotFound is returned when a wager record does not exist.
var ErrNotFound = errors.New("not found")

// ErrInsufficientFunds is returned when a wallet has an insufficient balance for a stake.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrWalletNotFound is returned when a wallet does not exist.
var ErrWalletNotFound = errors.New("wallet not found")

// ErrWalletExists is returned when creating a wallet for a user that already has one.
var ErrWalletExists = errors.New("wallet already exists")

// ErrConflict is returned when a concurrent update committed first. The unit of work was not applied.
var ErrConflict = errors.New("concurrent update conflict")

// ErrCorrupt is returned when a stored record violates a ledger invariant.
var ErrCorrupt = errors.New("corrupt record")
