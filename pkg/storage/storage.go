package storage

// Storage defines the root interface for the entire data layer.
// Components should depend on the narrower interfaces (LedgerStore,
// WalletStore, ConnectionStore) instead of this one.
type Storage interface {
	ApiStore
	ConnectionStore
}
