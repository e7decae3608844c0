// Package storage provides the persistent key-value store the ledger is
// serialized through. The store never interprets its values; it holds opaque
// strings, the way browser local storage does.
package storage

// Store is the durability port consumed by the ledger.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set durably associates value with key.
	Set(key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
}
