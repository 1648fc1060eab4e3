// Package storage provides the flat key-value store the tracker persists
// into: the Go stand-in for browser local storage.
package storage

// Store is a synchronous key-value store. Each call is atomic from the
// caller's perspective; there is no cross-process coordination, so two
// processes sharing a store can clobber each other's last write.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value []byte, ok bool, err error)
	// Set writes the value for key, replacing any previous value.
	Set(key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}
