package repositories

import "io"

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo AccountRepositoryFacade

	// Closer releases the storage engine behind the repositories. It may be nil.
	Closer io.Closer
}

// Close releases the underlying storage, if any.
func (p RepositoryProvider) Close() error {
	if p.Closer == nil {
		return nil
	}
	return p.Closer.Close()
}
