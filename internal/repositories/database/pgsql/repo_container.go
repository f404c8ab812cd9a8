package pgsql

import (
	portsrepo "github.com/SscSPs/bills_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// poolCloser adapts pgxpool.Pool.Close to io.Closer.
type poolCloser struct {
	pool *pgxpool.Pool
}

func (c poolCloser) Close() error {
	c.pool.Close()
	return nil
}

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(dbPool),
		Closer:      poolCloser{pool: dbPool},
	}
}
