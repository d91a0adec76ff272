package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/peerpay/peerpay/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql repositories around one shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:   newPgxUserRepository(pool),
		LedgerRepo: newPgxLedgerRepository(pool),
	}
}
