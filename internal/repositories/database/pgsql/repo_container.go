package pgsql

import (
	portsrepo "github.com/SscSPs/user_account_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo: newPgxUserRepository(dbPool),
	}
}
