package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/bills_app/internal/apperrors"
	"github.com/SscSPs/bills_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bills_app/internal/core/ports/repositories"
	"github.com/SscSPs/bills_app/internal/models"
	"github.com/SscSPs/bills_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `id, description, account_date, amount, paid, account_type, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.ID,
		&m.Description,
		&m.AccountDate,
		&m.Amount,
		&m.Paid,
		&m.AccountType,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindOne retrieves an account by its ID.
func (r *PgxAccountRepository) FindOne(ctx context.Context, id int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("account %d", id))
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAll retrieves every account ordered by date, then id.
func (r *PgxAccountRepository) FindAll(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY account_date, id;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, mapError(err, "query accounts")
	}
	defer rows.Close()

	var ms []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, mapError(err, "scan account row")
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate account rows")
	}

	return mapping.ToDomainAccountSlice(ms), nil
}

// Save inserts the account when its ID is 0 and upserts it otherwise.
func (r *PgxAccountRepository) Save(ctx context.Context, account domain.Account) (*domain.Account, error) {
	m := mapping.ToModelAccount(account)

	if m.ID == 0 {
		query := `
			INSERT INTO accounts (description, account_date, amount, paid, account_type, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING ` + accountColumns + `;`
		saved, err := scanAccount(r.Pool.QueryRow(ctx, query,
			m.Description, m.AccountDate, m.Amount, m.Paid, m.AccountType,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		))
		if err != nil {
			return nil, mapError(err, "insert account")
		}
		acc := mapping.ToDomainAccount(saved)
		return &acc, nil
	}

	var saved models.Account
	err := r.InTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO accounts (id, description, account_date, amount, paid, account_type, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO UPDATE SET
				description = EXCLUDED.description,
				account_date = EXCLUDED.account_date,
				amount = EXCLUDED.amount,
				paid = EXCLUDED.paid,
				account_type = EXCLUDED.account_type,
				last_updated_at = EXCLUDED.last_updated_at,
				last_updated_by = EXCLUDED.last_updated_by
			RETURNING ` + accountColumns + `;`
		var err error
		saved, err = scanAccount(tx.QueryRow(ctx, query,
			m.ID, m.Description, m.AccountDate, m.Amount, m.Paid, m.AccountType,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		))
		if err != nil {
			return err
		}

		// An explicit id must not be handed out again by the identity column.
		_, err = tx.Exec(ctx, `SELECT setval(pg_get_serial_sequence('accounts', 'id'), GREATEST($1, (SELECT COALESCE(MAX(id), 1) FROM accounts)));`, m.ID)
		return err
	})
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("upsert account %d", m.ID))
	}
	acc := mapping.ToDomainAccount(saved)
	return &acc, nil
}

// Remove deletes the account.
func (r *PgxAccountRepository) Remove(ctx context.Context, account domain.Account) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1;`, account.ID)
	if err != nil {
		return mapError(err, fmt.Sprintf("remove account %d", account.ID))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, account.ID)
	}
	return nil
}
