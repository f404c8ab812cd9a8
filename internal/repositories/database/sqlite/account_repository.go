// Package sqlite stores accounts in a single SQLite file through the pure Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SscSPs/bills_app/internal/apperrors"
	"github.com/SscSPs/bills_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bills_app/internal/core/ports/repositories"
	"github.com/SscSPs/bills_app/internal/models"
	"github.com/SscSPs/bills_app/internal/utils/mapping"
	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = time.RFC3339Nano

	accountColumns = `id, description, account_date, amount, paid, account_type, created_at, created_by, last_updated_at, last_updated_by`
)

type AccountRepository struct {
	db *sql.DB
}

var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

// Open creates the database file if needed, migrates it and returns the repository.
func Open(dbPath string) (*AccountRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	if err := RunMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &AccountRepository{db: db}, nil
}

// NewRepositoryProvider opens dbPath and wires the repositories on top of it.
func NewRepositoryProvider(dbPath string) (portsrepo.RepositoryProvider, error) {
	repo, err := Open(dbPath)
	if err != nil {
		return portsrepo.RepositoryProvider{}, err
	}
	return portsrepo.RepositoryProvider{AccountRepo: repo, Closer: repo}, nil
}

func (r *AccountRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var (
		m                    models.Account
		date, amount         string
		createdAt, updatedAt string
	)
	if err := row.Scan(&m.ID, &m.Description, &date, &amount, &m.Paid, &m.AccountType, &createdAt, &m.CreatedBy, &updatedAt, &m.LastUpdatedBy); err != nil {
		return m, err
	}

	var err error
	if m.AccountDate, err = time.ParseInLocation(dateLayout, date, time.UTC); err != nil {
		return m, fmt.Errorf("parse account_date %q: %w", date, err)
	}
	if m.Amount, err = decimal.NewFromString(amount); err != nil {
		return m, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	if m.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return m, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	if m.LastUpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return m, fmt.Errorf("parse last_updated_at %q: %w", updatedAt, err)
	}
	return m, nil
}

func (r *AccountRepository) FindOne(ctx context.Context, id int64) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	m, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("find account %d: %w", id, err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (r *AccountRepository) FindAll(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY account_date, id`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	ms := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

func (r *AccountRepository) Save(ctx context.Context, account domain.Account) (*domain.Account, error) {
	m := mapping.ToModelAccount(account)
	args := []any{
		m.Description,
		m.AccountDate.UTC().Format(dateLayout),
		m.Amount.String(),
		m.Paid,
		m.AccountType,
		m.CreatedAt.UTC().Format(timeLayout),
		m.CreatedBy,
		m.LastUpdatedAt.UTC().Format(timeLayout),
		m.LastUpdatedBy,
	}

	id := m.ID
	if id == 0 {
		res, err := r.db.ExecContext(ctx, `
			INSERT INTO accounts (description, account_date, amount, paid, account_type, created_at, created_by, last_updated_at, last_updated_by)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
		if err != nil {
			return nil, mapError(err, "insert account")
		}
		if id, err = res.LastInsertId(); err != nil {
			return nil, fmt.Errorf("read inserted id: %w", err)
		}
	} else {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO accounts (id, description, account_date, amount, paid, account_type, created_at, created_by, last_updated_at, last_updated_by)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				description = excluded.description,
				account_date = excluded.account_date,
				amount = excluded.amount,
				paid = excluded.paid,
				account_type = excluded.account_type,
				last_updated_at = excluded.last_updated_at,
				last_updated_by = excluded.last_updated_by`, append([]any{id}, args...)...)
		if err != nil {
			return nil, mapError(err, fmt.Sprintf("upsert account %d", id))
		}
	}

	return r.FindOne(ctx, id)
}

func (r *AccountRepository) Remove(ctx context.Context, account domain.Account) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, account.ID)
	if err != nil {
		return fmt.Errorf("remove account %d: %w", account.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove account %d: %w", account.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: account %d", apperrors.ErrNotFound, account.ID)
	}
	return nil
}

func mapError(err error, what string) error {
	if strings.Contains(err.Error(), "CHECK constraint failed") {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrValidation, what, err)
	}
	return fmt.Errorf("%s: %w", what, err)
}
