package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AnthoniusHendriyanto/secure-auth/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/secure-auth/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// DBTX is satisfied by *pgxpool.Pool and by pgxmock pools.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DBTX
}

func NewPostgresRepository(db DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const accountColumns = `id, email, password_hash, twofa_secret, is_verified, created_at, updated_at`

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE email = $1
		LIMIT 1;
	`
	account, err := scanAccount(r.db.QueryRow(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return account, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1
		LIMIT 1;
	`
	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get account by id: %w", err)
	}
	return account, nil
}

// scanAccount maps pgx.ErrNoRows to (nil, nil).
func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.TOTPSecret,
		&account.IsVerified,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// Create relies on the unique index on accounts.email, so concurrent
// registrations of one address yield exactly one row.
func (r *PostgresRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO accounts (id, email, password_hash, twofa_secret, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, account.ID, account.Email, account.PasswordHash, account.TOTPSecret, account.IsVerified,
		account.CreatedAt, account.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return autherror.ErrEmailAlreadyInUse
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateTOTPSecret(ctx context.Context, id, secret string, updatedAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET twofa_secret = $2, updated_at = $3
		WHERE id = $1
	`, id, secret, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update 2fa secret: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return autherror.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) AppendLoginHistory(ctx context.Context, entry *domain.LoginHistoryEntry) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO login_history (account_id, ip_address, created_at)
		VALUES ($1, $2, $3)
	`, entry.AccountID, entry.IPAddress, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append login history: %w", err)
	}
	return nil
}

func (r *PostgresRepository) RecentLoginHistory(ctx context.Context, accountID string, limit int) ([]domain.LoginHistoryEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT account_id, ip_address, created_at
		FROM login_history
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query login history: %w", err)
	}
	defer rows.Close()

	var entries []domain.LoginHistoryEntry
	for rows.Next() {
		var e domain.LoginHistoryEntry
		if err := rows.Scan(&e.AccountID, &e.IPAddress, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan login history: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read login history: %w", err)
	}

	return entries, nil
}
