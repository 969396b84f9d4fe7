// Package sharelinks provides the PostgreSQL-backed repository for share
// link records. Rows are insert-only: a link is minted once and never
// mutated, and expired rows persist so redemption can answer "expired"
// rather than "not found".
package sharelinks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vaultbox/vaultbox/internal/common"
	"github.com/vaultbox/vaultbox/internal/dbx"
	"github.com/vaultbox/vaultbox/internal/server/models"
)

// PostgresRepository implements share link storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const uniqueViolation = "23505"

// Create inserts a new share link. Token entropy makes collisions
// negligible; the primary key is only a backstop, reported as
// ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, link *models.ShareLink) error {
	query := `
		INSERT INTO share_links (token, file_id, account_id, password_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.db.ExecContext(ctx, query,
		link.Token, link.FileID, link.AccountID, link.PasswordHash, link.ExpiresAt, link.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByToken returns the link with the given token, or ErrorNotFound. The
// expiry decision is left to the caller so it is made against a single
// authoritative timestamp per request.
func (r *PostgresRepository) GetByToken(ctx context.Context, token string) (*models.ShareLink, error) {
	query := `
		SELECT token, file_id, account_id, password_hash, expires_at, created_at FROM share_links
		WHERE token = $1;
	`
	var l models.ShareLink
	var passwordHash sql.NullString
	err := r.db.QueryRowContext(ctx, query, token).
		Scan(&l.Token, &l.FileID, &l.AccountID, &passwordHash, &l.ExpiresAt, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if passwordHash.Valid {
		l.PasswordHash = &passwordHash.String
	}
	return &l, nil
}
