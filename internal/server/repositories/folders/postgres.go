// Package folders provides the PostgreSQL-backed repository for the
// per-account folder hierarchy.
package folders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vaultbox/vaultbox/internal/common"
	"github.com/vaultbox/vaultbox/internal/dbx"
	"github.com/vaultbox/vaultbox/internal/server/models"
)

// PostgresRepository implements folder storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new folder row.
func (r *PostgresRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := `
		INSERT INTO folders (id, account_id, parent_id, name, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.db.ExecContext(ctx, query,
		folder.ID, folder.AccountID, folder.ParentID, folder.Name, folder.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByID returns the folder with the given id owned by accountID.
// A missing row and a row owned by another account both yield ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, accountID, id string) (*models.Folder, error) {
	query := `
		SELECT id, account_id, parent_id, name, created_at FROM folders
		WHERE account_id = $1 AND id = $2;
	`
	f, err := scanFolder(r.db.QueryRowContext(ctx, query, accountID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

// ListByParent returns the folders directly under parentID; a nil parentID
// selects folders at the account root.
func (r *PostgresRepository) ListByParent(ctx context.Context, accountID string, parentID *string) ([]*models.Folder, error) {
	query := `
		SELECT id, account_id, parent_id, name, created_at FROM folders
		WHERE account_id = $1 AND parent_id IS NOT DISTINCT FROM $2
		ORDER BY created_at;
	`
	rows, err := r.db.QueryContext(ctx, query, accountID, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to select folders: %w", err)
	}
	defer rows.Close()

	var result []*models.Folder
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateParent re-parents a folder. The caller is responsible for the cycle
// check; this only enforces ownership.
func (r *PostgresRepository) UpdateParent(ctx context.Context, accountID, id string, parentID *string) error {
	query := `
		UPDATE folders SET parent_id = $3
		WHERE account_id = $1 AND id = $2;
	`
	res, err := r.db.ExecContext(ctx, query, accountID, id, parentID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes a folder row. Missing or foreign rows yield ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, accountID, id string) error {
	query := `
		DELETE FROM folders
		WHERE account_id = $1 AND id = $2;
	`
	res, err := r.db.ExecContext(ctx, query, accountID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// CountChildren returns the number of folders and files directly inside the
// given folder.
func (r *PostgresRepository) CountChildren(ctx context.Context, accountID, id string) (int64, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM folders WHERE account_id = $1 AND parent_id = $2) +
			(SELECT COUNT(*) FROM files WHERE account_id = $1 AND folder_id = $2);
	`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, accountID, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFolder(row rowScanner) (*models.Folder, error) {
	var f models.Folder
	var parentID sql.NullString
	if err := row.Scan(&f.ID, &f.AccountID, &parentID, &f.Name, &f.CreatedAt); err != nil {
		return nil, err
	}
	if parentID.Valid {
		f.ParentID = &parentID.String
	}
	return &f, nil
}
