// Package files provides the PostgreSQL-backed repository for file
// metadata. The blob bytes themselves live in object storage; a row here
// only ever references content that is already durable.
package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vaultbox/vaultbox/internal/common"
	"github.com/vaultbox/vaultbox/internal/dbx"
	"github.com/vaultbox/vaultbox/internal/server/models"
)

// PostgresRepository implements file metadata storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new file row.
func (r *PostgresRepository) Create(ctx context.Context, file *models.FileRecord) error {
	query := `
		INSERT INTO files (id, account_id, folder_id, filename, file_type, size_bytes,
			content_ref, encrypted_file_key, key_nonce, nonce, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db.ExecContext(ctx, query,
		file.ID, file.AccountID, file.FolderID, file.Filename, file.FileType, file.SizeBytes,
		file.ContentRef, file.EncryptedFileKey, file.KeyNonce, file.Nonce, file.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByID returns the file with the given id owned by accountID. A missing
// row and a row owned by another account both yield ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, accountID, id string) (*models.FileRecord, error) {
	query := `
		SELECT id, account_id, folder_id, filename, file_type, size_bytes,
			content_ref, encrypted_file_key, key_nonce, nonce, created_at
		FROM files
		WHERE account_id = $1 AND id = $2;
	`
	f, err := scanFile(r.db.QueryRowContext(ctx, query, accountID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

// ListByFolder returns the files directly inside folderID; a nil folderID
// selects files at the account root.
func (r *PostgresRepository) ListByFolder(ctx context.Context, accountID string, folderID *string) ([]*models.FileRecord, error) {
	query := `
		SELECT id, account_id, folder_id, filename, file_type, size_bytes,
			content_ref, encrypted_file_key, key_nonce, nonce, created_at
		FROM files
		WHERE account_id = $1 AND folder_id IS NOT DISTINCT FROM $2
		ORDER BY created_at;
	`
	rows, err := r.db.QueryContext(ctx, query, accountID, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*models.FileRecord
	for rows.Next() {
		f, err := scanFile(rows)
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

// ListAll returns every file of the account regardless of folder, newest
// first.
func (r *PostgresRepository) ListAll(ctx context.Context, accountID string) ([]*models.FileRecord, error) {
	query := `
		SELECT id, account_id, folder_id, filename, file_type, size_bytes,
			content_ref, encrypted_file_key, key_nonce, nonce, created_at
		FROM files
		WHERE account_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*models.FileRecord
	for rows.Next() {
		f, err := scanFile(rows)
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

// Delete removes a file row. Missing or foreign rows yield ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, accountID, id string) error {
	query := `
		DELETE FROM files
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

// StatsByAccount aggregates file counts and byte totals per file_type over
// every folder of the account.
func (r *PostgresRepository) StatsByAccount(ctx context.Context, accountID string) ([]*models.TypeStat, error) {
	query := `
		SELECT file_type, COUNT(*), COALESCE(SUM(size_bytes), 0) FROM files
		WHERE account_id = $1
		GROUP BY file_type;
	`
	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to select stats: %w", err)
	}
	defer rows.Close()

	var result []*models.TypeStat
	for rows.Next() {
		var s models.TypeStat
		if err := rows.Scan(&s.FileType, &s.Count, &s.TotalBytes); err != nil {
			return nil, err
		}
		result = append(result, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(row rowScanner) (*models.FileRecord, error) {
	var f models.FileRecord
	var folderID sql.NullString
	if err := row.Scan(&f.ID, &f.AccountID, &folderID, &f.Filename, &f.FileType, &f.SizeBytes,
		&f.ContentRef, &f.EncryptedFileKey, &f.KeyNonce, &f.Nonce, &f.CreatedAt); err != nil {
		return nil, err
	}
	if folderID.Valid {
		f.FolderID = &folderID.String
	}
	return &f, nil
}
