// Package models defines server-side data models persisted in the database.
package models

import "time"

// FileRecord describes metadata for one stored blob. The encrypted content
// itself lives in object storage under ContentRef; the blob is exclusively
// owned by this record and is never shared across records.
type FileRecord struct {
	// ID is globally unique and immutable.
	ID string
	// AccountID is the owner of the file.
	AccountID string
	// FolderID places the file in the hierarchy; nil means the account root.
	FolderID *string

	Filename  string
	FileType  string
	SizeBytes int64

	// ContentRef is the object-storage key of the ciphertext blob.
	ContentRef string
	// EncryptedFileKey is the per-file content key, wrapped with the
	// server's master key.
	EncryptedFileKey []byte
	// KeyNonce is the AEAD nonce used to wrap the content key.
	KeyNonce []byte
	// Nonce is the AEAD nonce used to encrypt the file contents.
	Nonce []byte

	CreatedAt time.Time
}
