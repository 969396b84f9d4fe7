package services

import (
	"github.com/vaultbox/vaultbox/internal/common"
	"github.com/vaultbox/vaultbox/internal/cryptox"
	"github.com/vaultbox/vaultbox/internal/server/models"
)

// sealedContent bundles a blob ciphertext with the key material that must
// be persisted beside the file row to open it again.
type sealedContent struct {
	Ciphertext       []byte
	EncryptedFileKey []byte
	KeyNonce         []byte
	Nonce            []byte
}

// sealContent encrypts plaintext with a fresh per-file key and wraps that
// key with the server master key. The plaintext key never leaves this
// function.
func sealContent(plaintext, masterKey []byte) (*sealedContent, error) {
	fileKey, err := cryptox.NewKey()
	if err != nil {
		return nil, err
	}
	defer cryptox.WipeByteArray(fileKey)

	ciphertext, nonce, err := cryptox.Encrypt(plaintext, fileKey)
	if err != nil {
		return nil, err
	}

	wrappedKey, keyNonce, err := cryptox.Encrypt(fileKey, masterKey)
	if err != nil {
		return nil, err
	}

	return &sealedContent{
		Ciphertext:       ciphertext,
		EncryptedFileKey: wrappedKey,
		KeyNonce:         keyNonce,
		Nonce:            nonce,
	}, nil
}

// openContent unwraps the file key stored on the record and decrypts the
// blob. Any mismatch (tampered blob, wrong master key) is reported as a
// storage failure; the caller never learns which step failed.
func openContent(file *models.FileRecord, blob, masterKey []byte) ([]byte, error) {
	fileKey, err := cryptox.Decrypt(file.EncryptedFileKey, file.KeyNonce, masterKey)
	if err != nil {
		return nil, common.ErrorStorageFailure
	}
	defer cryptox.WipeByteArray(fileKey)

	plaintext, err := cryptox.Decrypt(blob, file.Nonce, fileKey)
	if err != nil {
		return nil, common.ErrorStorageFailure
	}
	return plaintext, nil
}
