package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vaultbox/vaultbox/internal/common"
	"github.com/vaultbox/vaultbox/internal/logging"
	"github.com/vaultbox/vaultbox/internal/server/auth"
	"github.com/vaultbox/vaultbox/internal/server/models"
	"github.com/vaultbox/vaultbox/internal/server/repositories/repomanager"
	"github.com/vaultbox/vaultbox/internal/server/storage"
)

// GatewayService redeems share tokens for file content. It is the only
// unauthenticated path into stored content, so its checks run in a fixed
// order: existence, liveness, password, file resolution, content fetch.
type GatewayService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.BlobStore
	masterKey   []byte
	logger      logging.Logger
	now         func() time.Time
}

// NewGatewayService constructs a GatewayService.
func NewGatewayService(db *sql.DB, m repomanager.RepositoryManager, store storage.BlobStore, masterKey []byte, logger logging.Logger) *GatewayService {
	return &GatewayService{
		db:          db,
		repomanager: m,
		store:       store,
		masterKey:   masterKey,
		logger:      logger,
		now:         time.Now,
	}
}

// Redeem exchanges a token (and password, when the link is protected) for
// the decrypted file content and its record. The clock is read once so a
// link cannot expire between the liveness check and the content fetch
// within a single redemption.
//
// Error contract: unknown token or deleted file -> ErrorNotFound; dead link
// -> ErrorExpired; wrong or missing password -> ErrorUnauthorized; content
// store trouble -> ErrorStorageFailure.
func (s *GatewayService) Redeem(ctx context.Context, token, password string) (*models.FileRecord, []byte, error) {
	linkRepo := s.repomanager.ShareLinks(s.db)

	link, err := linkRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	if s.now().After(link.ExpiresAt) {
		return nil, nil, common.ErrorExpired
	}

	if link.PasswordHash != nil {
		if password == "" || !auth.VerifyPassword(password, *link.PasswordHash) {
			return nil, nil, common.ErrorUnauthorized
		}
	}

	fileRepo := s.repomanager.Files(s.db)
	file, err := fileRepo.GetByID(ctx, link.AccountID, link.FileID)
	if err != nil {
		return nil, nil, err
	}

	blob, err := s.store.Get(ctx, file.ContentRef)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "share link resolved to missing blob", "token", token, "content_ref", file.ContentRef)
			return nil, nil, common.ErrorStorageFailure
		}
		return nil, nil, fmt.Errorf("%w: %v", common.ErrorStorageFailure, err)
	}

	plaintext, err := openContent(file, blob, s.masterKey)
	if err != nil {
		return nil, nil, err
	}
	return file, plaintext, nil
}
