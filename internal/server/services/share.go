package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vaultbox/vaultbox/internal/common"
	"github.com/vaultbox/vaultbox/internal/logging"
	"github.com/vaultbox/vaultbox/internal/server/auth"
	"github.com/vaultbox/vaultbox/internal/server/models"
	"github.com/vaultbox/vaultbox/internal/server/repositories/repomanager"
)

// ShareService mints share links and answers public metadata queries about
// them. Links are immutable once created; an account may hold any number of
// live links to the same file.
type ShareService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

// NewShareService constructs a ShareService.
func NewShareService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *ShareService {
	return &ShareService{
		db:          db,
		repomanager: m,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateLink mints a share link for an owned file, valid for ttl from now.
// An empty password means the link is open; otherwise redemption requires
// the password. A non-positive ttl yields ErrorInvalidInput.
func (s *ShareService) CreateLink(ctx context.Context, accountID, fileID, password string, ttl time.Duration) (*models.ShareLink, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: ttl must be positive", common.ErrorInvalidInput)
	}

	fileRepo := s.repomanager.Files(s.db)
	if _, err := fileRepo.GetByID(ctx, accountID, fileID); err != nil {
		return nil, err
	}

	token, err := common.NewShareToken()
	if err != nil {
		return nil, common.ErrorInternal
	}

	var passwordHash *string
	if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return nil, common.ErrorInternal
		}
		passwordHash = &hash
	}

	now := s.now()
	link := &models.ShareLink{
		Token:        token,
		FileID:       fileID,
		AccountID:    accountID,
		PasswordHash: passwordHash,
		ExpiresAt:    now.Add(ttl),
		CreatedAt:    now,
	}

	linkRepo := s.repomanager.ShareLinks(s.db)
	if err := linkRepo.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("error creating share link: %w", err)
	}
	return link, nil
}

// GetPublicInfo returns the landing-page metadata for a token without
// requiring the password. Unknown tokens and links whose file is gone both
// yield ErrorNotFound; dead links yield ErrorExpired.
func (s *ShareService) GetPublicInfo(ctx context.Context, token string) (*models.SharePublicInfo, error) {
	linkRepo := s.repomanager.ShareLinks(s.db)

	link, err := linkRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if s.now().After(link.ExpiresAt) {
		return nil, common.ErrorExpired
	}

	fileRepo := s.repomanager.Files(s.db)
	file, err := fileRepo.GetByID(ctx, link.AccountID, link.FileID)
	if err != nil {
		// the underlying file was deleted after the link was minted
		return nil, err
	}

	return &models.SharePublicInfo{
		Filename:    file.Filename,
		SizeBytes:   file.SizeBytes,
		UploadDate:  file.CreatedAt,
		IsProtected: link.PasswordHash != nil,
	}, nil
}
