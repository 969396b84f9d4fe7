// Package services contains server-side business logic: account
// registration and login, the folder hierarchy, share-link minting and
// redemption, and usage aggregation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vaultbox/vaultbox/internal/common"
	"github.com/vaultbox/vaultbox/internal/server/auth"
	"github.com/vaultbox/vaultbox/internal/server/config"
	"github.com/vaultbox/vaultbox/internal/server/models"
	"github.com/vaultbox/vaultbox/internal/server/repositories/repomanager"
)

// AccountService handles registration and login. The session model is a
// single stateless bearer token; there is no server-side session table.
type AccountService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	now                   func() time.Time
}

// NewAccountService constructs an AccountService using repositories and
// server config.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AccountService {
	return &AccountService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.AccessTokenValidityDuration,
		now:                   time.Now,
	}
}

// Register creates a new account and returns a bearer token so the caller
// is signed in immediately. A duplicate email yields ErrorInvalidInput.
func (s *AccountService) Register(ctx context.Context, email, password, fullName string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", common.ErrorInvalidInput
	}
	if fullName == "" {
		fullName = "User"
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", common.ErrorInternal
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		CreatedAt:    s.now(),
	}

	repo := s.repomanager.Accounts(s.db)
	if err := repo.Create(ctx, account); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", fmt.Errorf("%w: email already registered", common.ErrorInvalidInput)
		}
		return "", fmt.Errorf("error creating account: %w", err)
	}

	return s.generateToken(account.ID)
}

// Login verifies the credentials and returns a bearer token. A missing
// account and a wrong password are both reported as ErrorUnauthorized.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Accounts(s.db)

	account, err := repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}
	if !auth.VerifyPassword(password, account.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	return s.generateToken(account.ID)
}

func (s *AccountService) generateToken(accountID string) (string, error) {
	token, err := auth.GenerateToken(accountID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}
