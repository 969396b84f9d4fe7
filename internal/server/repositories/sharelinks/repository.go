package sharelinks

import (
	"context"

	"github.com/vaultbox/vaultbox/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, link *models.ShareLink) error
	GetByToken(ctx context.Context, token string) (*models.ShareLink, error)
}
