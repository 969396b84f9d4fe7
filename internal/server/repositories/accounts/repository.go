package accounts

import (
	"context"

	"github.com/vaultbox/vaultbox/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
}
