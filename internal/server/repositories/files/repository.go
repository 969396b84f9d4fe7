package files

import (
	"context"

	"github.com/vaultbox/vaultbox/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, file *models.FileRecord) error
	GetByID(ctx context.Context, accountID, id string) (*models.FileRecord, error)
	ListByFolder(ctx context.Context, accountID string, folderID *string) ([]*models.FileRecord, error)
	ListAll(ctx context.Context, accountID string) ([]*models.FileRecord, error)
	Delete(ctx context.Context, accountID, id string) error
	StatsByAccount(ctx context.Context, accountID string) ([]*models.TypeStat, error)
}
