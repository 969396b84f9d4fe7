package folders

import (
	"context"

	"github.com/vaultbox/vaultbox/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, folder *models.Folder) error
	GetByID(ctx context.Context, accountID, id string) (*models.Folder, error)
	ListByParent(ctx context.Context, accountID string, parentID *string) ([]*models.Folder, error)
	UpdateParent(ctx context.Context, accountID, id string, parentID *string) error
	Delete(ctx context.Context, accountID, id string) error
	CountChildren(ctx context.Context, accountID, id string) (int64, error)
}
