package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"trackdeck/internal/models/db_models"
)

type WorkspaceRepository interface {
	Insert(ctx context.Context, workspace *db_models.Workspace) error
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*db_models.Workspace, error)
	FindByStripeCustomer(ctx context.Context, customerID string) (*db_models.Workspace, error)
	Save(ctx context.Context, workspace *db_models.Workspace) error
}

type workspaceRepository struct {
	db *gorm.DB
}

func NewWorkspaceRepository(db *gorm.DB) WorkspaceRepository {
	return &workspaceRepository{
		db: db,
	}
}

func (w *workspaceRepository) Insert(ctx context.Context, workspace *db_models.Workspace) error {
	return w.db.WithContext(ctx).Create(workspace).Error
}

func (w *workspaceRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*db_models.Workspace, error) {
	var workspace db_models.Workspace
	err := w.db.WithContext(ctx).First(&workspace, "owner_id = ?", ownerID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &workspace, nil
}

func (w *workspaceRepository) FindByStripeCustomer(ctx context.Context, customerID string) (*db_models.Workspace, error) {
	var workspace db_models.Workspace
	err := w.db.WithContext(ctx).First(&workspace, "stripe_customer_id = ?", customerID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &workspace, nil
}

func (w *workspaceRepository) Save(ctx context.Context, workspace *db_models.Workspace) error {
	return w.db.WithContext(ctx).Save(workspace).Error
}
