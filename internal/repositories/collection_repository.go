package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"trackdeck/internal/models/db_models"
)

type CollectionRepository interface {
	Insert(ctx context.Context, collection *db_models.Collection) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Collection, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]db_models.Collection, error)
	ListAccessible(ctx context.Context, userID uuid.UUID, email string) ([]db_models.Collection, error)
}

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{
		db: db,
	}
}

func (r *collectionRepository) Insert(ctx context.Context, collection *db_models.Collection) error {
	return r.db.WithContext(ctx).Create(collection).Error
}

func (r *collectionRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Collection, error) {
	var collection db_models.Collection
	err := r.db.WithContext(ctx).First(&collection, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &collection, nil
}

func (r *collectionRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Collection{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *collectionRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]db_models.Collection, error) {
	var collections []db_models.Collection
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&collections).Error
	return collections, err
}

func (r *collectionRepository) ListAccessible(ctx context.Context, userID uuid.UUID, email string) ([]db_models.Collection, error) {
	var collections []db_models.Collection
	err := r.db.WithContext(ctx).
		Distinct("collections.*").
		Joins("LEFT JOIN collection_members cm ON cm.collection_id = collections.id AND cm.deleted_at IS NULL").
		Where("collections.owner_id = ? OR (cm.accepted_at IS NOT NULL AND (cm.user_id = ? OR cm.email = ?))",
			userID, userID, email).
		Order("collections.created_at DESC").
		Find(&collections).Error
	return collections, err
}
