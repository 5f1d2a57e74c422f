package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"trackdeck/internal/models/db_models"
)

type ProjectRepository interface {
	Insert(ctx context.Context, project *db_models.Project) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Project, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	ListByProducer(ctx context.Context, producerID uuid.UUID) ([]db_models.Project, error)
	ListAccessible(ctx context.Context, userID uuid.UUID, email string) ([]db_models.Project, error)
	ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]db_models.Project, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{
		db: db,
	}
}

func (p *projectRepository) Insert(ctx context.Context, project *db_models.Project) error {
	return p.db.WithContext(ctx).Create(project).Error
}

func (p *projectRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Project, error) {
	var project db_models.Project
	err := p.db.WithContext(ctx).First(&project, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &project, nil
}

func (p *projectRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return p.db.WithContext(ctx).
		Model(&db_models.Project{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (p *projectRepository) ListByProducer(ctx context.Context, producerID uuid.UUID) ([]db_models.Project, error) {
	var projects []db_models.Project
	err := p.db.WithContext(ctx).
		Where("producer_id = ?", producerID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// ListAccessible returns projects the account owns plus those where it
// holds an accepted membership. This is the datastore-side enforcement
// of the same rule set the permission resolver applies per project.
func (p *projectRepository) ListAccessible(ctx context.Context, userID uuid.UUID, email string) ([]db_models.Project, error) {
	var projects []db_models.Project
	err := p.db.WithContext(ctx).
		Distinct("projects.*").
		Joins("LEFT JOIN project_members pm ON pm.project_id = projects.id AND pm.deleted_at IS NULL").
		Where("projects.producer_id = ? OR (pm.accepted_at IS NOT NULL AND (pm.user_id = ? OR pm.email = ?))",
			userID, userID, email).
		Order("projects.created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (p *projectRepository) ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]db_models.Project, error) {
	var projects []db_models.Project
	err := p.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Order("created_at ASC").
		Find(&projects).Error
	return projects, err
}
