package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"trackdeck/internal/models/db_models"
)

type TaskRepository interface {
	Insert(ctx context.Context, task *db_models.Task) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.Task, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]db_models.Task, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{
		db: db,
	}
}

func (t *taskRepository) Insert(ctx context.Context, task *db_models.Task) error {
	return t.db.WithContext(ctx).Create(task).Error
}

func (t *taskRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.Task, error) {
	var task db_models.Task
	err := t.db.WithContext(ctx).First(&task, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &task, nil
}

func (t *taskRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]db_models.Task, error) {
	var tasks []db_models.Task
	err := t.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (t *taskRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return t.db.WithContext(ctx).
		Model(&db_models.Task{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (t *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return t.db.WithContext(ctx).Delete(&db_models.Task{}, "id = ?", id).Error
}
