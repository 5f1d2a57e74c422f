package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"trackdeck/internal/models/db_models"
	"trackdeck/pkg/utils"
)

const versionInsertAttempts = 3

type FileRepository interface {
	// InsertWithNextVersion assigns the next version for the file's
	// (project, category) pair and persists the row.
	InsertWithNextVersion(ctx context.Context, file *db_models.FileUpload) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.FileUpload, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]db_models.FileUpload, error)
	ListByProjectCategory(ctx context.Context, projectID uuid.UUID, category db_models.FileCategory) ([]db_models.FileUpload, error)
	ListSessionsOlderThan(ctx context.Context, cutoff int64) ([]db_models.FileUpload, error)
	DeleteByIds(ctx context.Context, ids []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type fileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{
		db: db,
	}
}

// InsertWithNextVersion computes max(version)+1 and inserts inside one
// transaction. Two racing uploads can still read the same max; the
// unique (project, category, version) index rejects the loser, which
// retries with a fresh read. Compare-and-swap, bounded.
func (f *fileRepository) InsertWithNextVersion(ctx context.Context, file *db_models.FileUpload) error {
	for attempt := 0; attempt < versionInsertAttempts; attempt++ {
		err := f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var current int
			if err := tx.Model(&db_models.FileUpload{}).
				Where("project_id = ? AND category = ?", file.ProjectID, file.Category).
				Select("COALESCE(MAX(version), 0)").
				Scan(&current).Error; err != nil {
				return err
			}
			file.Version = current + 1
			return tx.Create(file).Error
		})
		if err == nil {
			return nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return err
	}
	return utils.ErrVersionConflict
}

func (f *fileRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.FileUpload, error) {
	var file db_models.FileUpload
	err := f.db.WithContext(ctx).First(&file, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &file, nil
}

func (f *fileRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]db_models.FileUpload, error) {
	var files []db_models.FileUpload
	err := f.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("category ASC, version DESC").
		Find(&files).Error
	return files, err
}

func (f *fileRepository) ListByProjectCategory(ctx context.Context, projectID uuid.UUID, category db_models.FileCategory) ([]db_models.FileUpload, error) {
	var files []db_models.FileUpload
	err := f.db.WithContext(ctx).
		Where("project_id = ? AND category = ?", projectID, category).
		Order("version DESC").
		Find(&files).Error
	return files, err
}

func (f *fileRepository) ListSessionsOlderThan(ctx context.Context, cutoff int64) ([]db_models.FileUpload, error) {
	var files []db_models.FileUpload
	err := f.db.WithContext(ctx).
		Where("category = ? AND created_at < ?", db_models.CategorySessions, cutoff).
		Find(&files).Error
	return files, err
}

func (f *fileRepository) DeleteByIds(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return f.db.WithContext(ctx).
		Unscoped().
		Delete(&db_models.FileUpload{}, "id IN ?", ids).Error
}

func (f *fileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return f.db.WithContext(ctx).Delete(&db_models.FileUpload{}, "id = ?", id).Error
}
