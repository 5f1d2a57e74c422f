package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"trackdeck/internal/models/db_models"
)

type MembershipRepository interface {
	InsertProjectMember(ctx context.Context, member *db_models.ProjectMember) error
	FindProjectMember(ctx context.Context, projectID uuid.UUID, userID uuid.UUID, email string) (*db_models.ProjectMember, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]db_models.ProjectMember, error)
	UpdateProjectMemberRole(ctx context.Context, projectID uuid.UUID, memberID uuid.UUID, role db_models.ProjectRole) error
	DeleteProjectMember(ctx context.Context, projectID uuid.UUID, memberID uuid.UUID) error
	AcceptProjectMember(ctx context.Context, memberID uuid.UUID, userID uuid.UUID, acceptedAt int64) error

	InsertCollectionMember(ctx context.Context, member *db_models.CollectionMember) error
	FindCollectionMember(ctx context.Context, collectionID uuid.UUID, userID uuid.UUID, email string) (*db_models.CollectionMember, error)
	ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]db_models.CollectionMember, error)
	UpdateCollectionMemberRole(ctx context.Context, collectionID uuid.UUID, memberID uuid.UUID, role db_models.CollectionRole) error
	DeleteCollectionMember(ctx context.Context, collectionID uuid.UUID, memberID uuid.UUID) error

	// LinkUserByEmail fills user_id on every membership row carrying the
	// email of a freshly signed-up account.
	LinkUserByEmail(ctx context.Context, email string, userID uuid.UUID) error

	DeleteOrphanedOlderThan(ctx context.Context, cutoff int64) (int64, error)
}

type membershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{
		db: db,
	}
}

// InsertProjectMember relies on the (project_id, email) unique index as
// the duplicate-invite signal; there is deliberately no prior existence
// check, which would race with concurrent invites.
func (m *membershipRepository) InsertProjectMember(ctx context.Context, member *db_models.ProjectMember) error {
	return m.db.WithContext(ctx).Create(member).Error
}

func (m *membershipRepository) FindProjectMember(ctx context.Context, projectID uuid.UUID, userID uuid.UUID, email string) (*db_models.ProjectMember, error) {
	var member db_models.ProjectMember
	err := m.db.WithContext(ctx).
		Where("project_id = ? AND (user_id = ? OR email = ?)", projectID, userID, email).
		First(&member).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &member, nil
}

func (m *membershipRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]db_models.ProjectMember, error) {
	var members []db_models.ProjectMember
	err := m.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}

// UpdateProjectMemberRole scopes the WHERE to the project so a member id
// from another project can never be reached through it.
func (m *membershipRepository) UpdateProjectMemberRole(ctx context.Context, projectID uuid.UUID, memberID uuid.UUID, role db_models.ProjectRole) error {
	res := m.db.WithContext(ctx).
		Model(&db_models.ProjectMember{}).
		Where("id = ? AND project_id = ?", memberID, projectID).
		Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteProjectMember removes the row entirely; membership has no
// soft-deleted state in the lifecycle. Scoped to the project like the
// role update.
func (m *membershipRepository) DeleteProjectMember(ctx context.Context, projectID uuid.UUID, memberID uuid.UUID) error {
	res := m.db.WithContext(ctx).
		Unscoped().
		Delete(&db_models.ProjectMember{}, "id = ? AND project_id = ?", memberID, projectID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (m *membershipRepository) AcceptProjectMember(ctx context.Context, memberID uuid.UUID, userID uuid.UUID, acceptedAt int64) error {
	return m.db.WithContext(ctx).
		Model(&db_models.ProjectMember{}).
		Where("id = ?", memberID).
		Updates(map[string]interface{}{
			"user_id":     userID,
			"accepted_at": acceptedAt,
		}).Error
}

func (m *membershipRepository) InsertCollectionMember(ctx context.Context, member *db_models.CollectionMember) error {
	return m.db.WithContext(ctx).Create(member).Error
}

func (m *membershipRepository) FindCollectionMember(ctx context.Context, collectionID uuid.UUID, userID uuid.UUID, email string) (*db_models.CollectionMember, error) {
	var member db_models.CollectionMember
	err := m.db.WithContext(ctx).
		Where("collection_id = ? AND (user_id = ? OR email = ?)", collectionID, userID, email).
		First(&member).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &member, nil
}

func (m *membershipRepository) ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]db_models.CollectionMember, error) {
	var members []db_models.CollectionMember
	err := m.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}

func (m *membershipRepository) UpdateCollectionMemberRole(ctx context.Context, collectionID uuid.UUID, memberID uuid.UUID, role db_models.CollectionRole) error {
	res := m.db.WithContext(ctx).
		Model(&db_models.CollectionMember{}).
		Where("id = ? AND collection_id = ?", memberID, collectionID).
		Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (m *membershipRepository) DeleteCollectionMember(ctx context.Context, collectionID uuid.UUID, memberID uuid.UUID) error {
	res := m.db.WithContext(ctx).
		Unscoped().
		Delete(&db_models.CollectionMember{}, "id = ? AND collection_id = ?", memberID, collectionID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (m *membershipRepository) LinkUserByEmail(ctx context.Context, email string, userID uuid.UUID) error {
	if err := m.db.WithContext(ctx).
		Model(&db_models.ProjectMember{}).
		Where("email = ? AND user_id IS NULL", email).
		Update("user_id", userID).Error; err != nil {
		return err
	}
	return m.db.WithContext(ctx).
		Model(&db_models.CollectionMember{}).
		Where("email = ? AND user_id IS NULL", email).
		Update("user_id", userID).Error
}

func (m *membershipRepository) DeleteOrphanedOlderThan(ctx context.Context, cutoff int64) (int64, error) {
	res := m.db.WithContext(ctx).
		Unscoped().
		Where("user_id IS NULL AND created_at < ?", cutoff).
		Delete(&db_models.ProjectMember{})
	if res.Error != nil {
		return 0, res.Error
	}
	deleted := res.RowsAffected

	res = m.db.WithContext(ctx).
		Unscoped().
		Where("user_id IS NULL AND created_at < ?", cutoff).
		Delete(&db_models.CollectionMember{})
	if res.Error != nil {
		return deleted, res.Error
	}
	return deleted + res.RowsAffected, nil
}
