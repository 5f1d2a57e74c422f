package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"trackdeck/internal/models/db_models"
)

type InvitationRepository interface {
	Insert(ctx context.Context, token *db_models.InvitationToken) error
	FindByToken(ctx context.Context, token string) (*db_models.InvitationToken, error)
	// Consume marks the token used; returns false if it was already
	// consumed by a concurrent redemption.
	Consume(ctx context.Context, token string, usedAt int64) (bool, error)
}

type invitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{
		db: db,
	}
}

func (r *invitationRepository) Insert(ctx context.Context, token *db_models.InvitationToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *invitationRepository) FindByToken(ctx context.Context, token string) (*db_models.InvitationToken, error) {
	var row db_models.InvitationToken
	err := r.db.WithContext(ctx).First(&row, "token = ?", token).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &row, nil
}

// Consume is a guarded update so two concurrent redemptions cannot both
// win: exactly one UPDATE matches the used_at IS NULL predicate.
func (r *invitationRepository) Consume(ctx context.Context, token string, usedAt int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.InvitationToken{}).
		Where("token = ? AND used_at IS NULL", token).
		Update("used_at", usedAt)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
