package db_models

import (
	"github.com/google/uuid"
)

// InvitationToken is a single-use credential binding a random token to an
// email and a target project, consumed exactly once at sign-up.
type InvitationToken struct {
	BaseModel
	Token     string    `gorm:"uniqueIndex"`
	Email     string    `gorm:"index"`
	ProjectID uuid.UUID `gorm:"index"`
	CreatorID uuid.UUID
	ExpiresAt int64
	UsedAt    *int64

	Project Project `gorm:"foreignKey:ProjectID"`
}
