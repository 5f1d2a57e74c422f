package db_models

import (
	"github.com/google/uuid"
)

type WorkspacePlan string

const (
	PlanFree WorkspacePlan = "free"
	PlanPro  WorkspacePlan = "pro"
)

// Workspace is the billing container, one per owning account.
type Workspace struct {
	BaseModel
	OwnerID uuid.UUID     `gorm:"uniqueIndex"`
	Plan    WorkspacePlan `gorm:"size:16;default:'free'"`

	TrialStartedAt *int64
	TrialExpiresAt *int64

	StripeCustomerID string `gorm:"index"`

	Owner Account `gorm:"foreignKey:OwnerID"`
}
