package db_models

import (
	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

type ProductionPhase string

const (
	PhasePreProduction ProductionPhase = "pre-production"
	PhaseRecording     ProductionPhase = "recording"
	PhaseMixing        ProductionPhase = "mixing"
	PhaseMastering     ProductionPhase = "mastering"
	PhaseOther         ProductionPhase = "other"
)

type Task struct {
	BaseModel
	ProjectID    uuid.UUID    `gorm:"index"`
	Title        string
	Description  string
	Status       TaskStatus   `gorm:"size:16;default:'pending'"`
	Priority     TaskPriority `gorm:"size:16;default:'medium'"`
	DueDate      *int64
	ExternalLink string
	Category     *ProductionPhase `gorm:"size:16"`

	Project Project `gorm:"foreignKey:ProjectID"`
}
