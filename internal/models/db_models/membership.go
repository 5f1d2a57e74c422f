package db_models

import (
	"github.com/google/uuid"
)

type ProjectRole string

const (
	// RoleProducer is implicit: it is Project.ProducerID, never a membership row.
	RoleProducer ProjectRole = "producer"
	RoleManager  ProjectRole = "manager"
	RoleArtist   ProjectRole = "artist"
	RoleEditor   ProjectRole = "editor"
	RoleNone     ProjectRole = "none"
)

type CollectionRole string

const (
	CollectionRoleManager CollectionRole = "manager"
	CollectionRoleEditor  CollectionRole = "editor"
	CollectionRoleArtist  CollectionRole = "artist"
)

// ProjectMember binds an email (and the resolved account once the invitee
// signs up) to a role within one project. One row per (project, email).
type ProjectMember struct {
	BaseModel
	ProjectID uuid.UUID   `gorm:"uniqueIndex:idx_project_member_email"`
	Email     string      `gorm:"uniqueIndex:idx_project_member_email"`
	UserID    *uuid.UUID  `gorm:"index"`
	Role      ProjectRole `gorm:"size:16"`
	InviterID uuid.UUID

	// null until the invitee accepts; pending rows grant no access
	AcceptedAt *int64

	Project Project `gorm:"foreignKey:ProjectID"`
}

type CollectionMember struct {
	BaseModel
	CollectionID uuid.UUID      `gorm:"uniqueIndex:idx_collection_member_email"`
	Email        string         `gorm:"uniqueIndex:idx_collection_member_email"`
	UserID       *uuid.UUID     `gorm:"index"`
	Role         CollectionRole `gorm:"size:16"`
	InviterID    uuid.UUID

	AcceptedAt *int64

	Collection Collection `gorm:"foreignKey:CollectionID"`
}
