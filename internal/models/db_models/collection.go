package db_models

import (
	"github.com/google/uuid"
)

type ReleaseType string

const (
	ReleaseSingle ReleaseType = "Single"
	ReleaseEP     ReleaseType = "EP"
	ReleaseAlbum  ReleaseType = "Album"
)

// Collection groups projects toward a release. Aggregate progress is
// derived from member projects, never stored.
type Collection struct {
	BaseModel
	OwnerID     uuid.UUID   `gorm:"index"`
	Title       string
	ReleaseType ReleaseType `gorm:"size:16"`

	Owner    Account            `gorm:"foreignKey:OwnerID"`
	Projects []Project          `gorm:"foreignKey:CollectionID"`
	Members  []CollectionMember `gorm:"foreignKey:CollectionID"`
}
