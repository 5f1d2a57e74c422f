package db_models

import (
	"gorm.io/datatypes"
)

type Account struct {
	BaseModel
	DisplayName  string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	Bio          string
	AvatarPath   string

	// theme, date format, notification flags, optional webhook URL
	Preferences datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Projects    []Project    `gorm:"foreignKey:ProducerID"`
	Collections []Collection `gorm:"foreignKey:OwnerID"`
}
