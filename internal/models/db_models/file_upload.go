package db_models

import (
	"github.com/google/uuid"
)

type FileCategory string

const (
	CategoryStems    FileCategory = "stems"
	CategoryMixes    FileCategory = "mixes"
	CategorySessions FileCategory = "sessions"
	CategoryNotes    FileCategory = "notes"
)

// FileUpload is one stored asset version. Version numbers are sequential
// per (project, category); the unique index is what arbitrates concurrent
// uploads, see fileRepository.InsertWithNextVersion.
type FileUpload struct {
	BaseModel
	ProjectID    uuid.UUID    `gorm:"uniqueIndex:idx_file_project_category_version"`
	Category     FileCategory `gorm:"size:16;uniqueIndex:idx_file_project_category_version"`
	Version      int          `gorm:"uniqueIndex:idx_file_project_category_version"`
	StoragePath  string
	OriginalName string
	SizeBytes    int64
	MimeType     string
	Description  string
	UploaderID   uuid.UUID

	Project Project `gorm:"foreignKey:ProjectID"`
}
