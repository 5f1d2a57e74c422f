package request_models

type ValidateFileUploadRequest struct {
	FileName string `json:"fileName" binding:"required"`
	FileSize int64  `json:"fileSize" binding:"required,min=1"`
	MimeType string `json:"mimeType" binding:"required"`
	Category string `json:"category" binding:"required,oneof=stems mixes sessions notes"`
}
