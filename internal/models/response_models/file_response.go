package response_models

type FileUploadResponse struct {
	ID           string `json:"id"`
	Category     string `json:"category"`
	Version      int    `json:"version"`
	OriginalName string `json:"original_name"`
	SizeBytes    int64  `json:"size_bytes"`
	MimeType     string `json:"mime_type"`
	Description  string `json:"description,omitempty"`
	UploadedAt   int64  `json:"uploaded_at"`
}

type ValidateFileResponse struct {
	SanitizedName string `json:"sanitizedName"`
}
