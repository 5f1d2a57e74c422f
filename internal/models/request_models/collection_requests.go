package request_models

type CreateCollectionRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=120"`
	ReleaseType string `json:"release_type" binding:"required,oneof=Single EP Album"`
}

type UpdateCollectionRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=120"`
	ReleaseType *string `json:"release_type" binding:"omitempty,oneof=Single EP Album"`
}
