package request_models

type CreateProjectRequest struct {
	Title      string `json:"title" binding:"required,min=1,max=120"`
	Artist     string `json:"artist" binding:"omitempty,max=120"`
	Tempo      int    `json:"tempo" binding:"required"`
	SampleRate int    `json:"sample_rate" binding:"required"`
	Key        string `json:"key" binding:"required"`
	DueDate    *int64 `json:"due_date"`
}

type UpdateProjectRequest struct {
	Title      *string `json:"title" binding:"omitempty,min=1,max=120"`
	Artist     *string `json:"artist" binding:"omitempty,max=120"`
	Tempo      *int    `json:"tempo"`
	SampleRate *int    `json:"sample_rate"`
	Key        *string `json:"key"`
	DueDate    *int64  `json:"due_date"`
}

type AssignCollectionRequest struct {
	CollectionID *string `json:"collection_id"`
}
