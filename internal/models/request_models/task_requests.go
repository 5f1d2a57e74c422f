package request_models

type CreateTaskRequest struct {
	Title        string  `json:"title" binding:"required,min=1,max=200"`
	Description  string  `json:"description" binding:"omitempty,max=2000"`
	Status       string  `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	Priority     string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate      *int64  `json:"due_date"`
	ExternalLink string  `json:"external_link" binding:"omitempty,url"`
	Category     *string `json:"category" binding:"omitempty,oneof=pre-production recording mixing mastering other"`
}

type UpdateTaskRequest struct {
	Title        *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description  *string `json:"description" binding:"omitempty,max=2000"`
	Status       *string `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	Priority     *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate      *int64  `json:"due_date"`
	ExternalLink *string `json:"external_link" binding:"omitempty,url"`
	Category     *string `json:"category" binding:"omitempty,oneof=pre-production recording mixing mastering other"`
}
