package response_models

type ProjectResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Artist       string  `json:"artist,omitempty"`
	Tempo        int     `json:"tempo"`
	SampleRate   int     `json:"sample_rate"`
	Key          string  `json:"key"`
	DueDate      *int64  `json:"due_date,omitempty"`
	CollectionID *string `json:"collection_id,omitempty"`
	Role         string  `json:"role"`
}

type CollectionResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	ReleaseType string  `json:"release_type"`
	Progress    float64 `json:"progress"`
}

type ProgressResponse struct {
	Overall float64            `json:"overall"`
	Phases  map[string]float64 `json:"phases"`
}
