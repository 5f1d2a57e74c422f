package response_models

type WorkspaceResponse struct {
	ID            string `json:"id"`
	Plan          string `json:"plan"`
	ProAccess     bool   `json:"pro_access"`
	TrialDaysLeft int    `json:"trial_days_left"`
}
