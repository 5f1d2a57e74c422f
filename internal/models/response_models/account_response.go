package response_models

type AccountResponse struct {
	ID          string               `json:"id"`
	DisplayName string               `json:"display_name"`
	Email       string               `json:"email"`
	Bio         string               `json:"bio,omitempty"`
	AvatarPath  string               `json:"avatar_path,omitempty"`
	Preferences *PreferencesResponse `json:"preferences,omitempty"`
}

type PreferencesResponse struct {
	Theme         string `json:"theme"`
	DateFormat    string `json:"date_format"`
	NotifyInvites bool   `json:"notify_invites"`
	NotifyTasks   bool   `json:"notify_tasks"`
	NotifyFiles   bool   `json:"notify_files"`
	WebhookURL    string `json:"webhook_url,omitempty"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type RecoverySessionResponse struct {
	SessionToken string `json:"session_token"`
	Email        string `json:"email"`
}
