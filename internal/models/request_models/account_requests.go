package request_models

type SignUpRequest struct {
	DisplayName string `json:"display_name" binding:"required,min=3,max=50"`
	Email       string `json:"email" binding:"omitempty,email"`
	Password    string `json:"password" binding:"required,min=6"`

	// When set, the email is taken from the token, not the field above.
	InviteToken string `json:"invite_token"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type UpdateProfileRequest struct {
	DisplayName *string             `json:"display_name" binding:"omitempty,min=3,max=50"`
	Bio         *string             `json:"bio" binding:"omitempty,max=500"`
	AvatarPath  *string             `json:"avatar_path"`
	Preferences *PreferencesRequest `json:"preferences"`
}

type PreferencesRequest struct {
	Theme          string `json:"theme" binding:"omitempty,oneof=light dark system"`
	DateFormat     string `json:"date_format" binding:"omitempty,oneof=MM/DD/YYYY DD/MM/YYYY YYYY-MM-DD"`
	NotifyInvites  bool   `json:"notify_invites"`
	NotifyTasks    bool   `json:"notify_tasks"`
	NotifyFiles    bool   `json:"notify_files"`
	WebhookURL     string `json:"webhook_url" binding:"omitempty,url"`
}
