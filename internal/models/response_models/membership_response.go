package response_models

type CapabilitiesResponse struct {
	Role             string `json:"role"`
	CanView          bool   `json:"can_view"`
	CanComment       bool   `json:"can_comment"`
	CanEditTasks     bool   `json:"can_edit_tasks"`
	CanManageProject bool   `json:"can_manage_project"`
	CanInviteMembers bool   `json:"can_invite_members"`
	CanDeleteTasks   bool   `json:"can_delete_tasks"`
}

type MemberResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	UserID     string `json:"user_id,omitempty"`
	Role       string `json:"role"`
	AcceptedAt *int64 `json:"accepted_at,omitempty"`

	// set when the invite was stored but the notification mail failed
	DeliveryWarning string `json:"delivery_warning,omitempty"`
}
