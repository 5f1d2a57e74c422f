package request_models

type RequestPasswordReset struct {
	Email string `json:"email" binding:"required,email"`
}

// RecoveryCredentialRequest carries whichever historical credential shape
// the client holds; exactly one variant should be populated.
type RecoveryCredentialRequest struct {
	Code         string `json:"code"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Token        string `json:"token"`
	Email        string `json:"email"`
	TokenHash    string `json:"token_hash"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
	RecoveryCredentialRequest
}
