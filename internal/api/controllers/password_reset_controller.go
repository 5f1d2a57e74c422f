package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"trackdeck/internal/models/request_models"
	"trackdeck/internal/services"
	"trackdeck/pkg/utils"
)

type PasswordResetController struct {
	resetService services.PasswordResetServiceInterface
}

func NewPasswordResetController(resetService services.PasswordResetServiceInterface) *PasswordResetController {
	return &PasswordResetController{
		resetService: resetService,
	}
}

// RequestReset godoc
// @Summary Request a password reset
// @Description Always answers generically so the endpoint cannot probe for accounts
// @Tags PasswordReset
// @Accept json
// @Produce json
// @Param request body request_models.RequestPasswordReset true "Reset request payload"
// @Success 200 {object} utils.APIResponse
// @Router /password-reset/request [post]
func (p *PasswordResetController) RequestReset(c *gin.Context) {
	var req request_models.RequestPasswordReset
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	_ = p.resetService.RequestReset(c.Request.Context(), req.Email)

	utils.RespondSuccess(c, nil, "If the email exists, a reset link has been sent")
}

// VerifySession godoc
// @Summary Verify a recovery credential
// @Description Accepts any historical credential shape via query parameters and returns a short-lived session
// @Tags PasswordReset
// @Produce json
// @Param token_hash query string false "Credential digest"
// @Param code query string false "Raw emailed code"
// @Param token query string false "OTP or bare token"
// @Param email query string false "Email, required for OTP tokens"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /password-reset/session [get]
func (p *PasswordResetController) VerifySession(c *gin.Context) {
	req := request_models.RecoveryCredentialRequest{
		Code:         c.Query("code"),
		AccessToken:  c.Query("access_token"),
		RefreshToken: c.Query("refresh_token"),
		Token:        c.Query("token"),
		Email:        c.Query("email"),
		TokenHash:    c.Query("token_hash"),
	}

	resp, err := p.resetService.VerifySession(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Recovery credential verified")
}

// UpdatePassword godoc
// @Summary Update the password from a recovery credential
// @Description Consumes the credential; it cannot be replayed afterwards
// @Tags PasswordReset
// @Accept json
// @Produce json
// @Param request body request_models.UpdatePasswordRequest true "Password update payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /password-reset/update [post]
func (p *PasswordResetController) UpdatePassword(c *gin.Context) {
	var req request_models.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := p.resetService.UpdatePassword(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Password has been reset successfully")
}
