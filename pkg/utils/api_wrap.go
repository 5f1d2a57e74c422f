package utils

import (
	"errors"
	"github.com/gin-gonic/gin"
	"log"
	"net/http"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrProjectNotFound),
		errors.Is(err, ErrCollectionNotFound),
		errors.Is(err, ErrTaskNotFound),
		errors.Is(err, ErrFileNotFound),
		errors.Is(err, ErrMemberNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrProRequired):
		RespondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrEmailAlreadyExists), errors.Is(err, ErrMemberExists):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrRateLimited):
		RespondError(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrFileTooLarge),
		errors.Is(err, ErrDisallowedMime),
		errors.Is(err, ErrUnsafeFileName),
		errors.Is(err, ErrInviteTokenInvalid),
		errors.Is(err, ErrInviteTokenUsed),
		errors.Is(err, ErrInviteTokenExpired),
		errors.Is(err, ErrResetTokenInvalid),
		errors.Is(err, ErrWebhookSignature):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrVersionConflict):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
