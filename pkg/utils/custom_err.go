package utils

import "errors"

var (
	ErrDatabaseError      = errors.New("database error")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("insufficient permissions")

	ErrProjectNotFound    = errors.New("project not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrFileNotFound       = errors.New("file not found")
	ErrMemberNotFound     = errors.New("member not found")

	// duplicate invite for the same (project, email)
	ErrMemberExists = errors.New("member already exists")

	ErrInviteTokenInvalid = errors.New("invitation token invalid")
	ErrInviteTokenUsed    = errors.New("invitation token already used")
	ErrInviteTokenExpired = errors.New("invitation token expired")

	ErrRateLimited = errors.New("rate limit exceeded")

	ErrValidation = errors.New("validation failed")

	ErrFileTooLarge   = errors.New("file exceeds size limit")
	ErrDisallowedMime = errors.New("file type not allowed")
	ErrUnsafeFileName = errors.New("file name rejected")

	ErrProRequired = errors.New("pro access required")

	ErrResetTokenInvalid = errors.New("reset credential invalid or expired")

	ErrWebhookSignature = errors.New("webhook signature verification failed")

	// version CAS loop exhausted its retries
	ErrVersionConflict = errors.New("file version conflict")
)
