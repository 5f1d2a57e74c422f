package services

import (
	"github.com/google/uuid"
	"strings"
)

// Session is the authenticated-account context. It is passed explicitly
// into every service call instead of being read from ambient state, so
// the permission resolver stays testable without a live request.
type Session struct {
	UserID uuid.UUID
	Email  string
}

// NormalizeEmail lowercases and trims; every email comparison and
// membership row goes through this first.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
