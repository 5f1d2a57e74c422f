package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"trackdeck/internal/models/db_models"
)

func TestIsProAccess(t *testing.T) {
	now := time.Now()
	future := now.Add(24 * time.Hour).Unix()
	past := now.Add(-24 * time.Hour).Unix()

	tests := []struct {
		name string
		ws   *db_models.Workspace
		want bool
	}{
		{"nil workspace", nil, false},
		{"pro plan", &db_models.Workspace{Plan: db_models.PlanPro}, true},
		{"pro plan with lapsed trial", &db_models.Workspace{Plan: db_models.PlanPro, TrialExpiresAt: &past}, true},
		{"free with active trial", &db_models.Workspace{Plan: db_models.PlanFree, TrialExpiresAt: &future}, true},
		{"free with lapsed trial", &db_models.Workspace{Plan: db_models.PlanFree, TrialExpiresAt: &past}, false},
		{"free without trial", &db_models.Workspace{Plan: db_models.PlanFree}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsProAccess(tt.ws, now))
		})
	}
}

func TestTrialDaysLeft(t *testing.T) {
	now := time.Now()

	assert.Equal(t, 0, TrialDaysLeft(nil, now))
	assert.Equal(t, 0, TrialDaysLeft(&db_models.Workspace{}, now))

	past := now.Add(-time.Hour).Unix()
	assert.Equal(t, 0, TrialDaysLeft(&db_models.Workspace{TrialExpiresAt: &past}, now))

	// nine and a half days out rounds up to 10
	expires := now.Add(9*24*time.Hour + 12*time.Hour).Unix()
	assert.Equal(t, 10, TrialDaysLeft(&db_models.Workspace{TrialExpiresAt: &expires}, now))
}
