package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"trackdeck/internal/models/db_models"
)

func acceptedMember(projectID uuid.UUID, role db_models.ProjectRole) *db_models.ProjectMember {
	accepted := int64(1700000000)
	return &db_models.ProjectMember{
		ProjectID:  projectID,
		Role:       role,
		AcceptedAt: &accepted,
	}
}

func TestResolveProjectCapabilities_Producer(t *testing.T) {
	producerID := uuid.New()
	sess := &Session{UserID: producerID, Email: "producer@studio.io"}

	caps, role := ResolveProjectCapabilities(sess, producerID, nil)

	assert.Equal(t, db_models.RoleProducer, role)
	assert.Equal(t, fullCapabilities(), caps)
}

func TestResolveProjectCapabilities_NilSession(t *testing.T) {
	caps, role := ResolveProjectCapabilities(nil, uuid.New(), nil)

	assert.Equal(t, db_models.RoleNone, role)
	assert.Equal(t, Capabilities{}, caps)
}

func TestResolveProjectCapabilities_PendingMembershipGrantsNothing(t *testing.T) {
	projectID := uuid.New()
	sess := &Session{UserID: uuid.New(), Email: "invitee@studio.io"}
	member := &db_models.ProjectMember{ProjectID: projectID, Role: db_models.RoleManager}

	caps, role := ResolveProjectCapabilities(sess, uuid.New(), member)

	assert.Equal(t, db_models.RoleNone, role)
	assert.False(t, caps.CanView)
	assert.False(t, caps.CanEditTasks)
}

func TestResolveProjectCapabilities_RoleTable(t *testing.T) {
	projectID := uuid.New()
	sess := &Session{UserID: uuid.New(), Email: "member@studio.io"}

	tests := []struct {
		role db_models.ProjectRole
		want Capabilities
	}{
		{db_models.RoleManager, Capabilities{CanView: true, CanComment: true, CanEditTasks: true}},
		{db_models.RoleEditor, Capabilities{CanView: true, CanComment: true, CanEditTasks: true}},
		{db_models.RoleArtist, Capabilities{CanView: true, CanComment: true}},
	}

	for _, tt := range tests {
		caps, role := ResolveProjectCapabilities(sess, uuid.New(), acceptedMember(projectID, tt.role))
		assert.Equal(t, tt.role, role)
		assert.Equal(t, tt.want, caps, "role %s", tt.role)
	}
}

func TestResolveProjectCapabilities_UnknownRoleFailsClosed(t *testing.T) {
	sess := &Session{UserID: uuid.New(), Email: "member@studio.io"}

	caps, role := ResolveProjectCapabilities(sess, uuid.New(), acceptedMember(uuid.New(), db_models.ProjectRole("superadmin")))

	assert.Equal(t, db_models.RoleNone, role)
	assert.Equal(t, Capabilities{}, caps)
}

func TestResolveCollectionCapabilities_OwnerAndArtist(t *testing.T) {
	ownerID := uuid.New()
	owner := &Session{UserID: ownerID, Email: "owner@studio.io"}

	caps, _ := ResolveCollectionCapabilities(owner, ownerID, nil)
	assert.Equal(t, fullCapabilities(), caps)

	accepted := int64(1700000000)
	member := &db_models.CollectionMember{
		Role:       db_models.CollectionRoleArtist,
		AcceptedAt: &accepted,
	}
	caps, role := ResolveCollectionCapabilities(&Session{UserID: uuid.New()}, ownerID, member)
	assert.Equal(t, db_models.CollectionRoleArtist, role)
	assert.True(t, caps.CanView)
	assert.True(t, caps.CanComment)
	assert.False(t, caps.CanEditTasks)
	assert.False(t, caps.CanManageProject)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "mixer@studio.io", NormalizeEmail("  MIXER@Studio.IO "))
	assert.Equal(t, "", NormalizeEmail("   "))
}
