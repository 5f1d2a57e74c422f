package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"trackdeck/internal/models/db_models"
	"trackdeck/internal/models/request_models"
	"trackdeck/pkg/ratelimit"
	"trackdeck/pkg/utils"
)

type fakePerms struct {
	caps    Capabilities
	role    db_models.ProjectRole
	project *db_models.Project
}

func (f *fakePerms) ResolveForProject(ctx context.Context, sess *Session, projectID uuid.UUID) (Capabilities, db_models.ProjectRole, *db_models.Project, error) {
	if f.project == nil {
		return Capabilities{}, db_models.RoleNone, nil, utils.ErrProjectNotFound
	}
	return f.caps, f.role, f.project, nil
}

func (f *fakePerms) ResolveForCollection(ctx context.Context, sess *Session, collectionID uuid.UUID) (Capabilities, *db_models.Collection, error) {
	return f.caps, &db_models.Collection{Title: "Debut EP"}, nil
}

type fakeMembershipRepo struct {
	projectMembers    map[string]*db_models.ProjectMember
	collectionMembers map[string]*db_models.CollectionMember
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{
		projectMembers:    make(map[string]*db_models.ProjectMember),
		collectionMembers: make(map[string]*db_models.CollectionMember),
	}
}

func (f *fakeMembershipRepo) InsertProjectMember(ctx context.Context, member *db_models.ProjectMember) error {
	key := member.ProjectID.String() + "/" + member.Email
	if _, exists := f.projectMembers[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	member.ID = uuid.New()
	f.projectMembers[key] = member
	return nil
}

func (f *fakeMembershipRepo) FindProjectMember(ctx context.Context, projectID uuid.UUID, userID uuid.UUID, email string) (*db_models.ProjectMember, error) {
	for _, m := range f.projectMembers {
		if m.ProjectID == projectID && (m.Email == email || (m.UserID != nil && *m.UserID == userID)) {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMembershipRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]db_models.ProjectMember, error) {
	var out []db_models.ProjectMember
	for _, m := range f.projectMembers {
		if m.ProjectID == projectID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMembershipRepo) UpdateProjectMemberRole(ctx context.Context, projectID uuid.UUID, memberID uuid.UUID, role db_models.ProjectRole) error {
	for _, m := range f.projectMembers {
		if m.ID == memberID && m.ProjectID == projectID {
			m.Role = role
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeMembershipRepo) DeleteProjectMember(ctx context.Context, projectID uuid.UUID, memberID uuid.UUID) error {
	for key, m := range f.projectMembers {
		if m.ID == memberID && m.ProjectID == projectID {
			delete(f.projectMembers, key)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeMembershipRepo) AcceptProjectMember(ctx context.Context, memberID uuid.UUID, userID uuid.UUID, acceptedAt int64) error {
	for _, m := range f.projectMembers {
		if m.ID == memberID {
			m.UserID = &userID
			m.AcceptedAt = &acceptedAt
		}
	}
	return nil
}

func (f *fakeMembershipRepo) InsertCollectionMember(ctx context.Context, member *db_models.CollectionMember) error {
	key := member.CollectionID.String() + "/" + member.Email
	if _, exists := f.collectionMembers[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	member.ID = uuid.New()
	f.collectionMembers[key] = member
	return nil
}

func (f *fakeMembershipRepo) FindCollectionMember(ctx context.Context, collectionID uuid.UUID, userID uuid.UUID, email string) (*db_models.CollectionMember, error) {
	for _, m := range f.collectionMembers {
		if m.CollectionID == collectionID && m.Email == email {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMembershipRepo) ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]db_models.CollectionMember, error) {
	return nil, nil
}

func (f *fakeMembershipRepo) UpdateCollectionMemberRole(ctx context.Context, collectionID uuid.UUID, memberID uuid.UUID, role db_models.CollectionRole) error {
	for _, m := range f.collectionMembers {
		if m.ID == memberID && m.CollectionID == collectionID {
			m.Role = role
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeMembershipRepo) DeleteCollectionMember(ctx context.Context, collectionID uuid.UUID, memberID uuid.UUID) error {
	for key, m := range f.collectionMembers {
		if m.ID == memberID && m.CollectionID == collectionID {
			delete(f.collectionMembers, key)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeMembershipRepo) LinkUserByEmail(ctx context.Context, email string, userID uuid.UUID) error {
	for _, m := range f.projectMembers {
		if m.Email == email && m.UserID == nil {
			m.UserID = &userID
		}
	}
	return nil
}

func (f *fakeMembershipRepo) DeleteOrphanedOlderThan(ctx context.Context, cutoff int64) (int64, error) {
	return 0, nil
}

type fakeInvitationRepo struct {
	tokens map[string]*db_models.InvitationToken
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{tokens: make(map[string]*db_models.InvitationToken)}
}

func (f *fakeInvitationRepo) Insert(ctx context.Context, token *db_models.InvitationToken) error {
	f.tokens[token.Token] = token
	return nil
}

func (f *fakeInvitationRepo) FindByToken(ctx context.Context, token string) (*db_models.InvitationToken, error) {
	return f.tokens[token], nil
}

func (f *fakeInvitationRepo) Consume(ctx context.Context, token string, usedAt int64) (bool, error) {
	row, ok := f.tokens[token]
	if !ok || row.UsedAt != nil {
		return false, nil
	}
	row.UsedAt = &usedAt
	return true, nil
}

type fakeMail struct {
	fail    bool
	invites int
}

func (f *fakeMail) SendProjectInvite(to, projectTitle, token string) error {
	f.invites++
	if f.fail {
		return errors.New("smtp refused")
	}
	return nil
}

func (f *fakeMail) SendPasswordReset(to, token string) error { return nil }

func (f *fakeMail) SendMemberNotification(to, subject, body string) error {
	if f.fail {
		return errors.New("smtp refused")
	}
	return nil
}

func newTestMembershipService(perms *fakePerms, mail *fakeMail) (*MembershipService, *fakeMembershipRepo, *fakeInvitationRepo) {
	members := newFakeMembershipRepo()
	invites := newFakeInvitationRepo()
	svc := NewMembershipService(members, invites, perms, mail, ratelimit.New(InviteLimit, InviteWindow)).(*MembershipService)
	return svc, members, invites
}

func producerSessionAndProject() (*Session, *fakePerms) {
	producerID := uuid.New()
	project := &db_models.Project{ProducerID: producerID, Title: "Night Drive"}
	project.ID = uuid.New()
	return &Session{UserID: producerID, Email: "producer@studio.io"},
		&fakePerms{caps: fullCapabilities(), role: db_models.RoleProducer, project: project}
}

func TestInviteProjectMember_DuplicateRejected(t *testing.T) {
	sess, perms := producerSessionAndProject()
	svc, _, _ := newTestMembershipService(perms, &fakeMail{})

	req := request_models.InviteMemberRequest{Email: "Artist@Studio.IO", Role: "artist"}

	resp, err := svc.InviteProjectMember(context.Background(), sess, perms.project.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "artist@studio.io", resp.Email)
	assert.Empty(t, resp.DeliveryWarning)

	// normalization makes the second invite a duplicate
	_, err = svc.InviteProjectMember(context.Background(), sess, perms.project.ID, request_models.InviteMemberRequest{Email: "artist@studio.io", Role: "editor"})
	assert.True(t, errors.Is(err, utils.ErrMemberExists))
}

func TestInviteProjectMember_RateLimited(t *testing.T) {
	sess, perms := producerSessionAndProject()
	svc, _, _ := newTestMembershipService(perms, &fakeMail{})

	for i := 0; i < InviteLimit; i++ {
		req := request_models.InviteMemberRequest{Email: fmt.Sprintf("artist%d@studio.io", i), Role: "artist"}
		_, err := svc.InviteProjectMember(context.Background(), sess, perms.project.ID, req)
		require.NoError(t, err, "invite %d", i)
	}

	_, err := svc.InviteProjectMember(context.Background(), sess, perms.project.ID, request_models.InviteMemberRequest{Email: "eleventh@studio.io", Role: "artist"})
	assert.True(t, errors.Is(err, utils.ErrRateLimited))
}

func TestInviteProjectMember_MailFailureSurfacedNotFatal(t *testing.T) {
	sess, perms := producerSessionAndProject()
	svc, members, _ := newTestMembershipService(perms, &fakeMail{fail: true})

	resp, err := svc.InviteProjectMember(context.Background(), sess, perms.project.ID, request_models.InviteMemberRequest{Email: "artist@studio.io", Role: "artist"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.DeliveryWarning)
	assert.Len(t, members.projectMembers, 1, "membership row survives the mail failure")
}

func TestInviteProjectMember_RequiresCapability(t *testing.T) {
	sess, perms := producerSessionAndProject()
	perms.caps = Capabilities{CanView: true, CanComment: true, CanEditTasks: true}
	svc, _, _ := newTestMembershipService(perms, &fakeMail{})

	_, err := svc.InviteProjectMember(context.Background(), sess, perms.project.ID, request_models.InviteMemberRequest{Email: "artist@studio.io", Role: "artist"})
	assert.True(t, errors.Is(err, utils.ErrForbidden))
}

func TestInviteProjectMember_UnknownRole(t *testing.T) {
	sess, perms := producerSessionAndProject()
	svc, _, _ := newTestMembershipService(perms, &fakeMail{})

	_, err := svc.InviteProjectMember(context.Background(), sess, perms.project.ID, request_models.InviteMemberRequest{Email: "artist@studio.io", Role: "producer"})
	assert.True(t, errors.Is(err, utils.ErrValidation))
}

func TestRemoveProjectMember_ForeignProjectRejected(t *testing.T) {
	sess, perms := producerSessionAndProject()
	svc, members, _ := newTestMembershipService(perms, &fakeMail{})

	// a member row belonging to somebody else's project
	victim := &db_models.ProjectMember{
		ProjectID: uuid.New(),
		Email:     "victim@studio.io",
		Role:      db_models.RoleArtist,
	}
	victim.ID = uuid.New()
	members.projectMembers[victim.ProjectID.String()+"/"+victim.Email] = victim

	// the caller authorizes against their own project id, so the
	// capability check passes; the row must still be out of reach
	err := svc.RemoveProjectMember(context.Background(), sess, perms.project.ID, victim.ID)

	assert.True(t, errors.Is(err, utils.ErrMemberNotFound))
	assert.Len(t, members.projectMembers, 1, "foreign row survives")
}

func TestUpdateProjectMemberRole_ForeignProjectRejected(t *testing.T) {
	sess, perms := producerSessionAndProject()
	svc, members, _ := newTestMembershipService(perms, &fakeMail{})

	victim := &db_models.ProjectMember{
		ProjectID: uuid.New(),
		Email:     "victim@studio.io",
		Role:      db_models.RoleArtist,
	}
	victim.ID = uuid.New()
	members.projectMembers[victim.ProjectID.String()+"/"+victim.Email] = victim

	err := svc.UpdateProjectMemberRole(context.Background(), sess, perms.project.ID, victim.ID, "manager")

	assert.True(t, errors.Is(err, utils.ErrMemberNotFound))
	assert.Equal(t, db_models.RoleArtist, victim.Role, "foreign row keeps its role")
}

func TestRedeemInvitationToken_SingleUse(t *testing.T) {
	sess, perms := producerSessionAndProject()
	svc, _, invites := newTestMembershipService(perms, &fakeMail{})

	_, err := svc.InviteProjectMember(context.Background(), sess, perms.project.ID, request_models.InviteMemberRequest{Email: "artist@studio.io", Role: "artist"})
	require.NoError(t, err)
	require.Len(t, invites.tokens, 1)

	var token string
	for k := range invites.tokens {
		token = k
	}

	row, err := svc.RedeemInvitationToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "artist@studio.io", row.Email)
	assert.Equal(t, perms.project.ID, row.ProjectID)

	_, err = svc.RedeemInvitationToken(context.Background(), token)
	assert.True(t, errors.Is(err, utils.ErrInviteTokenUsed))
}

func TestRedeemInvitationToken_InvalidAndExpired(t *testing.T) {
	_, perms := producerSessionAndProject()
	svc, _, invites := newTestMembershipService(perms, &fakeMail{})

	_, err := svc.RedeemInvitationToken(context.Background(), "never-issued")
	assert.True(t, errors.Is(err, utils.ErrInviteTokenInvalid))

	invites.tokens["stale"] = &db_models.InvitationToken{
		Token:     "stale",
		Email:     "late@studio.io",
		ProjectID: perms.project.ID,
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	}
	_, err = svc.RedeemInvitationToken(context.Background(), "stale")
	assert.True(t, errors.Is(err, utils.ErrInviteTokenExpired))
}
