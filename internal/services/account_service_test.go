package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"trackdeck/internal/models/db_models"
	"trackdeck/internal/models/request_models"
	"trackdeck/pkg/utils"
)

type fakeAccountRepo struct {
	accounts map[string]*db_models.Account
	dup      bool
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*db_models.Account)}
}

func (f *fakeAccountRepo) InsertTx(account *db_models.Account, ctx context.Context) error {
	if f.dup {
		return gorm.ErrDuplicatedKey
	}
	if _, exists := f.accounts[account.Email]; exists {
		return gorm.ErrDuplicatedKey
	}
	account.ID = uuid.New()
	f.accounts[account.Email] = account
	return nil
}

func (f *fakeAccountRepo) FindById(ctx context.Context, id string) (*db_models.Account, error) {
	for _, a := range f.accounts {
		if a.ID.String() == id {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	return f.accounts[email], nil
}

func (f *fakeAccountRepo) UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) error {
	return nil
}

func (f *fakeAccountRepo) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	return nil
}

// inviteForSignup seeds one pending invite and hands back the services
// a signup needs plus the raw invitation token.
func inviteForSignup(t *testing.T) (MembershipServiceInterface, *fakeMembershipRepo, uuid.UUID, string) {
	t.Helper()
	sess, perms := producerSessionAndProject()
	svc, members, invites := newTestMembershipService(perms, &fakeMail{})

	_, err := svc.InviteProjectMember(context.Background(), sess, perms.project.ID,
		request_models.InviteMemberRequest{Email: "invitee@studio.io", Role: "artist"})
	require.NoError(t, err)
	require.Len(t, invites.tokens, 1)

	var token string
	for k := range invites.tokens {
		token = k
	}
	return svc, members, perms.project.ID, token
}

func TestSignUpWithInvite_AcceptsMembershipAndConsumesToken(t *testing.T) {
	memberships, members, projectID, token := inviteForSignup(t)
	accounts := newFakeAccountRepo()
	svc := NewAccountService(accounts, members, memberships)

	resp, err := svc.SignUp(context.Background(), request_models.SignUpRequest{
		DisplayName: "Invitee",
		Email:       "somebody-else@studio.io", // overridden by the token's email
		Password:    "correct horse",
		InviteToken: token,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	account, err := accounts.FindByEmail(context.Background(), "invitee@studio.io")
	require.NoError(t, err)
	require.NotNil(t, account, "account carries the invited address, not the form's")

	member, err := members.FindProjectMember(context.Background(), projectID, account.ID, "invitee@studio.io")
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.NotNil(t, member.AcceptedAt, "signup through an invite accepts the membership")

	_, err = memberships.RedeemInvitationToken(context.Background(), token)
	assert.True(t, errors.Is(err, utils.ErrInviteTokenUsed), "token is spent by the signup")
}

func TestSignUpWithInvite_FailedSignupKeepsTokenRedeemable(t *testing.T) {
	memberships, members, _, token := inviteForSignup(t)
	accounts := newFakeAccountRepo()
	accounts.dup = true
	svc := NewAccountService(accounts, members, memberships)

	_, err := svc.SignUp(context.Background(), request_models.SignUpRequest{
		DisplayName: "Invitee",
		Password:    "correct horse",
		InviteToken: token,
	})
	assert.True(t, errors.Is(err, utils.ErrEmailAlreadyExists))

	// the invitee can still redeem after the failed attempt
	row, err := memberships.RedeemInvitationToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "invitee@studio.io", row.Email)
}
