package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"trackdeck/internal/models/db_models"
	"trackdeck/internal/models/request_models"
	"trackdeck/internal/models/response_models"
	"trackdeck/internal/repositories"
	"trackdeck/pkg/ratelimit"
	"trackdeck/pkg/utils"
)

const (
	// invitations per rolling hour for one (inviter, project) pair
	InviteLimit  = 10
	InviteWindow = time.Hour

	inviteTokenTTL = 7 * 24 * time.Hour
)

type MembershipServiceInterface interface {
	InviteProjectMember(ctx context.Context, sess *Session, projectID uuid.UUID, req request_models.InviteMemberRequest) (*response_models.MemberResponse, error)
	ListProjectMembers(ctx context.Context, sess *Session, projectID uuid.UUID) ([]response_models.MemberResponse, error)
	UpdateProjectMemberRole(ctx context.Context, sess *Session, projectID uuid.UUID, memberID uuid.UUID, role string) error
	RemoveProjectMember(ctx context.Context, sess *Session, projectID uuid.UUID, memberID uuid.UUID) error
	AcceptProjectInvite(ctx context.Context, sess *Session, projectID uuid.UUID) error

	InviteCollectionMember(ctx context.Context, sess *Session, collectionID uuid.UUID, req request_models.InviteMemberRequest) (*response_models.MemberResponse, error)
	ListCollectionMembers(ctx context.Context, sess *Session, collectionID uuid.UUID) ([]response_models.MemberResponse, error)
	UpdateCollectionMemberRole(ctx context.Context, sess *Session, collectionID uuid.UUID, memberID uuid.UUID, role string) error
	RemoveCollectionMember(ctx context.Context, sess *Session, collectionID uuid.UUID, memberID uuid.UUID) error

	// PreviewInvitationToken validates a sign-up token without consuming
	// it, so callers can check it before doing irreversible work.
	PreviewInvitationToken(ctx context.Context, token string) (*db_models.InvitationToken, error)

	// RedeemInvitationToken consumes a sign-up token exactly once and
	// returns its bound email and project.
	RedeemInvitationToken(ctx context.Context, token string) (*db_models.InvitationToken, error)
}

type MembershipService struct {
	membershipRepo repositories.MembershipRepository
	invitationRepo repositories.InvitationRepository
	perms          PermissionServiceInterface
	mail           IMailService
	limiter        *ratelimit.Limiter
}

func NewMembershipService(
	membershipRepo repositories.MembershipRepository,
	invitationRepo repositories.InvitationRepository,
	perms PermissionServiceInterface,
	mail IMailService,
	limiter *ratelimit.Limiter,
) MembershipServiceInterface {
	return &MembershipService{
		membershipRepo: membershipRepo,
		invitationRepo: invitationRepo,
		perms:          perms,
		mail:           mail,
		limiter:        limiter,
	}
}

func parseProjectRole(role string) (db_models.ProjectRole, error) {
	switch db_models.ProjectRole(role) {
	case db_models.RoleManager, db_models.RoleArtist, db_models.RoleEditor:
		return db_models.ProjectRole(role), nil
	default:
		// "producer" is never a membership row
		return "", fmt.Errorf("%w: unknown project role %q", utils.ErrValidation, role)
	}
}

func parseCollectionRole(role string) (db_models.CollectionRole, error) {
	switch db_models.CollectionRole(role) {
	case db_models.CollectionRoleManager, db_models.CollectionRoleEditor, db_models.CollectionRoleArtist:
		return db_models.CollectionRole(role), nil
	default:
		return "", fmt.Errorf("%w: unknown collection role %q", utils.ErrValidation, role)
	}
}

func (s *MembershipService) InviteProjectMember(ctx context.Context, sess *Session, projectID uuid.UUID, req request_models.InviteMemberRequest) (*response_models.MemberResponse, error) {
	caps, _, project, err := s.perms.ResolveForProject(ctx, sess, projectID)
	if err != nil {
		return nil, err
	}
	if !caps.CanInviteMembers {
		return nil, utils.ErrForbidden
	}

	role, err := parseProjectRole(req.Role)
	if err != nil {
		return nil, err
	}
	email := NormalizeEmail(req.Email)

	if !s.limiter.Allow(sess.UserID.String() + ":" + projectID.String()) {
		return nil, utils.ErrRateLimited
	}

	member := &db_models.ProjectMember{
		ProjectID: projectID,
		Email:     email,
		Role:      role,
		InviterID: sess.UserID,
	}
	if err := s.membershipRepo.InsertProjectMember(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrMemberExists
		}
		log.Printf("member insert failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		log.Printf("invite token generation failed: %v", err)
		return nil, utils.ErrDatabaseError
	}
	row := &db_models.InvitationToken{
		Token:     token,
		Email:     email,
		ProjectID: projectID,
		CreatorID: sess.UserID,
		ExpiresAt: time.Now().Add(inviteTokenTTL).Unix(),
	}
	if err := s.invitationRepo.Insert(ctx, row); err != nil {
		log.Printf("invite token insert failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	resp := memberToResponse(member)

	// mail failure never rolls back the membership, but the inviter
	// gets told so they can share the link another way
	if err := s.mail.SendProjectInvite(email, project.Title, token); err != nil {
		log.Printf("invite mail to %s failed: %v", email, err)
		resp.DeliveryWarning = "invitation saved, but the notification email could not be delivered"
	}

	return &resp, nil
}

func (s *MembershipService) ListProjectMembers(ctx context.Context, sess *Session, projectID uuid.UUID) ([]response_models.MemberResponse, error) {
	caps, _, _, err := s.perms.ResolveForProject(ctx, sess, projectID)
	if err != nil {
		return nil, err
	}
	if !caps.CanView {
		return nil, utils.ErrForbidden
	}

	members, err := s.membershipRepo.ListByProject(ctx, projectID)
	if err != nil {
		log.Printf("member list failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.MemberResponse, 0, len(members))
	for i := range members {
		out = append(out, memberToResponse(&members[i]))
	}
	return out, nil
}

func (s *MembershipService) UpdateProjectMemberRole(ctx context.Context, sess *Session, projectID uuid.UUID, memberID uuid.UUID, role string) error {
	caps, _, _, err := s.perms.ResolveForProject(ctx, sess, projectID)
	if err != nil {
		return err
	}
	if !caps.CanManageProject {
		return utils.ErrForbidden
	}

	parsed, err := parseProjectRole(role)
	if err != nil {
		return err
	}

	if err := s.membershipRepo.UpdateProjectMemberRole(ctx, projectID, memberID, parsed); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrMemberNotFound
		}
		log.Printf("member role update failed: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *MembershipService) RemoveProjectMember(ctx context.Context, sess *Session, projectID uuid.UUID, memberID uuid.UUID) error {
	caps, _, _, err := s.perms.ResolveForProject(ctx, sess, projectID)
	if err != nil {
		return err
	}
	if !caps.CanManageProject {
		return utils.ErrForbidden
	}

	if err := s.membershipRepo.DeleteProjectMember(ctx, projectID, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrMemberNotFound
		}
		log.Printf("member delete failed: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *MembershipService) AcceptProjectInvite(ctx context.Context, sess *Session, projectID uuid.UUID) error {
	if sess == nil {
		return utils.ErrUnauthorized
	}

	member, err := s.membershipRepo.FindProjectMember(ctx, projectID, sess.UserID, NormalizeEmail(sess.Email))
	if err != nil {
		log.Printf("member lookup failed: %v", err)
		return utils.ErrDatabaseError
	}
	if member == nil {
		return utils.ErrMemberNotFound
	}
	if member.AcceptedAt != nil {
		return nil
	}

	if err := s.membershipRepo.AcceptProjectMember(ctx, member.ID, sess.UserID, time.Now().Unix()); err != nil {
		log.Printf("member accept failed: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *MembershipService) InviteCollectionMember(ctx context.Context, sess *Session, collectionID uuid.UUID, req request_models.InviteMemberRequest) (*response_models.MemberResponse, error) {
	caps, collection, err := s.perms.ResolveForCollection(ctx, sess, collectionID)
	if err != nil {
		return nil, err
	}
	if !caps.CanInviteMembers {
		return nil, utils.ErrForbidden
	}

	role, err := parseCollectionRole(req.Role)
	if err != nil {
		return nil, err
	}
	email := NormalizeEmail(req.Email)

	if !s.limiter.Allow(sess.UserID.String() + ":" + collectionID.String()) {
		return nil, utils.ErrRateLimited
	}

	member := &db_models.CollectionMember{
		CollectionID: collectionID,
		Email:        email,
		Role:         role,
		InviterID:    sess.UserID,
	}
	if err := s.membershipRepo.InsertCollectionMember(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrMemberExists
		}
		log.Printf("collection member insert failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	resp := collectionMemberToResponse(member)

	if err := s.mail.SendMemberNotification(email,
		"You've been added to "+collection.Title,
		"You now have the "+string(role)+" role on the collection "+collection.Title+"."); err != nil {
		log.Printf("collection invite mail to %s failed: %v", email, err)
		resp.DeliveryWarning = "invitation saved, but the notification email could not be delivered"
	}

	return &resp, nil
}

func (s *MembershipService) ListCollectionMembers(ctx context.Context, sess *Session, collectionID uuid.UUID) ([]response_models.MemberResponse, error) {
	caps, _, err := s.perms.ResolveForCollection(ctx, sess, collectionID)
	if err != nil {
		return nil, err
	}
	if !caps.CanView {
		return nil, utils.ErrForbidden
	}

	members, err := s.membershipRepo.ListByCollection(ctx, collectionID)
	if err != nil {
		log.Printf("collection member list failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.MemberResponse, 0, len(members))
	for i := range members {
		out = append(out, collectionMemberToResponse(&members[i]))
	}
	return out, nil
}

func (s *MembershipService) UpdateCollectionMemberRole(ctx context.Context, sess *Session, collectionID uuid.UUID, memberID uuid.UUID, role string) error {
	caps, _, err := s.perms.ResolveForCollection(ctx, sess, collectionID)
	if err != nil {
		return err
	}
	if !caps.CanManageProject {
		return utils.ErrForbidden
	}

	parsed, err := parseCollectionRole(role)
	if err != nil {
		return err
	}

	if err := s.membershipRepo.UpdateCollectionMemberRole(ctx, collectionID, memberID, parsed); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrMemberNotFound
		}
		log.Printf("collection member role update failed: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *MembershipService) RemoveCollectionMember(ctx context.Context, sess *Session, collectionID uuid.UUID, memberID uuid.UUID) error {
	caps, _, err := s.perms.ResolveForCollection(ctx, sess, collectionID)
	if err != nil {
		return err
	}
	if !caps.CanManageProject {
		return utils.ErrForbidden
	}

	if err := s.membershipRepo.DeleteCollectionMember(ctx, collectionID, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrMemberNotFound
		}
		log.Printf("collection member delete failed: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *MembershipService) lookupValidToken(ctx context.Context, token string) (*db_models.InvitationToken, error) {
	row, err := s.invitationRepo.FindByToken(ctx, token)
	if err != nil {
		log.Printf("invite token lookup failed: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if row == nil {
		return nil, utils.ErrInviteTokenInvalid
	}
	if row.UsedAt != nil {
		return nil, utils.ErrInviteTokenUsed
	}
	if time.Now().Unix() > row.ExpiresAt {
		return nil, utils.ErrInviteTokenExpired
	}
	return row, nil
}

func (s *MembershipService) PreviewInvitationToken(ctx context.Context, token string) (*db_models.InvitationToken, error) {
	return s.lookupValidToken(ctx, token)
}

func (s *MembershipService) RedeemInvitationToken(ctx context.Context, token string) (*db_models.InvitationToken, error) {
	row, err := s.lookupValidToken(ctx, token)
	if err != nil {
		return nil, err
	}

	consumed, err := s.invitationRepo.Consume(ctx, token, time.Now().Unix())
	if err != nil {
		log.Printf("invite token consume failed: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if !consumed {
		// a concurrent redemption got there first
		return nil, utils.ErrInviteTokenUsed
	}

	return row, nil
}

func memberToResponse(m *db_models.ProjectMember) response_models.MemberResponse {
	resp := response_models.MemberResponse{
		ID:         m.ID.String(),
		Email:      m.Email,
		Role:       string(m.Role),
		AcceptedAt: m.AcceptedAt,
	}
	if m.UserID != nil {
		resp.UserID = m.UserID.String()
	}
	return resp
}

func collectionMemberToResponse(m *db_models.CollectionMember) response_models.MemberResponse {
	resp := response_models.MemberResponse{
		ID:         m.ID.String(),
		Email:      m.Email,
		Role:       string(m.Role),
		AcceptedAt: m.AcceptedAt,
	}
	if m.UserID != nil {
		resp.UserID = m.UserID.String()
	}
	return resp
}
