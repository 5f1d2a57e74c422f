package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"trackdeck/internal/models/db_models"
	"trackdeck/internal/models/request_models"
	"trackdeck/internal/models/response_models"
	"trackdeck/internal/repositories"
	"trackdeck/pkg/utils"
)

type AccountServiceInterface interface {
	SignUp(ctx context.Context, req request_models.SignUpRequest) (*response_models.LoginResponse, error)
	Login(ctx context.Context, req request_models.LoginRequest) (*response_models.LoginResponse, error)
	GetProfile(ctx context.Context, sess *Session) (*response_models.AccountResponse, error)
	UpdateProfile(ctx context.Context, sess *Session, req request_models.UpdateProfileRequest) error

	// DeleteAccount is deliberately a stub: accounts are never hard-deleted,
	// the client just drops its session token.
	DeleteAccount(ctx context.Context, sess *Session) error
}

type AccountService struct {
	accountRepo    repositories.AccountRepository
	membershipRepo repositories.MembershipRepository
	memberships    MembershipServiceInterface
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	membershipRepo repositories.MembershipRepository,
	memberships MembershipServiceInterface,
) AccountServiceInterface {
	return &AccountService{
		accountRepo:    accountRepo,
		membershipRepo: membershipRepo,
		memberships:    memberships,
	}
}

func (s *AccountService) SignUp(ctx context.Context, req request_models.SignUpRequest) (*response_models.LoginResponse, error) {
	email := NormalizeEmail(req.Email)

	// An invitation token binds the email; whatever the form carried is
	// ignored so an invite can't be hijacked onto another address. The
	// token is only previewed here — consuming it before the account row
	// exists would burn it on a failed signup.
	var invite *db_models.InvitationToken
	if req.InviteToken != "" {
		row, err := s.memberships.PreviewInvitationToken(ctx, req.InviteToken)
		if err != nil {
			return nil, err
		}
		invite = row
		email = NormalizeEmail(invite.Email)
	}

	if email == "" {
		return nil, utils.ErrValidation
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("password hash failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	account := &db_models.Account{
		DisplayName:  req.DisplayName,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.accountRepo.InsertTx(account, ctx); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrEmailAlreadyExists
		}
		log.Printf("account insert failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	// Claim any membership rows that were invited against this address
	// before the account existed.
	if err := s.membershipRepo.LinkUserByEmail(ctx, email, account.ID); err != nil {
		log.Printf("membership link for %s failed: %v", email, err)
	}

	// Signing up through an invite consumes the token and accepts that
	// project's membership. A lost race on the consume means another
	// signup already redeemed it; the account stands either way.
	if invite != nil {
		if _, err := s.memberships.RedeemInvitationToken(ctx, req.InviteToken); err != nil {
			log.Printf("invite token consume after signup failed: %v", err)
		}

		member, err := s.membershipRepo.FindProjectMember(ctx, invite.ProjectID, account.ID, email)
		if err != nil {
			log.Printf("invited member lookup failed: %v", err)
		} else if member != nil && member.AcceptedAt == nil {
			if err := s.membershipRepo.AcceptProjectMember(ctx, member.ID, account.ID, time.Now().Unix()); err != nil {
				log.Printf("invited member accept failed: %v", err)
			}
		}
	}

	token, err := utils.CreateToken(account.ID, account.Email)
	if err != nil {
		log.Printf("token mint failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return &response_models.LoginResponse{Token: token}, nil
}

func (s *AccountService) Login(ctx context.Context, req request_models.LoginRequest) (*response_models.LoginResponse, error) {
	account, err := s.accountRepo.FindByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		log.Printf("account lookup failed: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, req.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.Email)
	if err != nil {
		log.Printf("token mint failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return &response_models.LoginResponse{Token: token}, nil
}

func (s *AccountService) GetProfile(ctx context.Context, sess *Session) (*response_models.AccountResponse, error) {
	if sess == nil {
		return nil, utils.ErrUnauthorized
	}

	account, err := s.accountRepo.FindById(ctx, sess.UserID.String())
	if err != nil {
		log.Printf("account lookup failed: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	resp := &response_models.AccountResponse{
		ID:          account.ID.String(),
		DisplayName: account.DisplayName,
		Email:       account.Email,
		Bio:         account.Bio,
		AvatarPath:  account.AvatarPath,
	}

	if len(account.Preferences) > 0 {
		var prefs response_models.PreferencesResponse
		if err := json.Unmarshal(account.Preferences, &prefs); err == nil {
			resp.Preferences = &prefs
		}
	}

	return resp, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, sess *Session, req request_models.UpdateProfileRequest) error {
	if sess == nil {
		return utils.ErrUnauthorized
	}

	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.AvatarPath != nil {
		updates["avatar_path"] = *req.AvatarPath
	}
	if req.Preferences != nil {
		raw, err := json.Marshal(req.Preferences)
		if err != nil {
			return utils.ErrValidation
		}
		updates["preferences"] = raw
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.accountRepo.UpdateProfile(ctx, sess.UserID.String(), updates); err != nil {
		log.Printf("profile update failed: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, sess *Session) error {
	if sess == nil {
		return utils.ErrUnauthorized
	}
	// Retention keeps account rows; the client discards its token.
	log.Printf("account %s requested deletion; retained per retention policy", sess.UserID)
	return nil
}
