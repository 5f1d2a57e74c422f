package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"trackdeck/internal/models/request_models"
	"trackdeck/internal/models/response_models"
	"trackdeck/internal/repositories"
	mem "trackdeck/pkg/memcache"
	"trackdeck/pkg/utils"
)

const (
	resetTokenTTL = time.Hour
	otpLength     = 6
)

// RecoveryCredential is the tagged union of every credential shape a
// client may hold for password recovery. Older clients send a bare code
// or an access/refresh pair, OTP flows send a short token plus the
// email, and current clients send the token hash directly. Each variant
// knows how to resolve itself against the reset-token store.
type RecoveryCredential interface {
	// resolveEmail returns the bound account email, or "" when the
	// credential is unknown or expired. consume removes the entry so it
	// can't be replayed; session verification peeks instead.
	resolveEmail(store mem.ResetTokenStore, consume bool) string
}

// CodeCredential is the raw emailed token (also covers PKCE-style codes).
type CodeCredential struct {
	Code string
}

func (c CodeCredential) resolveEmail(store mem.ResetTokenStore, consume bool) string {
	return lookup(store, utils.Sha256Hex(c.Code), consume)
}

// TokenPairCredential is the hash-fragment access/refresh pair shape;
// only the access token identifies the reset entry.
type TokenPairCredential struct {
	AccessToken  string
	RefreshToken string
}

func (c TokenPairCredential) resolveEmail(store mem.ResetTokenStore, consume bool) string {
	return lookup(store, utils.Sha256Hex(c.AccessToken), consume)
}

// OtpCredential is a short numeric token scoped to an email address.
type OtpCredential struct {
	Token string
	Email string
}

func (c OtpCredential) resolveEmail(store mem.ResetTokenStore, consume bool) string {
	return lookup(store, otpKey(NormalizeEmail(c.Email), c.Token), consume)
}

// TokenHashCredential carries the digest itself; no hashing needed.
type TokenHashCredential struct {
	TokenHash string
}

func (c TokenHashCredential) resolveEmail(store mem.ResetTokenStore, consume bool) string {
	return lookup(store, c.TokenHash, consume)
}

func lookup(store mem.ResetTokenStore, key string, consume bool) string {
	if consume {
		return store.Consume(key)
	}
	email, ok := store.Peek(key)
	if !ok {
		return ""
	}
	return email
}

func otpKey(email, otp string) string {
	return fmt.Sprintf("otp:%s:%s", email, otp)
}

// CredentialFromRequest picks the variant a request carries. Precedence
// follows specificity: an explicit hash wins, then a code, then a token
// pair, then OTP; a bare token with no email is treated as a code.
func CredentialFromRequest(req request_models.RecoveryCredentialRequest) (RecoveryCredential, error) {
	switch {
	case req.TokenHash != "":
		return TokenHashCredential{TokenHash: req.TokenHash}, nil
	case req.Code != "":
		return CodeCredential{Code: req.Code}, nil
	case req.AccessToken != "":
		return TokenPairCredential{AccessToken: req.AccessToken, RefreshToken: req.RefreshToken}, nil
	case req.Token != "" && req.Email != "":
		return OtpCredential{Token: req.Token, Email: req.Email}, nil
	case req.Token != "":
		return CodeCredential{Code: req.Token}, nil
	default:
		return nil, fmt.Errorf("%w: no recovery credential supplied", utils.ErrValidation)
	}
}

type PasswordResetServiceInterface interface {
	// RequestReset always succeeds from the caller's point of view so the
	// endpoint can't be used to probe which emails have accounts.
	RequestReset(ctx context.Context, email string) error
	VerifySession(ctx context.Context, req request_models.RecoveryCredentialRequest) (*response_models.RecoverySessionResponse, error)
	UpdatePassword(ctx context.Context, req request_models.UpdatePasswordRequest) error
}

type PasswordResetService struct {
	accountRepo repositories.AccountRepository
	store       mem.ResetTokenStore
	mail        IMailService
}

func NewPasswordResetService(
	accountRepo repositories.AccountRepository,
	store mem.ResetTokenStore,
	mail IMailService,
) PasswordResetServiceInterface {
	return &PasswordResetService{
		accountRepo: accountRepo,
		store:       store,
		mail:        mail,
	}
}

func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		log.Printf("reset request: account lookup failed: %v", err)
		return nil
	}
	if account == nil {
		// same outcome as success; no account probing
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		log.Printf("reset token generation failed: %v", err)
		return nil
	}
	s.store.Set(utils.Sha256Hex(token), email, resetTokenTTL)

	// An OTP is issued alongside the link for clients that prompt for a
	// short code instead of opening the email link.
	otp, err := utils.GenerateOtpCode(otpLength)
	if err == nil {
		s.store.Set(otpKey(email, otp), email, resetTokenTTL)
	}

	if err := s.mail.SendPasswordReset(email, token); err != nil {
		log.Printf("reset mail to %s failed: %v", email, err)
	}
	return nil
}

// VerifySession checks a credential without consuming it and mints a
// short-lived recovery token; the credential stays valid until the
// password update burns it.
func (s *PasswordResetService) VerifySession(ctx context.Context, req request_models.RecoveryCredentialRequest) (*response_models.RecoverySessionResponse, error) {
	cred, err := CredentialFromRequest(req)
	if err != nil {
		return nil, err
	}

	email := cred.resolveEmail(s.store, false)
	if email == "" {
		return nil, utils.ErrResetTokenInvalid
	}

	session, err := utils.CreateRecoveryToken(email)
	if err != nil {
		log.Printf("recovery token mint failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return &response_models.RecoverySessionResponse{
		SessionToken: session,
		Email:        email,
	}, nil
}

func (s *PasswordResetService) UpdatePassword(ctx context.Context, req request_models.UpdatePasswordRequest) error {
	cred, err := CredentialFromRequest(req.RecoveryCredentialRequest)
	if err != nil {
		return err
	}

	email := cred.resolveEmail(s.store, true)
	if email == "" {
		return utils.ErrResetTokenInvalid
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("password hash failed: %v", err)
		return utils.ErrDatabaseError
	}

	if err := s.accountRepo.UpdatePasswordByEmail(ctx, email, hash); err != nil {
		log.Printf("password update failed: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}
