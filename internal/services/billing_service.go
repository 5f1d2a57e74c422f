package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"trackdeck/internal/models/db_models"
	"trackdeck/internal/models/response_models"
	"trackdeck/internal/repositories"
	"trackdeck/pkg/utils"
)

// TrialDays is the free pro-tier window granted when a workspace is
// first created.
const TrialDays = 10

// IsProAccess reports whether the workspace can use pro features:
// pro plan, or a trial expiry strictly in the future.
func IsProAccess(ws *db_models.Workspace, now time.Time) bool {
	if ws == nil {
		return false
	}
	if ws.Plan == db_models.PlanPro {
		return true
	}
	return ws.TrialExpiresAt != nil && *ws.TrialExpiresAt > now.Unix()
}

// TrialDaysLeft returns the remaining whole days of trial, 0 when no
// trial is set or it has lapsed.
func TrialDaysLeft(ws *db_models.Workspace, now time.Time) int {
	if ws == nil || ws.TrialExpiresAt == nil {
		return 0
	}
	return utils.DaysUntil(*ws.TrialExpiresAt, now)
}

type BillingServiceInterface interface {
	// EnsureWorkspace lazily creates the account's workspace on first
	// access, with a free plan and a fresh trial window.
	EnsureWorkspace(ctx context.Context, sess *Session) (*response_models.WorkspaceResponse, error)
	HasProAccess(ctx context.Context, ownerID uuid.UUID) (bool, error)
	HandleCheckoutCompleted(ctx context.Context, accountID string, customerID string) error
	HandleSubscriptionEnded(ctx context.Context, customerID string) error
}

type BillingService struct {
	workspaceRepo repositories.WorkspaceRepository
}

func NewBillingService(workspaceRepo repositories.WorkspaceRepository) BillingServiceInterface {
	return &BillingService{
		workspaceRepo: workspaceRepo,
	}
}

func (b *BillingService) EnsureWorkspace(ctx context.Context, sess *Session) (*response_models.WorkspaceResponse, error) {
	if sess == nil {
		return nil, utils.ErrUnauthorized
	}

	ws, err := b.ensure(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &response_models.WorkspaceResponse{
		ID:            ws.ID.String(),
		Plan:          string(ws.Plan),
		ProAccess:     IsProAccess(ws, now),
		TrialDaysLeft: TrialDaysLeft(ws, now),
	}, nil
}

func (b *BillingService) HasProAccess(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	ws, err := b.ensure(ctx, ownerID)
	if err != nil {
		return false, err
	}
	return IsProAccess(ws, time.Now()), nil
}

func (b *BillingService) ensure(ctx context.Context, ownerID uuid.UUID) (*db_models.Workspace, error) {
	ws, err := b.workspaceRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		log.Printf("workspace lookup failed: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if ws != nil {
		return ws, nil
	}

	now := time.Now().Unix()
	expires := now + int64(TrialDays*24*60*60)
	ws = &db_models.Workspace{
		OwnerID:        ownerID,
		Plan:           db_models.PlanFree,
		TrialStartedAt: &now,
		TrialExpiresAt: &expires,
	}
	if err := b.workspaceRepo.Insert(ctx, ws); err != nil {
		log.Printf("workspace create failed: %v", err)
		return nil, utils.ErrDatabaseError
	}
	return ws, nil
}

// HandleCheckoutCompleted upgrades the workspace referenced by the
// checkout session and clears the trial window.
func (b *BillingService) HandleCheckoutCompleted(ctx context.Context, accountID string, customerID string) error {
	ownerID, err := uuid.Parse(accountID)
	if err != nil {
		log.Printf("billing webhook: bad account reference %q", accountID)
		return utils.ErrValidation
	}

	ws, err := b.ensure(ctx, ownerID)
	if err != nil {
		return err
	}

	ws.Plan = db_models.PlanPro
	ws.TrialExpiresAt = nil
	ws.StripeCustomerID = customerID

	if err := b.workspaceRepo.Save(ctx, ws); err != nil {
		log.Printf("workspace upgrade failed: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}

// HandleSubscriptionEnded downgrades to free. The trial is not
// restored; a lapsed subscriber has no grace window.
func (b *BillingService) HandleSubscriptionEnded(ctx context.Context, customerID string) error {
	ws, err := b.workspaceRepo.FindByStripeCustomer(ctx, customerID)
	if err != nil {
		log.Printf("workspace lookup by customer failed: %v", err)
		return utils.ErrDatabaseError
	}
	if ws == nil {
		// ack unknown customers to avoid a retry storm, but log for investigation
		log.Printf("billing webhook: no workspace for customer %s", customerID)
		return nil
	}

	ws.Plan = db_models.PlanFree

	if err := b.workspaceRepo.Save(ctx, ws); err != nil {
		log.Printf("workspace downgrade failed: %v", err)
		return utils.ErrDatabaseError
	}
	return nil
}
