package controllers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"
	"trackdeck/internal/services"
	"trackdeck/pkg/utils"
)

type BillingController struct {
	billingService services.BillingServiceInterface
}

func NewBillingController(billingService services.BillingServiceInterface) *BillingController {
	return &BillingController{
		billingService: billingService,
	}
}

// GetWorkspace godoc
// @Summary Get the caller's workspace and plan status
// @Description Lazily creates the workspace with a 10-day trial on first access
// @Tags Billing
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /workspace [get]
func (b *BillingController) GetWorkspace(c *gin.Context) {
	resp, err := b.billingService.EnsureWorkspace(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Workspace fetched successfully")
}

// HandleWebhook godoc
// @Summary Stripe billing webhook
// @Description Signature-verified; a bad signature is a 400 and nothing is processed
// @Tags Billing
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /billing/webhook [post]
func (b *BillingController) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Unreadable payload")
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), os.Getenv("STRIPE_WEBHOOK_SECRET"))
	if err != nil {
		log.Printf("billing webhook: signature verification failed: %v", err)
		utils.HandleServiceError(c, utils.ErrWebhookSignature)
		return
	}

	ctx := c.Request.Context()

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Malformed event payload")
			return
		}
		customerID := ""
		if session.Customer != nil {
			customerID = session.Customer.ID
		}
		if err := b.billingService.HandleCheckoutCompleted(ctx, session.ClientReferenceID, customerID); err != nil {
			utils.HandleServiceError(c, err)
			return
		}

	case "invoice.payment_failed":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Malformed event payload")
			return
		}
		if invoice.Customer != nil {
			if err := b.billingService.HandleSubscriptionEnded(ctx, invoice.Customer.ID); err != nil {
				utils.HandleServiceError(c, err)
				return
			}
		}

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Malformed event payload")
			return
		}
		if sub.Customer != nil {
			if err := b.billingService.HandleSubscriptionEnded(ctx, sub.Customer.ID); err != nil {
				utils.HandleServiceError(c, err)
				return
			}
		}

	default:
		// unhandled event types are acknowledged so Stripe stops retrying
		log.Printf("billing webhook: ignoring event type %s", event.Type)
	}

	utils.RespondSuccess(c, nil, "Event processed")
}
