package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/domain/billing"
	"github.com/graficaerp/backend/internal/domain/identity"
	"github.com/graficaerp/backend/internal/domain/shared"
)

// CheckoutSession is a hosted payment page created on the gateway
type CheckoutSession struct {
	SessionID   string
	CheckoutURL string
	CustomerID  string
}

// CreateCheckoutInput carries what the gateway needs to open a session
type CreateCheckoutInput struct {
	TenantID          uuid.UUID
	TenantName        string
	Email             string
	PlanCode          string
	GatewayCustomerID string
}

// Gateway is the payment-gateway port. The REST client in infrastructure
// implements it; tests use a mock.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, input CreateCheckoutInput) (*CheckoutSession, error)
	VerifySignature(payload []byte, signature string) error
}

// CheckoutService starts gateway checkouts and exposes the plans and the
// tenant's subscription state.
type CheckoutService struct {
	planRepo         billing.PlanRepository
	subscriptionRepo billing.SubscriptionRepository
	tenantRepo       identity.TenantRepository
	gateway          Gateway
	logger           *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	planRepo billing.PlanRepository,
	subscriptionRepo billing.SubscriptionRepository,
	tenantRepo identity.TenantRepository,
	gateway Gateway,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		tenantRepo:       tenantRepo,
		gateway:          gateway,
		logger:           logger,
	}
}

// ListPlans returns the active plans for the upgrade page
func (s *CheckoutService) ListPlans(ctx context.Context) ([]PlanResponse, error) {
	plans, err := s.planRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PlanResponse, len(plans))
	for i := range plans {
		out[i] = ToPlanResponse(&plans[i])
	}
	return out, nil
}

// GetSubscription returns the tenant's subscription with its plan code
func (s *CheckoutService) GetSubscription(ctx context.Context, tenantID uuid.UUID) (*SubscriptionResponse, error) {
	subscription, err := s.subscriptionRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	resp := ToSubscriptionResponse(subscription)
	if plan, err := s.planRepo.FindByID(ctx, subscription.PlanID); err == nil {
		resp.PlanCode = plan.Code
	}
	return &resp, nil
}

// StartCheckout opens a gateway checkout session for a paid plan. The
// subscription keeps its current plan until the paid webhook confirms the
// first payment; an abandoned checkout changes nothing.
func (s *CheckoutService) StartCheckout(ctx context.Context, tenantID uuid.UUID, email string, req StartCheckoutRequest) (*StartCheckoutResponse, error) {
	if s.gateway == nil {
		return nil, shared.NewDomainError("GATEWAY_DISABLED", "Payment gateway is not configured")
	}

	plan, err := s.planRepo.FindByCode(ctx, req.PlanCode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PLAN", "Unknown plan")
		}
		return nil, err
	}
	if !plan.Active {
		return nil, shared.NewDomainError("INVALID_PLAN", "Plan is no longer offered")
	}
	if plan.IsFree() {
		return nil, shared.NewDomainError("INVALID_PLAN", "Free plans do not require checkout")
	}

	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	subscription, err := s.subscriptionRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, CreateCheckoutInput{
		TenantID:          tenantID,
		TenantName:        tenant.Name,
		Email:             email,
		PlanCode:          plan.Code,
		GatewayCustomerID: subscription.GatewayCustomerID,
	})
	if err != nil {
		s.logger.Error("Gateway checkout failed",
			zap.String("tenant_id", tenantID.String()), zap.Error(err))
		return nil, shared.NewDomainError("GATEWAY_ERROR", "Could not start the checkout; try again shortly")
	}

	subscription.LinkGateway(session.CustomerID, "")
	if err := s.subscriptionRepo.Save(ctx, subscription); err != nil {
		return nil, err
	}

	s.logger.Info("Checkout session created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("plan", plan.Code),
		zap.String("session_id", session.SessionID))

	return &StartCheckoutResponse{CheckoutURL: session.CheckoutURL, SessionID: session.SessionID}, nil
}
