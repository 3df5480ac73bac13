package identity

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/domain/billing"
	"github.com/graficaerp/backend/internal/domain/identity"
	"github.com/graficaerp/backend/internal/domain/shared"
)

// TenantServiceConfig contains signup settings
type TenantServiceConfig struct {
	TrialDays       int
	DefaultPlanCode string
}

// TenantService handles tenant registration and lifecycle
type TenantService struct {
	tenantRepo       identity.TenantRepository
	userRepo         identity.UserRepository
	planRepo         billing.PlanRepository
	subscriptionRepo billing.SubscriptionRepository
	config           TenantServiceConfig
	logger           *zap.Logger
}

// NewTenantService creates a new tenant service
func NewTenantService(
	tenantRepo identity.TenantRepository,
	userRepo identity.UserRepository,
	planRepo billing.PlanRepository,
	subscriptionRepo billing.SubscriptionRepository,
	config TenantServiceConfig,
	logger *zap.Logger,
) *TenantService {
	return &TenantService{
		tenantRepo:       tenantRepo,
		userRepo:         userRepo,
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		config:           config,
		logger:           logger,
	}
}

// Signup registers a new print shop: the tenant, its admin user, and a trial
// subscription on the default plan.
func (s *TenantService) Signup(ctx context.Context, input SignupInput) (*SignupResult, error) {
	if _, err := s.tenantRepo.FindBySlug(ctx, input.Slug); err == nil {
		return nil, shared.NewDomainError("SLUG_TAKEN", "This slug is already in use")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmailAnyTenant(ctx, input.AdminEmail); err == nil {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "This email is already registered")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	tenant, err := identity.NewTenant(input.CompanyName, input.Slug)
	if err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	admin, err := identity.NewUser(tenant.ID, input.AdminEmail, input.AdminName, input.AdminPassword, []identity.Role{identity.RoleAdmin})
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, admin); err != nil {
		return nil, err
	}

	plan, err := s.planRepo.FindByCode(ctx, s.config.DefaultPlanCode)
	if err != nil {
		s.logger.Error("Default plan not found during signup",
			zap.String("plan_code", s.config.DefaultPlanCode), zap.Error(err))
		return nil, shared.NewDomainError("PLAN_NOT_FOUND", "Default plan is not configured")
	}

	subscription, err := billing.NewSubscription(tenant.ID, plan.ID, s.config.TrialDays)
	if err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.Save(ctx, subscription); err != nil {
		return nil, err
	}

	s.logger.Info("Tenant signed up",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("slug", tenant.Slug),
		zap.String("plan", plan.Code))

	return &SignupResult{
		TenantID:    tenant.ID,
		Slug:        tenant.Slug,
		AdminUserID: admin.ID,
		TrialUntil:  subscription.PaidThrough,
	}, nil
}

// GetBySlug resolves a tenant for the public catalog routes
func (s *TenantService) GetBySlug(ctx context.Context, slug string) (*identity.Tenant, error) {
	tenant, err := s.tenantRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !tenant.Active {
		return nil, shared.ErrNotFound
	}
	return tenant, nil
}
