package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/domain/billing"
	"github.com/graficaerp/backend/internal/domain/identity"
	"github.com/graficaerp/backend/internal/domain/shared"
)

// UserService manages the tenant's operator accounts. User creation is
// capped by the subscription plan's MaxUsers.
type UserService struct {
	userRepo         identity.UserRepository
	subscriptionRepo billing.SubscriptionRepository
	planRepo         billing.PlanRepository
	logger           *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	subscriptionRepo billing.SubscriptionRepository,
	planRepo billing.PlanRepository,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		logger:           logger,
	}
}

// Create adds an operator account after checking the plan's user limit
func (s *UserService) Create(ctx context.Context, tenantID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	if _, err := s.userRepo.FindByEmailAnyTenant(ctx, req.Email); err == nil {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "This email is already registered")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if err := s.checkUserLimit(ctx, tenantID); err != nil {
		return nil, err
	}

	roles := make([]identity.Role, len(req.Roles))
	for i, r := range req.Roles {
		roles[i] = identity.Role(r)
	}

	user, err := identity.NewUser(tenantID, req.Email, req.Name, req.Password, roles)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("user_id", user.ID.String()))

	resp := ToUserResponse(user)
	return &resp, nil
}

// GetByID retrieves a user
func (s *UserService) GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// List retrieves the tenant's users
func (s *UserService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]UserResponse, int64, error) {
	users, total, err := s.userRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out, total, nil
}

// Update modifies name, roles or active flag
func (s *UserService) Update(ctx context.Context, tenantID, userID uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "User name cannot be empty")
		}
		user.Name = *req.Name
		user.Touch()
	}

	if req.Roles != nil {
		roles := make([]identity.Role, len(*req.Roles))
		for i, r := range *req.Roles {
			role := identity.Role(r)
			if !role.IsValid() {
				return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role "+r)
			}
			roles[i] = role
		}
		if len(roles) == 0 {
			return nil, shared.NewDomainError("INVALID_ROLE", "User must have at least one role")
		}
		user.Roles = roles
		user.Touch()
	}

	if req.Active != nil {
		if *req.Active {
			if !user.Active {
				if err := s.checkUserLimit(ctx, tenantID); err != nil {
					return nil, err
				}
			}
			user.Active = true
			user.Touch()
		} else {
			user.Deactivate()
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// ResetPassword sets a temporary password that must be changed at next login
func (s *UserService) ResetPassword(ctx context.Context, tenantID, userID uuid.UUID, tempPassword string) error {
	user, err := s.userRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return err
	}

	if err := user.SetPassword(tempPassword, true); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("User password reset",
		zap.String("tenant_id", tenantID.String()),
		zap.String("user_id", userID.String()))
	return nil
}

// Delete removes an operator account
func (s *UserService) Delete(ctx context.Context, tenantID, userID uuid.UUID) error {
	return s.userRepo.Delete(ctx, tenantID, userID)
}

func (s *UserService) checkUserLimit(ctx context.Context, tenantID uuid.UUID) error {
	subscription, err := s.subscriptionRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	plan, err := s.planRepo.FindByID(ctx, subscription.PlanID)
	if err != nil {
		return err
	}
	if plan.MaxUsers <= 0 {
		return nil
	}

	active, err := s.userRepo.CountActive(ctx, tenantID)
	if err != nil {
		return err
	}
	if active >= int64(plan.MaxUsers) {
		return shared.NewDomainError("USER_LIMIT_REACHED",
			"Limite de usuários do plano atingido. Faça upgrade para adicionar mais usuários")
	}
	return nil
}
