package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/domain/billing"
	"github.com/graficaerp/backend/internal/domain/identity"
	"github.com/graficaerp/backend/internal/domain/shared"
	"github.com/graficaerp/backend/internal/infrastructure/auth"
	"github.com/graficaerp/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*identity.User, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmailAnyTenant(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.User, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) CountActive(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockTenantRepository is a mock implementation of identity.TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindBySlug(ctx context.Context, slug string) (*identity.Tenant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

// MockPlanRepository is a mock implementation of billing.PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindByCode(ctx context.Context, code string) (*billing.Plan, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindActive(ctx context.Context) ([]billing.Plan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]billing.Plan), args.Error(1)
}

func (m *MockPlanRepository) Save(ctx context.Context, plan *billing.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

// MockSubscriptionRepository is a mock implementation of billing.SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*billing.Subscription, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindByGatewayCustomerID(ctx context.Context, customerID string) (*billing.Subscription, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindByGatewaySubscriptionID(ctx context.Context, subscriptionID string) (*billing.Subscription, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Save(ctx context.Context, subscription *billing.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

func newTestAuthService(userRepo *MockUserRepository, tenantRepo *MockTenantRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-access-tokens",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "graficaerp-test",
		MaxRefreshCount:        5,
	})
	return NewAuthService(userRepo, tenantRepo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
}

func activeTenantAndUser(t *testing.T) (*identity.Tenant, *identity.User) {
	t.Helper()
	tenant, err := identity.NewTenant("Gráfica Central", "grafica-central")
	require.NoError(t, err)
	user, err := identity.NewUser(tenant.ID, "maria@grafica.com.br", "Maria", "segredo123", []identity.Role{identity.RoleAdmin})
	require.NoError(t, err)
	return tenant, user
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("successful login returns tokens", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tenantRepo := new(MockTenantRepository)
		tenant, user := activeTenantAndUser(t)

		userRepo.On("FindByEmailAnyTenant", ctx, "maria@grafica.com.br").Return(user, nil)
		tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		svc := newTestAuthService(userRepo, tenantRepo)
		result, err := svc.Login(ctx, LoginInput{Email: "maria@grafica.com.br", Password: "segredo123"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, user.ID, result.User.ID)
		assert.Contains(t, result.User.Roles, "admin")
		userRepo.AssertExpectations(t)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tenantRepo := new(MockTenantRepository)
		tenant, user := activeTenantAndUser(t)

		userRepo.On("FindByEmailAnyTenant", ctx, "maria@grafica.com.br").Return(user, nil)
		tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)

		svc := newTestAuthService(userRepo, tenantRepo)
		_, err := svc.Login(ctx, LoginInput{Email: "maria@grafica.com.br", Password: "errado123"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email or password")
	})

	t.Run("unknown email is rejected without detail", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tenantRepo := new(MockTenantRepository)
		userRepo.On("FindByEmailAnyTenant", ctx, "ghost@grafica.com.br").Return(nil, shared.ErrNotFound)

		svc := newTestAuthService(userRepo, tenantRepo)
		_, err := svc.Login(ctx, LoginInput{Email: "ghost@grafica.com.br", Password: "whatever1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email or password")
	})

	t.Run("suspended tenant blocks login", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tenantRepo := new(MockTenantRepository)
		tenant, user := activeTenantAndUser(t)
		tenant.Suspend()

		userRepo.On("FindByEmailAnyTenant", ctx, "maria@grafica.com.br").Return(user, nil)
		tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)

		svc := newTestAuthService(userRepo, tenantRepo)
		_, err := svc.Login(ctx, LoginInput{Email: "maria@grafica.com.br", Password: "segredo123"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Assinatura suspensa")
	})

	t.Run("deactivated user blocks login", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tenantRepo := new(MockTenantRepository)
		_, user := activeTenantAndUser(t)
		user.Deactivate()

		userRepo.On("FindByEmailAnyTenant", ctx, "maria@grafica.com.br").Return(user, nil)

		svc := newTestAuthService(userRepo, tenantRepo)
		_, err := svc.Login(ctx, LoginInput{Email: "maria@grafica.com.br", Password: "segredo123"})
		require.Error(t, err)
	})
}

func TestAuthServiceImpersonate(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	tenantRepo := new(MockTenantRepository)
	_, target := activeTenantAndUser(t)
	adminID := uuid.New()

	userRepo.On("FindByID", ctx, target.TenantID, target.ID).Return(target, nil)

	svc := newTestAuthService(userRepo, tenantRepo)
	result, err := svc.Impersonate(ctx, ImpersonateInput{
		AdminUserID:  adminID,
		TargetUserID: target.ID,
		TenantID:     target.TenantID,
	})
	require.NoError(t, err)
	assert.True(t, result.User.Impersonated)
	assert.Equal(t, target.ID, result.User.ID)
}

func TestAuthServiceLogoutAndRefresh(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	tenantRepo := new(MockTenantRepository)
	tenant, user := activeTenantAndUser(t)

	userRepo.On("FindByEmailAnyTenant", ctx, "maria@grafica.com.br").Return(user, nil)
	tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
	userRepo.On("FindByID", ctx, user.TenantID, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	svc := newTestAuthService(userRepo, tenantRepo)
	login, err := svc.Login(ctx, LoginInput{Email: "maria@grafica.com.br", Password: "segredo123"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	require.NoError(t, svc.Logout(ctx, LogoutInput{
		UserID:   user.ID,
		TenantID: user.TenantID,
	}))
}
