package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/graficaerp/backend/internal/domain/identity"
)

// LoginInput contains credentials for authentication
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	IP       string `json:"-"`
}

// LoginResult contains tokens and user info after successful login
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// UserInfo is the authenticated user's profile
type UserInfo struct {
	ID            uuid.UUID `json:"id"`
	TenantID      uuid.UUID `json:"tenant_id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Roles         []string  `json:"roles"`
	MustResetPass bool      `json:"must_reset_password"`
	Impersonated  bool      `json:"impersonated,omitempty"`
}

// RefreshTokenInput contains the refresh token
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutInput identifies the session being closed
type LogoutInput struct {
	UserID      uuid.UUID
	TenantID    uuid.UUID
	TokenID     string
	TokenExpiry time.Time
}

// ChangePasswordInput carries a password change request
type ChangePasswordInput struct {
	UserID      uuid.UUID
	TenantID    uuid.UUID
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// SignupInput registers a new print shop with its first admin user
type SignupInput struct {
	CompanyName   string `json:"company_name" binding:"required,min=2,max=200"`
	Slug          string `json:"slug" binding:"required,min=2,max=60"`
	AdminName     string `json:"admin_name" binding:"required,min=2,max=200"`
	AdminEmail    string `json:"admin_email" binding:"required,email"`
	AdminPassword string `json:"admin_password" binding:"required,min=8"`
}

// SignupResult is returned after a successful signup
type SignupResult struct {
	TenantID    uuid.UUID `json:"tenant_id"`
	Slug        string    `json:"slug"`
	AdminUserID uuid.UUID `json:"admin_user_id"`
	TrialUntil  time.Time `json:"trial_until"`
}

// CreateUserRequest creates an operator account for the tenant
type CreateUserRequest struct {
	Email    string   `json:"email" binding:"required,email"`
	Name     string   `json:"name" binding:"required,min=2,max=200"`
	Password string   `json:"password" binding:"required,min=8"`
	Roles    []string `json:"roles"`
}

// UpdateUserRequest updates an operator account
type UpdateUserRequest struct {
	Name   *string   `json:"name" binding:"omitempty,min=2,max=200"`
	Roles  *[]string `json:"roles"`
	Active *bool     `json:"active"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Roles       []string   `json:"roles"`
	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ImpersonateInput starts a session as another tenant's user
type ImpersonateInput struct {
	AdminUserID  uuid.UUID
	TargetUserID uuid.UUID `json:"target_user_id" binding:"required"`
	TenantID     uuid.UUID `json:"tenant_id" binding:"required"`
}

func roleStrings(roles []identity.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Roles:       roleStrings(u.Roles),
		Active:      u.Active,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
