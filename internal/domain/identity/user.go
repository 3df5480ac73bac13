package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/graficaerp/backend/internal/domain/shared"
)

// Role is a coarse permission bundle assigned to users
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleAtendente  Role = "atendente"
	RoleProducao   Role = "producao"
	RoleFinanceiro Role = "financeiro"
)

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAtendente, RoleProducao, RoleFinanceiro:
		return true
	}
	return false
}

// User is a tenant-scoped operator account
type User struct {
	shared.TenantAggregateRoot
	Email         string
	Name          string
	PasswordHash  string
	Roles         []Role
	Active        bool
	MustResetPass bool
	LastLoginAt   *time.Time
}

// NewUser creates an active user with a hashed password
func NewUser(tenantID uuid.UUID, email, name, password string, roles []Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email is required")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "User name cannot be empty")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}
	for _, r := range roles {
		if !r.IsValid() {
			return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role "+string(r))
		}
	}
	if len(roles) == 0 {
		roles = []Role{RoleAtendente}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Email:               email,
		Name:                name,
		PasswordHash:        string(hash),
		Roles:               roles,
		Active:              true,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetPassword replaces the password hash
func (u *User) SetPassword(password string, mustReset bool) error {
	if len(password) < 8 {
		return shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.MustResetPass = mustReset
	u.Touch()
	return nil
}

// HasRole reports whether the user holds the given role
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RecordLogin stamps the last successful login
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.Touch()
}

// Deactivate blocks the account
func (u *User) Deactivate() {
	u.Active = false
	u.Touch()
}
