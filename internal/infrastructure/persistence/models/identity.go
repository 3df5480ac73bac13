package models

import (
	"strings"
	"time"

	"github.com/graficaerp/backend/internal/domain/identity"
)

// TenantModel is the persistence model for the Tenant aggregate
type TenantModel struct {
	AggregateModel
	Name     string `gorm:"type:varchar(200);not null"`
	Slug     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Document string `gorm:"type:varchar(20)"`
	Phone    string `gorm:"type:varchar(30)"`
	Active   bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant
func (m *TenantModel) ToDomain() *identity.Tenant {
	tenant := &identity.Tenant{
		Name:     m.Name,
		Slug:     m.Slug,
		Document: m.Document,
		Phone:    m.Phone,
		Active:   m.Active,
	}
	m.PopulateAggregateRoot(&tenant.BaseAggregateRoot)
	return tenant
}

// FromDomain populates the persistence model from a domain Tenant
func (m *TenantModel) FromDomain(t *identity.Tenant) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Name = t.Name
	m.Slug = t.Slug
	m.Document = t.Document
	m.Phone = t.Phone
	m.Active = t.Active
}

// TenantModelFromDomain creates a persistence model from a domain Tenant
func TenantModelFromDomain(t *identity.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}

// UserModel is the persistence model for the User aggregate. Roles are a
// small fixed set, stored as a comma-separated list.
type UserModel struct {
	TenantAggregateModel
	Email         string     `gorm:"type:varchar(200);not null;index"`
	Name          string     `gorm:"type:varchar(200);not null"`
	PasswordHash  string     `gorm:"type:varchar(255);not null"`
	Roles         string     `gorm:"type:varchar(200);not null"`
	Active        bool       `gorm:"not null;default:true"`
	MustResetPass bool       `gorm:"not null;default:false"`
	LastLoginAt   *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		Email:         m.Email,
		Name:          m.Name,
		PasswordHash:  m.PasswordHash,
		Roles:         splitRoles(m.Roles),
		Active:        m.Active,
		MustResetPass: m.MustResetPass,
		LastLoginAt:   m.LastLoginAt,
	}
	m.PopulateTenantAggregateRoot(&user.TenantAggregateRoot)
	return user
}

// FromDomain populates the persistence model from a domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainTenantAggregateRoot(u.TenantAggregateRoot)
	m.Email = u.Email
	m.Name = u.Name
	m.PasswordHash = u.PasswordHash
	m.Roles = joinRoles(u.Roles)
	m.Active = u.Active
	m.MustResetPass = u.MustResetPass
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a persistence model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

func joinRoles(roles []identity.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ",")
}

func splitRoles(raw string) []identity.Role {
	if raw == "" {
		return []identity.Role{}
	}
	parts := strings.Split(raw, ",")
	roles := make([]identity.Role, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			roles = append(roles, identity.Role(p))
		}
	}
	return roles
}
