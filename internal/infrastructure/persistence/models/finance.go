package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/graficaerp/backend/internal/domain/finance"
)

// PaymentModel is the persistence model for order payments
type PaymentModel struct {
	TenantAggregateModel
	OrderID    uuid.UUID                  `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal            `gorm:"type:decimal(12,2);not null"`
	Method     finance.PaymentMethod      `gorm:"type:varchar(20);not null"`
	Status     finance.PaymentEntryStatus `gorm:"type:varchar(20);not null;default:'pendente'"`
	Notes      string                     `gorm:"type:varchar(500)"`
	PaidAt     *time.Time
	RecordedBy *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *finance.Payment {
	payment := &finance.Payment{
		OrderID:    m.OrderID,
		Amount:     m.Amount,
		Method:     m.Method,
		Status:     m.Status,
		Notes:      m.Notes,
		PaidAt:     m.PaidAt,
		RecordedBy: m.RecordedBy,
	}
	m.PopulateTenantAggregateRoot(&payment.TenantAggregateRoot)
	return payment
}

// FromDomain populates the persistence model from a domain Payment
func (m *PaymentModel) FromDomain(p *finance.Payment) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.OrderID = p.OrderID
	m.Amount = p.Amount
	m.Method = p.Method
	m.Status = p.Status
	m.Notes = p.Notes
	m.PaidAt = p.PaidAt
	m.RecordedBy = p.RecordedBy
}

// PaymentModelFromDomain creates a persistence model from a domain Payment
func PaymentModelFromDomain(p *finance.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// FinancialEntryModel is the persistence model for the cash-flow ledger
type FinancialEntryModel struct {
	TenantAggregateModel
	Type        finance.EntryType `gorm:"type:varchar(20);not null;index"`
	Category    string            `gorm:"type:varchar(100);not null"`
	Description string            `gorm:"type:varchar(500)"`
	Amount      decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	EntryDate   time.Time         `gorm:"not null;index"`
	OrderID     *uuid.UUID        `gorm:"type:uuid;index"`
	PaymentID   *uuid.UUID        `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (FinancialEntryModel) TableName() string {
	return "financial_entries"
}

// ToDomain converts the persistence model to a domain FinancialEntry
func (m *FinancialEntryModel) ToDomain() *finance.FinancialEntry {
	entry := &finance.FinancialEntry{
		Type:        m.Type,
		Category:    m.Category,
		Description: m.Description,
		Amount:      m.Amount,
		EntryDate:   m.EntryDate,
		OrderID:     m.OrderID,
		PaymentID:   m.PaymentID,
	}
	m.PopulateTenantAggregateRoot(&entry.TenantAggregateRoot)
	return entry
}

// FromDomain populates the persistence model from a domain FinancialEntry
func (m *FinancialEntryModel) FromDomain(e *finance.FinancialEntry) {
	m.FromDomainTenantAggregateRoot(e.TenantAggregateRoot)
	m.Type = e.Type
	m.Category = e.Category
	m.Description = e.Description
	m.Amount = e.Amount
	m.EntryDate = e.EntryDate
	m.OrderID = e.OrderID
	m.PaymentID = e.PaymentID
}

// FinancialEntryModelFromDomain creates a persistence model from a domain FinancialEntry
func FinancialEntryModelFromDomain(e *finance.FinancialEntry) *FinancialEntryModel {
	m := &FinancialEntryModel{}
	m.FromDomain(e)
	return m
}
