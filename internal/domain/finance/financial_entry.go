package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/graficaerp/backend/internal/domain/shared"
	"github.com/graficaerp/backend/internal/domain/shared/valueobject"
)

// Finance-specific domain errors
var (
	ErrOrderFullyPaid    = shared.ErrOrderFullyPaid
	ErrPaymentExceedsDue = shared.ErrPaymentExceedsDue
)

// EntryType distinguishes money in from money out
type EntryType string

const (
	EntryReceita EntryType = "receita"
	EntryDespesa EntryType = "despesa"
)

// IsValid checks if the type is a known EntryType
func (t EntryType) IsValid() bool {
	return t == EntryReceita || t == EntryDespesa
}

// FinancialEntry is one row in the tenant's cash-flow ledger. Confirmed
// order payments insert a receita entry; expenses are recorded manually.
type FinancialEntry struct {
	shared.TenantAggregateRoot
	Type        EntryType
	Category    string
	Description string
	Amount      decimal.Decimal
	EntryDate   time.Time
	OrderID     *uuid.UUID
	PaymentID   *uuid.UUID
}

// NewFinancialEntry creates a ledger entry
func NewFinancialEntry(tenantID uuid.UUID, entryType EntryType, category, description string, amount valueobject.Money, entryDate time.Time) (*FinancialEntry, error) {
	if !entryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTRY_TYPE", "Entry type must be receita or despesa")
	}
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Entry amount must be positive")
	}
	if entryDate.IsZero() {
		entryDate = time.Now()
	}

	return &FinancialEntry{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Type:                entryType,
		Category:            category,
		Description:         description,
		Amount:              amount.Amount(),
		EntryDate:           entryDate,
	}, nil
}

// LinkPayment ties the entry to the order payment that produced it
func (e *FinancialEntry) LinkPayment(orderID, paymentID uuid.UUID) {
	e.OrderID = &orderID
	e.PaymentID = &paymentID
	e.Touch()
}

// Signed returns the amount with despesas negated, for balance sums
func (e *FinancialEntry) Signed() decimal.Decimal {
	if e.Type == EntryDespesa {
		return e.Amount.Neg()
	}
	return e.Amount
}
