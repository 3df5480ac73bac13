package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/graficaerp/backend/internal/domain/shared"
)

// PaymentRepository is the persistence port for order payments
type PaymentRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Payment, error)
	FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]Payment, error)
	Save(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// CashFlowTotals aggregates the ledger over a period
type CashFlowTotals struct {
	Receitas decimal.Decimal
	Despesas decimal.Decimal
	Saldo    decimal.Decimal
}

// EntryRepository is the persistence port for the cash-flow ledger
type EntryRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*FinancialEntry, error)
	FindByPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time, filter shared.Filter) ([]FinancialEntry, int64, error)
	FindByPayment(ctx context.Context, tenantID, paymentID uuid.UUID) (*FinancialEntry, error)
	Save(ctx context.Context, entry *FinancialEntry) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	TotalsByPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (CashFlowTotals, error)
}
