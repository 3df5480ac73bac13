package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/graficaerp/backend/internal/domain/shared"
	"github.com/graficaerp/backend/internal/domain/shared/valueobject"
)

// PaymentMethod is the payment channel used at the counter or online
type PaymentMethod string

const (
	MethodDinheiro PaymentMethod = "dinheiro"
	MethodPix      PaymentMethod = "pix"
	MethodCartao   PaymentMethod = "cartao"
	MethodBoleto   PaymentMethod = "boleto"
)

// IsValid checks if the method is a known PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodDinheiro, MethodPix, MethodCartao, MethodBoleto:
		return true
	}
	return false
}

// PaymentEntryStatus is the lifecycle status of a single payment row.
// Only confirmado rows count toward the order's paid total.
type PaymentEntryStatus string

const (
	EntryPendente   PaymentEntryStatus = "pendente"
	EntryConfirmado PaymentEntryStatus = "confirmado"
	EntryCancelado  PaymentEntryStatus = "cancelado"
)

// Payment is one payment row linked to an order
type Payment struct {
	shared.TenantAggregateRoot
	OrderID    uuid.UUID
	Amount     decimal.Decimal
	Method     PaymentMethod
	Status     PaymentEntryStatus
	Notes      string
	PaidAt     *time.Time
	RecordedBy *uuid.UUID
}

// NewPayment creates a payment row in pendente status
func NewPayment(tenantID, orderID uuid.UUID, amount valueobject.Money, method PaymentMethod) (*Payment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Unknown payment method")
	}

	return &Payment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderID:             orderID,
		Amount:              amount.Amount(),
		Method:              method,
		Status:              EntryPendente,
	}, nil
}

// Confirm marks the payment as received
func (p *Payment) Confirm() error {
	if p.Status == EntryCancelado {
		return shared.NewDomainError("INVALID_STATE", "Cannot confirm a cancelled payment")
	}
	if p.Status == EntryConfirmado {
		return nil
	}
	now := time.Now()
	p.Status = EntryConfirmado
	p.PaidAt = &now
	p.Touch()
	return nil
}

// Cancel voids the payment so it no longer counts toward the order total
func (p *Payment) Cancel() error {
	if p.Status == EntryCancelado {
		return nil
	}
	p.Status = EntryCancelado
	p.Touch()
	return nil
}

// IsConfirmed returns true when the payment counts toward the paid total
func (p *Payment) IsConfirmed() bool {
	return p.Status == EntryConfirmado
}
