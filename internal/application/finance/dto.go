package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/graficaerp/backend/internal/domain/finance"
)

// RecordPaymentRequest records a payment against an order
type RecordPaymentRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Method     string          `json:"method" binding:"required,oneof=dinheiro pix cartao boleto"`
	Notes      string          `json:"notes" binding:"max=500"`
	RecordedBy *uuid.UUID      `json:"-"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID         uuid.UUID       `json:"id"`
	OrderID    uuid.UUID       `json:"order_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Status     string          `json:"status"`
	Notes      string          `json:"notes"`
	PaidAt     *time.Time      `json:"paid_at"`
	RecordedBy *uuid.UUID      `json:"recorded_by"`
	CreatedAt  time.Time       `json:"created_at"`
}

// OrderPaymentsResponse pairs the payment rows with the reconciled totals
type OrderPaymentsResponse struct {
	OrderID       uuid.UUID         `json:"order_id"`
	Payments      []PaymentResponse `json:"payments"`
	PaidAmount    decimal.Decimal   `json:"paid_amount"`
	Remaining     decimal.Decimal   `json:"remaining_amount"`
	PaymentStatus string            `json:"payment_status"`
}

// CreateEntryRequest records a manual cash-flow entry
type CreateEntryRequest struct {
	Type        string          `json:"type" binding:"required,oneof=receita despesa"`
	Category    string          `json:"category" binding:"required,max=100"`
	Description string          `json:"description" binding:"max=500"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	EntryDate   *time.Time      `json:"entry_date"`
}

// UpdateEntryRequest updates a manual cash-flow entry
type UpdateEntryRequest struct {
	Category    *string          `json:"category" binding:"omitempty,max=100"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
	Amount      *decimal.Decimal `json:"amount"`
	EntryDate   *time.Time       `json:"entry_date"`
}

// EntryResponse represents a cash-flow entry in API responses
type EntryResponse struct {
	ID          uuid.UUID       `json:"id"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	EntryDate   time.Time       `json:"entry_date"`
	OrderID     *uuid.UUID      `json:"order_id,omitempty"`
	PaymentID   *uuid.UUID      `json:"payment_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CashFlowReport is the period ledger with its totals
type CashFlowReport struct {
	From     time.Time       `json:"from"`
	To       time.Time       `json:"to"`
	Entries  []EntryResponse `json:"entries"`
	Total    int64           `json:"total"`
	Receitas decimal.Decimal `json:"receitas"`
	Despesas decimal.Decimal `json:"despesas"`
	Saldo    decimal.Decimal `json:"saldo"`
}

// ToPaymentResponse converts a domain Payment to PaymentResponse
func ToPaymentResponse(p *finance.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID,
		OrderID:    p.OrderID,
		Amount:     p.Amount,
		Method:     string(p.Method),
		Status:     string(p.Status),
		Notes:      p.Notes,
		PaidAt:     p.PaidAt,
		RecordedBy: p.RecordedBy,
		CreatedAt:  p.CreatedAt,
	}
}

// ToEntryResponse converts a domain FinancialEntry to EntryResponse
func ToEntryResponse(e *finance.FinancialEntry) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		Type:        string(e.Type),
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		EntryDate:   e.EntryDate,
		OrderID:     e.OrderID,
		PaymentID:   e.PaymentID,
		CreatedAt:   e.CreatedAt,
	}
}
