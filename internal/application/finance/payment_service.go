package finance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/domain/finance"
	"github.com/graficaerp/backend/internal/domain/orders"
	"github.com/graficaerp/backend/internal/domain/shared"
	"github.com/graficaerp/backend/internal/domain/shared/valueobject"
)

// Ledger category used for receita entries produced by order payments.
const orderPaymentCategory = "vendas"

// PaymentService records and cancels order payments. Every mutation
// recomputes the order's payment summary from the full payment list and
// mirrors it back onto the order, and keeps the cash-flow ledger in sync.
type PaymentService struct {
	paymentRepo finance.PaymentRepository
	entryRepo   finance.EntryRepository
	orderRepo   orders.Repository
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo finance.PaymentRepository,
	entryRepo finance.EntryRepository,
	orderRepo orders.Repository,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		entryRepo:   entryRepo,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

// Record registers a confirmed payment against an order. The amount is
// validated against the remaining balance before anything is written.
func (s *PaymentService) Record(ctx context.Context, tenantID, orderID uuid.UUID, req RecordPaymentRequest) (*OrderPaymentsResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsCancelled() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot record payments on a cancelled order")
	}

	existing, err := s.paymentRepo.FindByOrder(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	summary := finance.Summarize(order.PayableAmount, existing)
	if err := summary.ValidateNewAmount(req.Amount); err != nil {
		return nil, err
	}

	payment, err := finance.NewPayment(tenantID, orderID, valueobject.NewMoneyBRL(req.Amount), finance.PaymentMethod(req.Method))
	if err != nil {
		return nil, err
	}
	payment.Notes = req.Notes
	payment.RecordedBy = req.RecordedBy
	if err := payment.Confirm(); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	entry, err := finance.NewFinancialEntry(tenantID, finance.EntryReceita, orderPaymentCategory,
		"Pagamento do pedido "+order.Number, valueobject.NewMoneyBRL(req.Amount), time.Now())
	if err != nil {
		return nil, err
	}
	entry.LinkPayment(orderID, payment.ID)
	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	resp, err := s.reconcile(ctx, tenantID, order, append(existing, *payment))
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment recorded",
		zap.String("tenant_id", tenantID.String()),
		zap.String("order_number", order.Number),
		zap.String("amount", req.Amount.StringFixed(2)),
		zap.String("payment_status", resp.PaymentStatus))
	return resp, nil
}

// RecordConfirmed satisfies the order service's payment port, used for the
// down payment taken together with a status change.
func (s *PaymentService) RecordConfirmed(ctx context.Context, tenantID, orderID uuid.UUID, amount decimal.Decimal, method string, recordedBy *uuid.UUID, note string) error {
	if method == "" {
		method = string(finance.MethodDinheiro)
	}
	_, err := s.Record(ctx, tenantID, orderID, RecordPaymentRequest{
		Amount:     amount,
		Method:     method,
		Notes:      note,
		RecordedBy: recordedBy,
	})
	return err
}

// Cancel voids a payment. The matching receita ledger entry is removed and
// the order's payment summary is recomputed without the cancelled row.
func (s *PaymentService) Cancel(ctx context.Context, tenantID, paymentID uuid.UUID) (*OrderPaymentsResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, tenantID, paymentID)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, tenantID, payment.OrderID)
	if err != nil {
		return nil, err
	}

	if err := payment.Cancel(); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	entry, err := s.entryRepo.FindByPayment(ctx, tenantID, paymentID)
	switch {
	case err == nil:
		if err := s.entryRepo.Delete(ctx, tenantID, entry.ID); err != nil {
			return nil, err
		}
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	payments, err := s.paymentRepo.FindByOrder(ctx, tenantID, payment.OrderID)
	if err != nil {
		return nil, err
	}

	resp, err := s.reconcile(ctx, tenantID, order, payments)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment cancelled",
		zap.String("tenant_id", tenantID.String()),
		zap.String("order_number", order.Number),
		zap.String("payment_id", paymentID.String()))
	return resp, nil
}

// ListByOrder returns the payment rows and reconciled totals for an order
func (s *PaymentService) ListByOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderPaymentsResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByOrder(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	summary := finance.Summarize(order.PayableAmount, payments)
	return buildOrderPayments(orderID, payments, summary), nil
}

func (s *PaymentService) reconcile(ctx context.Context, tenantID uuid.UUID, order *orders.Order, payments []finance.Payment) (*OrderPaymentsResponse, error) {
	summary := finance.Summarize(order.PayableAmount, payments)
	order.ApplyPaymentSummary(summary.Paid)
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	return buildOrderPayments(order.ID, payments, summary), nil
}

func buildOrderPayments(orderID uuid.UUID, payments []finance.Payment, summary finance.PaymentSummary) *OrderPaymentsResponse {
	rows := make([]PaymentResponse, len(payments))
	for i := range payments {
		rows[i] = ToPaymentResponse(&payments[i])
	}
	return &OrderPaymentsResponse{
		OrderID:       orderID,
		Payments:      rows,
		PaidAmount:    summary.Paid,
		Remaining:     summary.Remaining,
		PaymentStatus: string(summary.Status),
	}
}
