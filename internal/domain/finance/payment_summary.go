package finance

import (
	"github.com/shopspring/decimal"

	"github.com/graficaerp/backend/internal/domain/orders"
)

// PaymentSummary is the reconciled payment situation of one order,
// recomputed from the full payment list after every mutation.
type PaymentSummary struct {
	Paid      decimal.Decimal
	Remaining decimal.Decimal
	Status    orders.PaymentStatus
}

// Summarize sums the confirmed payments and derives the tri-state payment
// status against the payable total. Pendente and cancelado rows are ignored;
// the remaining balance is clamped at zero.
func Summarize(payable decimal.Decimal, payments []Payment) PaymentSummary {
	paid := decimal.Zero
	for _, p := range payments {
		if p.IsConfirmed() {
			paid = paid.Add(p.Amount)
		}
	}

	remaining := payable.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	// paid >= payable also covers a fully discounted order, where nothing
	// is owed and the order counts as settled
	status := orders.PaymentPendente
	switch {
	case paid.GreaterThanOrEqual(payable):
		status = orders.PaymentPago
	case paid.IsPositive():
		status = orders.PaymentParcial
	}

	return PaymentSummary{
		Paid:      paid,
		Remaining: remaining,
		Status:    status,
	}
}

// ValidateNewAmount rejects a payment that exceeds the remaining balance.
// A fully paid order rejects any positive amount.
func (s PaymentSummary) ValidateNewAmount(amount decimal.Decimal) error {
	if s.Remaining.IsZero() {
		return ErrOrderFullyPaid
	}
	if amount.GreaterThan(s.Remaining) {
		return ErrPaymentExceedsDue
	}
	return nil
}
