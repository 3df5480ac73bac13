package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graficaerp/backend/internal/domain/orders"
	"github.com/graficaerp/backend/internal/domain/shared/valueobject"
)

func confirmedPayment(t *testing.T, orderID uuid.UUID, amount float64) Payment {
	t.Helper()
	p, err := NewPayment(uuid.New(), orderID, valueobject.NewMoneyBRLFromFloat(amount), MethodPix)
	require.NoError(t, err)
	require.NoError(t, p.Confirm())
	return *p
}

func TestSummarize(t *testing.T) {
	orderID := uuid.New()
	payable := decimal.NewFromFloat(100.00)

	t.Run("no payments is pendente", func(t *testing.T) {
		s := Summarize(payable, nil)
		assert.Equal(t, orders.PaymentPendente, s.Status)
		assert.True(t, s.Paid.IsZero())
		assert.True(t, s.Remaining.Equal(payable))
	})

	t.Run("partial then full on a 100.00 order", func(t *testing.T) {
		first := confirmedPayment(t, orderID, 60.00)

		s := Summarize(payable, []Payment{first})
		assert.Equal(t, orders.PaymentParcial, s.Status)
		assert.True(t, s.Paid.Equal(decimal.NewFromFloat(60.00)))
		assert.True(t, s.Remaining.Equal(decimal.NewFromFloat(40.00)))

		second := confirmedPayment(t, orderID, 40.00)
		s = Summarize(payable, []Payment{first, second})
		assert.Equal(t, orders.PaymentPago, s.Status)
		assert.True(t, s.Paid.Equal(payable))
		assert.True(t, s.Remaining.IsZero())
	})

	t.Run("pendente and cancelado rows do not count", func(t *testing.T) {
		pending, err := NewPayment(uuid.New(), orderID, valueobject.NewMoneyBRLFromFloat(60.00), MethodDinheiro)
		require.NoError(t, err)

		cancelled := confirmedPayment(t, orderID, 30.00)
		require.NoError(t, (&cancelled).Cancel())

		s := Summarize(payable, []Payment{*pending, cancelled})
		assert.Equal(t, orders.PaymentPendente, s.Status)
		assert.True(t, s.Paid.IsZero())
	})

	t.Run("overpayment clamps remaining at zero", func(t *testing.T) {
		p := confirmedPayment(t, orderID, 120.00)
		s := Summarize(payable, []Payment{p})
		assert.Equal(t, orders.PaymentPago, s.Status)
		assert.True(t, s.Remaining.IsZero())
	})

	t.Run("zero payable counts as settled", func(t *testing.T) {
		s := Summarize(decimal.Zero, nil)
		assert.Equal(t, orders.PaymentPago, s.Status)
		assert.True(t, s.Remaining.IsZero())
	})

	t.Run("cancelling a payment reverts pago to parcial", func(t *testing.T) {
		first := confirmedPayment(t, orderID, 60.00)
		second := confirmedPayment(t, orderID, 40.00)
		require.NoError(t, (&second).Cancel())

		s := Summarize(payable, []Payment{first, second})
		assert.Equal(t, orders.PaymentParcial, s.Status)
		assert.True(t, s.Remaining.Equal(decimal.NewFromFloat(40.00)))
	})
}

func TestValidateNewAmount(t *testing.T) {
	orderID := uuid.New()
	payable := decimal.NewFromFloat(100.00)

	t.Run("accepts amount within the remaining balance", func(t *testing.T) {
		s := Summarize(payable, []Payment{confirmedPayment(t, orderID, 60.00)})
		assert.NoError(t, s.ValidateNewAmount(decimal.NewFromFloat(40.00)))
		assert.NoError(t, s.ValidateNewAmount(decimal.NewFromFloat(10.00)))
	})

	t.Run("rejects amount above the remaining balance", func(t *testing.T) {
		s := Summarize(payable, []Payment{confirmedPayment(t, orderID, 60.00)})
		err := s.ValidateNewAmount(decimal.NewFromFloat(40.01))
		require.ErrorIs(t, err, ErrPaymentExceedsDue)
	})

	t.Run("fully paid order rejects any positive amount", func(t *testing.T) {
		s := Summarize(payable, []Payment{confirmedPayment(t, orderID, 100.00)})
		err := s.ValidateNewAmount(decimal.NewFromFloat(0.01))
		require.ErrorIs(t, err, ErrOrderFullyPaid)
		assert.Equal(t, "Pedido já está quitado", err.Error())
	})

	t.Run("fully discounted order rejects payments as already settled", func(t *testing.T) {
		s := Summarize(decimal.Zero, nil)
		err := s.ValidateNewAmount(decimal.NewFromFloat(10.00))
		require.ErrorIs(t, err, ErrOrderFullyPaid)
	})
}
