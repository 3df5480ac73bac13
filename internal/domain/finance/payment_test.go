package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graficaerp/backend/internal/domain/shared/valueobject"
)

func TestNewPayment(t *testing.T) {
	tenantID := uuid.New()
	orderID := uuid.New()

	t.Run("creates a pendente payment", func(t *testing.T) {
		p, err := NewPayment(tenantID, orderID, valueobject.NewMoneyBRLFromFloat(50.00), MethodPix)
		require.NoError(t, err)
		assert.Equal(t, EntryPendente, p.Status)
		assert.Nil(t, p.PaidAt)
		assert.False(t, p.IsConfirmed())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewPayment(tenantID, orderID, valueobject.ZeroBRL(), MethodPix)
		require.Error(t, err)

		_, err = NewPayment(tenantID, orderID, valueobject.NewMoneyBRLFromFloat(-10), MethodPix)
		require.Error(t, err)
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		_, err := NewPayment(tenantID, orderID, valueobject.NewMoneyBRLFromFloat(50.00), PaymentMethod("cheque"))
		require.Error(t, err)
	})
}

func TestPaymentConfirm(t *testing.T) {
	tenantID := uuid.New()
	orderID := uuid.New()

	t.Run("confirm stamps PaidAt", func(t *testing.T) {
		p, err := NewPayment(tenantID, orderID, valueobject.NewMoneyBRLFromFloat(50.00), MethodDinheiro)
		require.NoError(t, err)
		require.NoError(t, p.Confirm())
		assert.True(t, p.IsConfirmed())
		require.NotNil(t, p.PaidAt)
	})

	t.Run("confirm is idempotent", func(t *testing.T) {
		p, err := NewPayment(tenantID, orderID, valueobject.NewMoneyBRLFromFloat(50.00), MethodCartao)
		require.NoError(t, err)
		require.NoError(t, p.Confirm())
		first := *p.PaidAt
		require.NoError(t, p.Confirm())
		assert.Equal(t, first, *p.PaidAt)
	})

	t.Run("cannot confirm a cancelled payment", func(t *testing.T) {
		p, err := NewPayment(tenantID, orderID, valueobject.NewMoneyBRLFromFloat(50.00), MethodBoleto)
		require.NoError(t, err)
		require.NoError(t, p.Cancel())
		require.Error(t, p.Confirm())
	})

	t.Run("cancel removes the payment from the paid total", func(t *testing.T) {
		p, err := NewPayment(tenantID, orderID, valueobject.NewMoneyBRLFromFloat(50.00), MethodPix)
		require.NoError(t, err)
		require.NoError(t, p.Confirm())
		require.NoError(t, p.Cancel())
		assert.False(t, p.IsConfirmed())
	})
}
