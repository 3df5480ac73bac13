package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockMovement(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()

	t.Run("entrada requires positive quantity", func(t *testing.T) {
		m, err := NewStockMovement(tenantID, productID, MovementEntrada, decimal.NewFromInt(10), "compra")
		require.NoError(t, err)
		assert.True(t, m.Delta().Equal(decimal.NewFromInt(10)))

		_, err = NewStockMovement(tenantID, productID, MovementEntrada, decimal.NewFromInt(-10), "compra")
		require.Error(t, err)
	})

	t.Run("saida negates the delta", func(t *testing.T) {
		m, err := NewStockMovement(tenantID, productID, MovementSaida, decimal.NewFromInt(4), "producao")
		require.NoError(t, err)
		assert.True(t, m.Delta().Equal(decimal.NewFromInt(-4)))
	})

	t.Run("ajuste allows negative but not zero", func(t *testing.T) {
		m, err := NewStockMovement(tenantID, productID, MovementAjuste, decimal.NewFromInt(-3), "inventario")
		require.NoError(t, err)
		assert.True(t, m.Delta().Equal(decimal.NewFromInt(-3)))

		_, err = NewStockMovement(tenantID, productID, MovementAjuste, decimal.Zero, "inventario")
		require.Error(t, err)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewStockMovement(tenantID, productID, MovementType("perda"), decimal.NewFromInt(1), "")
		require.Error(t, err)
	})

	t.Run("links the consuming order", func(t *testing.T) {
		m, err := NewStockMovement(tenantID, productID, MovementSaida, decimal.NewFromInt(1), "")
		require.NoError(t, err)
		orderID := uuid.New()
		m.LinkOrder(orderID)
		require.NotNil(t, m.OrderID)
		assert.Equal(t, orderID, *m.OrderID)
	})
}
