package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graficaerp/backend/internal/domain/shared"
	"github.com/graficaerp/backend/internal/domain/shared/valueobject"
)

func TestNewProduct(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct(tenantID, "CART-100", "Cartão de visita 4x4", "cento", valueobject.NewMoneyBRLFromFloat(90.00))
		require.NoError(t, err)

		assert.Equal(t, tenantID, product.TenantID)
		assert.Equal(t, "CART-100", product.Code)
		assert.True(t, product.UnitPrice.Equal(decimal.NewFromFloat(90.00)))
		assert.True(t, product.Active)
		assert.False(t, product.PublicVisible)
		assert.True(t, product.StockQuantity.IsZero())
	})

	t.Run("defaults unit to un", func(t *testing.T) {
		product, err := NewProduct(tenantID, "BAN-01", "Banner 1x1m", "", valueobject.NewMoneyBRLFromFloat(80.00))
		require.NoError(t, err)
		assert.Equal(t, "un", product.Unit)
	})

	t.Run("fails with empty code", func(t *testing.T) {
		_, err := NewProduct(tenantID, "", "Banner", "un", valueobject.ZeroBRL())
		require.Error(t, err)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct(tenantID, "BAN-01", "Banner", "un", valueobject.NewMoneyBRLFromFloat(-1))
		require.Error(t, err)
	})
}

func TestProductStock(t *testing.T) {
	product, err := NewProduct(uuid.New(), "PAP-A4", "Papel A4 couchê", "resma", valueobject.NewMoneyBRLFromFloat(35.00))
	require.NoError(t, err)
	product.MinimumStock = decimal.NewFromInt(5)

	t.Run("positive delta raises stock", func(t *testing.T) {
		require.NoError(t, product.AdjustStock(decimal.NewFromInt(10)))
		assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(10)))
		assert.False(t, product.BelowMinimum())
	})

	t.Run("negative delta below minimum flags the product", func(t *testing.T) {
		require.NoError(t, product.AdjustStock(decimal.NewFromInt(-7)))
		assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(3)))
		assert.True(t, product.BelowMinimum())
	})

	t.Run("rejects delta that would go negative", func(t *testing.T) {
		err := product.AdjustStock(decimal.NewFromInt(-4))
		require.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(3)))
	})
}

func TestProductVisibility(t *testing.T) {
	product, err := NewProduct(uuid.New(), "FLY-01", "Flyer A5", "milheiro", valueobject.NewMoneyBRLFromFloat(250.00))
	require.NoError(t, err)

	product.SetPublicVisible(true)
	assert.True(t, product.PublicVisible)

	product.Deactivate()
	assert.False(t, product.Active)
	assert.False(t, product.PublicVisible, "deactivation removes the product from the public catalog")

	product.Activate()
	assert.True(t, product.Active)
	assert.False(t, product.PublicVisible)
}
