package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/domain/catalog"
	"github.com/graficaerp/backend/internal/domain/inventory"
	"github.com/graficaerp/backend/internal/domain/shared"
	"github.com/graficaerp/backend/internal/domain/shared/valueobject"
)

// MockMovementRepository is a mock implementation of inventory.Repository
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, int64, error) {
	args := m.Called(ctx, tenantID, productID, filter)
	return args.Get(0).([]inventory.StockMovement), args.Get(1).(int64), args.Error(2)
}

func (m *MockMovementRepository) Save(ctx context.Context, movement *inventory.StockMovement, product *catalog.Product) error {
	args := m.Called(ctx, movement, product)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindPublic(ctx context.Context, tenantID uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBelowMinimum(ctx context.Context, tenantID uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func stockedProduct(t *testing.T, tenantID uuid.UUID, quantity int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(tenantID, "PAP-A4", "Papel A4", "pct", valueobject.NewMoneyBRLFromFloat(25))
	require.NoError(t, err)
	require.NoError(t, product.AdjustStock(decimal.NewFromInt(quantity)))
	return product
}

func TestStockServiceRecord(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("entrada raises the stock through a single write", func(t *testing.T) {
		movementRepo := new(MockMovementRepository)
		productRepo := new(MockProductRepository)
		product := stockedProduct(t, tenantID, 10)

		productRepo.On("FindByID", ctx, tenantID, product.ID).Return(product, nil)
		movementRepo.On("Save", ctx, mock.AnythingOfType("*inventory.StockMovement"), product).Return(nil)

		svc := NewStockService(movementRepo, productRepo, zap.NewNop())
		resp, err := svc.Record(ctx, tenantID, product.ID, RecordMovementRequest{
			Type:     "entrada",
			Quantity: decimal.NewFromInt(5),
			Reason:   "compra de papel",
		})
		require.NoError(t, err)

		assert.True(t, resp.StockQuantity.Equal(decimal.NewFromInt(15)))
		// the movement and the product travel in the same repository call
		movementRepo.AssertExpectations(t)
		productRepo.AssertNotCalled(t, "Save", ctx, mock.Anything)
	})

	t.Run("saida that would drive the stock negative writes nothing", func(t *testing.T) {
		movementRepo := new(MockMovementRepository)
		productRepo := new(MockProductRepository)
		product := stockedProduct(t, tenantID, 3)

		productRepo.On("FindByID", ctx, tenantID, product.ID).Return(product, nil)

		svc := NewStockService(movementRepo, productRepo, zap.NewNop())
		_, err := svc.Record(ctx, tenantID, product.ID, RecordMovementRequest{
			Type:     "saida",
			Quantity: decimal.NewFromInt(5),
		})
		require.ErrorIs(t, err, shared.ErrInsufficientStock)
		movementRepo.AssertNotCalled(t, "Save", ctx, mock.Anything, mock.Anything)
	})

	t.Run("saida linked to an order carries the order id", func(t *testing.T) {
		movementRepo := new(MockMovementRepository)
		productRepo := new(MockProductRepository)
		product := stockedProduct(t, tenantID, 10)
		orderID := uuid.New()

		productRepo.On("FindByID", ctx, tenantID, product.ID).Return(product, nil)
		movementRepo.On("Save", ctx, mock.AnythingOfType("*inventory.StockMovement"), product).Return(nil)

		svc := NewStockService(movementRepo, productRepo, zap.NewNop())
		resp, err := svc.Record(ctx, tenantID, product.ID, RecordMovementRequest{
			Type:     "saida",
			Quantity: decimal.NewFromInt(4),
			OrderID:  &orderID,
		})
		require.NoError(t, err)

		require.NotNil(t, resp.Movement.OrderID)
		assert.Equal(t, orderID, *resp.Movement.OrderID)
		assert.True(t, resp.StockQuantity.Equal(decimal.NewFromInt(6)))
	})

	t.Run("negative ajuste can empty the stock but not cross zero", func(t *testing.T) {
		movementRepo := new(MockMovementRepository)
		productRepo := new(MockProductRepository)
		product := stockedProduct(t, tenantID, 8)

		productRepo.On("FindByID", ctx, tenantID, product.ID).Return(product, nil)
		movementRepo.On("Save", ctx, mock.AnythingOfType("*inventory.StockMovement"), product).Return(nil)

		svc := NewStockService(movementRepo, productRepo, zap.NewNop())
		resp, err := svc.Record(ctx, tenantID, product.ID, RecordMovementRequest{
			Type:     "ajuste",
			Quantity: decimal.NewFromInt(-8),
			Reason:   "inventário",
		})
		require.NoError(t, err)
		assert.True(t, resp.StockQuantity.IsZero())
	})
}
