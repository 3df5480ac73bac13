package orders

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/domain/catalog"
	"github.com/graficaerp/backend/internal/domain/orders"
	"github.com/graficaerp/backend/internal/domain/partner"
	"github.com/graficaerp/backend/internal/domain/shared"
	"github.com/graficaerp/backend/internal/domain/shared/valueobject"
)

// MockOrderRepository is a mock implementation of orders.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*orders.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*orders.Order, error) {
	args := m.Called(ctx, tenantID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByPublicToken(ctx context.Context, token string) (*orders.Order, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]orders.Order, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]orders.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status orders.OrderStatus, filter shared.Filter) ([]orders.Order, error) {
	args := m.Called(ctx, tenantID, status, filter)
	return args.Get(0).([]orders.Order), args.Error(1)
}

func (m *MockOrderRepository) FindOpen(ctx context.Context, tenantID uuid.UUID) ([]orders.Order, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]orders.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *orders.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockOrderRepository) NextNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Customer, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
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

// MockPaymentRecorder is a mock implementation of PaymentRecorder
type MockPaymentRecorder struct {
	mock.Mock
}

func (m *MockPaymentRecorder) RecordConfirmed(ctx context.Context, tenantID, orderID uuid.UUID, amount decimal.Decimal, method string, recordedBy *uuid.UUID, note string) error {
	args := m.Called(ctx, tenantID, orderID, amount, method, recordedBy, note)
	return args.Error(0)
}

// MockArtworkStorage is a mock implementation of ArtworkStorage
type MockArtworkStorage struct {
	mock.Mock
}

func (m *MockArtworkStorage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	args := m.Called(ctx, key, contentType, body, size)
	return args.Error(0)
}

func (m *MockArtworkStorage) PresignDownload(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

type orderServiceMocks struct {
	orderRepo    *MockOrderRepository
	customerRepo *MockCustomerRepository
	productRepo  *MockProductRepository
	payments     *MockPaymentRecorder
	artwork      *MockArtworkStorage
}

func newOrderService() (*OrderService, orderServiceMocks) {
	m := orderServiceMocks{
		orderRepo:    new(MockOrderRepository),
		customerRepo: new(MockCustomerRepository),
		productRepo:  new(MockProductRepository),
		payments:     new(MockPaymentRecorder),
		artwork:      new(MockArtworkStorage),
	}
	svc := NewOrderService(m.orderRepo, m.customerRepo, m.productRepo, m.payments, m.artwork, zap.NewNop())
	return svc, m
}

func activeProduct(t *testing.T, tenantID uuid.UUID, name string, price float64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(tenantID, "PRD-"+name, name, "un", valueobject.NewMoneyBRLFromFloat(price))
	require.NoError(t, err)
	return product
}

func quoteWithItem(t *testing.T, tenantID uuid.UUID, payable float64) *orders.Order {
	t.Helper()
	order, err := orders.NewOrder(tenantID, "PED-0001", uuid.New(), "Padaria Central")
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), "Banner 1x2m", "", decimal.NewFromInt(1), valueobject.NewMoneyBRLFromFloat(payable))
	require.NoError(t, err)
	return order
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, code, derr.Code)
}

func TestOrderServiceCreate(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates a quote with items and totals", func(t *testing.T) {
		svc, m := newOrderService()
		customer, err := partner.NewCustomer(tenantID, "Padaria Central")
		require.NoError(t, err)
		product := activeProduct(t, tenantID, "Cartão de visita", 90)

		m.customerRepo.On("FindByID", ctx, tenantID, customer.ID).Return(customer, nil)
		m.orderRepo.On("NextNumber", ctx, tenantID).Return("PED-0042", nil)
		m.productRepo.On("FindByID", ctx, tenantID, product.ID).Return(product, nil)
		m.orderRepo.On("Save", ctx, mock.AnythingOfType("*orders.Order")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreateOrderRequest{
			CustomerID: customer.ID,
			Items: []OrderItemRequest{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(2)},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "PED-0042", resp.Number)
		assert.Equal(t, "orcamento", resp.Status)
		assert.Equal(t, "pendente", resp.PaymentStatus)
		assert.Len(t, resp.Items, 1)
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(180)))
		assert.True(t, resp.PayableAmount.Equal(decimal.NewFromInt(180)))
		m.orderRepo.AssertExpectations(t)
	})

	t.Run("rejects an unknown customer", func(t *testing.T) {
		svc, m := newOrderService()
		customerID := uuid.New()
		m.customerRepo.On("FindByID", ctx, tenantID, customerID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, tenantID, CreateOrderRequest{CustomerID: customerID})
		requireDomainCode(t, err, "INVALID_CUSTOMER")
		m.orderRepo.AssertNotCalled(t, "Save", ctx, mock.Anything)
	})

	t.Run("rejects an inactive product", func(t *testing.T) {
		svc, m := newOrderService()
		customer, err := partner.NewCustomer(tenantID, "Padaria Central")
		require.NoError(t, err)
		product := activeProduct(t, tenantID, "Flyer A5", 10)
		product.Deactivate()

		m.customerRepo.On("FindByID", ctx, tenantID, customer.ID).Return(customer, nil)
		m.orderRepo.On("NextNumber", ctx, tenantID).Return("PED-0043", nil)
		m.productRepo.On("FindByID", ctx, tenantID, product.ID).Return(product, nil)

		_, err = svc.Create(ctx, tenantID, CreateOrderRequest{
			CustomerID: customer.ID,
			Items:      []OrderItemRequest{{ProductID: product.ID, Quantity: decimal.NewFromInt(1)}},
		})
		requireDomainCode(t, err, "PRODUCT_INACTIVE")
	})
}

func TestOrderServiceItems(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("adding an item recalculates the payable amount", func(t *testing.T) {
		svc, m := newOrderService()
		order := quoteWithItem(t, tenantID, 100)
		product := activeProduct(t, tenantID, "Adesivo vinil", 25)

		m.orderRepo.On("FindByID", ctx, tenantID, order.ID).Return(order, nil)
		m.productRepo.On("FindByID", ctx, tenantID, product.ID).Return(product, nil)
		m.orderRepo.On("Save", ctx, order).Return(nil)

		resp, err := svc.AddItem(ctx, tenantID, order.ID, AddItemRequest{
			ProductID: product.ID,
			Quantity:  decimal.NewFromInt(4),
		})
		require.NoError(t, err)

		assert.Len(t, resp.Items, 2)
		assert.True(t, resp.PayableAmount.Equal(decimal.NewFromInt(200)))
	})

	t.Run("items are frozen after approval", func(t *testing.T) {
		svc, m := newOrderService()
		order := quoteWithItem(t, tenantID, 100)
		require.NoError(t, order.ChangeStatus(orders.StatusAprovado, nil, ""))
		product := activeProduct(t, tenantID, "Adesivo vinil", 25)

		m.orderRepo.On("FindByID", ctx, tenantID, order.ID).Return(order, nil)
		m.productRepo.On("FindByID", ctx, tenantID, product.ID).Return(product, nil)

		_, err := svc.AddItem(ctx, tenantID, order.ID, AddItemRequest{
			ProductID: product.ID,
			Quantity:  decimal.NewFromInt(1),
		})
		requireDomainCode(t, err, "INVALID_STATE")
		m.orderRepo.AssertNotCalled(t, "Save", ctx, mock.Anything)
	})

	t.Run("discount above the total is rejected", func(t *testing.T) {
		svc, m := newOrderService()
		order := quoteWithItem(t, tenantID, 100)
		m.orderRepo.On("FindByID", ctx, tenantID, order.ID).Return(order, nil)

		_, err := svc.ApplyDiscount(ctx, tenantID, order.ID, ApplyDiscountRequest{
			Discount: decimal.NewFromInt(150),
		})
		requireDomainCode(t, err, "INVALID_DISCOUNT")
	})
}

func TestOrderServiceChangeStatus(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("moves the order along the lifecycle and records history", func(t *testing.T) {
		svc, m := newOrderService()
		order := quoteWithItem(t, tenantID, 100)

		m.orderRepo.On("FindByID", ctx, tenantID, order.ID).Return(order, nil)
		m.orderRepo.On("Save", ctx, order).Return(nil)

		resp, err := svc.ChangeStatus(ctx, tenantID, order.ID, ChangeStatusRequest{Status: "aprovado"})
		require.NoError(t, err)

		assert.Equal(t, "aprovado", resp.Status)
		require.Len(t, resp.History, 1)
		assert.Equal(t, "orcamento", resp.History[0].FromStatus)
		assert.Equal(t, "aprovado", resp.History[0].ToStatus)
	})

	t.Run("same status is an accepted no-op without an audit row", func(t *testing.T) {
		svc, m := newOrderService()
		order := quoteWithItem(t, tenantID, 100)

		m.orderRepo.On("FindByID", ctx, tenantID, order.ID).Return(order, nil)
		m.orderRepo.On("Save", ctx, order).Return(nil)

		resp, err := svc.ChangeStatus(ctx, tenantID, order.ID, ChangeStatusRequest{Status: "orcamento"})
		require.NoError(t, err)

		assert.Equal(t, "orcamento", resp.Status)
		assert.Empty(t, resp.History)
	})

	t.Run("rejects a transition outside the successor map", func(t *testing.T) {
		svc, m := newOrderService()
		order := quoteWithItem(t, tenantID, 100)

		m.orderRepo.On("FindByID", ctx, tenantID, order.ID).Return(order, nil)

		_, err := svc.ChangeStatus(ctx, tenantID, order.ID, ChangeStatusRequest{Status: "entregue"})
		requireDomainCode(t, err, "INVALID_TRANSITION")
		m.orderRepo.AssertNotCalled(t, "Save", ctx, mock.Anything)
	})

	t.Run("cannot approve a quote without items", func(t *testing.T) {
		svc, m := newOrderService()
		order, err := orders.NewOrder(tenantID, "PED-0001", uuid.New(), "Padaria Central")
		require.NoError(t, err)

		m.orderRepo.On("FindByID", ctx, tenantID, order.ID).Return(order, nil)

		_, err = svc.ChangeStatus(ctx, tenantID, order.ID, ChangeStatusRequest{Status: "aprovado"})
		requireDomainCode(t, err, "NO_ITEMS")
	})

	t.Run("approval with entrada records the down payment", func(t *testing.T) {
		svc, m := newOrderService()
		order := quoteWithItem(t, tenantID, 100)
		userID := uuid.New()
		down := decimal.NewFromInt(30)

		m.orderRepo.On("FindByID", ctx, tenantID, order.ID).Return(order, nil)
		m.orderRepo.On("Save", ctx, order).Return(nil)
		m.payments.On("RecordConfirmed", ctx, tenantID, order.ID, down, "pix", &userID,
			"Entrada no pedido PED-0001").Return(nil)

		resp, err := svc.ChangeStatus(ctx, tenantID, order.ID, ChangeStatusRequest{
			Status:      "aprovado",
			DownPayment: &down,
			Method:      "pix",
			ChangedBy:   &userID,
		})
		require.NoError(t, err)

		assert.Equal(t, "aprovado", resp.Status)
		m.payments.AssertExpectations(t)
	})

	t.Run("failed down payment surfaces the payment error", func(t *testing.T) {
		svc, m := newOrderService()
		order := quoteWithItem(t, tenantID, 100)
		down := decimal.NewFromInt(130)

		m.orderRepo.On("FindByID", ctx, tenantID, order.ID).Return(order, nil)
		m.orderRepo.On("Save", ctx, order).Return(nil)
		m.payments.On("RecordConfirmed", ctx, tenantID, order.ID, down, "pix",
			(*uuid.UUID)(nil), "Entrada no pedido PED-0001").Return(shared.ErrPaymentExceedsDue)

		_, err := svc.ChangeStatus(ctx, tenantID, order.ID, ChangeStatusRequest{
			Status:      "aprovado",
			DownPayment: &down,
			Method:      "pix",
		})
		require.ErrorIs(t, err, shared.ErrPaymentExceedsDue)
	})
}

func TestOrderServiceKanban(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	svc, m := newOrderService()
	quote := quoteWithItem(t, tenantID, 100)
	inProduction := quoteWithItem(t, tenantID, 50)
	require.NoError(t, inProduction.ChangeStatus(orders.StatusAprovado, nil, ""))
	require.NoError(t, inProduction.ChangeStatus(orders.StatusProducao, nil, ""))

	m.orderRepo.On("FindOpen", ctx, tenantID).Return([]orders.Order{*quote, *inProduction}, nil)

	columns, err := svc.Kanban(ctx, tenantID)
	require.NoError(t, err)

	// every non-terminal status gets a column, in board order
	require.Len(t, columns, 5)
	statuses := make([]string, len(columns))
	for i, col := range columns {
		statuses[i] = col.Status
	}
	assert.Equal(t, []string{"orcamento", "aprovado", "producao", "acabamento", "pronto"}, statuses)

	assert.Len(t, columns[0].Orders, 1)
	assert.Len(t, columns[2].Orders, 1)
	assert.NotNil(t, columns[1].Orders, "empty columns marshal as [] not null")
	assert.Empty(t, columns[1].Orders)
}

func TestOrderServiceArtwork(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("upload stores the file and links the key", func(t *testing.T) {
		svc, m := newOrderService()
		order := quoteWithItem(t, tenantID, 100)
		body := strings.NewReader("fake-pdf-bytes")

		m.orderRepo.On("FindByID", ctx, tenantID, order.ID).Return(order, nil)
		m.artwork.On("Upload", ctx, mock.AnythingOfType("string"), "application/pdf", body, int64(14)).Return(nil)
		m.orderRepo.On("Save", ctx, order).Return(nil)

		resp, err := svc.AttachArtwork(ctx, tenantID, order.ID, "arte-final.pdf", "application/pdf", body, 14)
		require.NoError(t, err)

		assert.Contains(t, resp.ArtworkKey, "orders/PED-0001/arte-final.pdf")
		m.artwork.AssertExpectations(t)
	})

	t.Run("storage failure maps to UPLOAD_FAILED", func(t *testing.T) {
		svc, m := newOrderService()
		order := quoteWithItem(t, tenantID, 100)
		body := strings.NewReader("x")

		m.orderRepo.On("FindByID", ctx, tenantID, order.ID).Return(order, nil)
		m.artwork.On("Upload", ctx, mock.AnythingOfType("string"), "image/png", body, int64(1)).
			Return(errors.New("connection reset"))

		_, err := svc.AttachArtwork(ctx, tenantID, order.ID, "logo.png", "image/png", body, 1)
		requireDomainCode(t, err, "UPLOAD_FAILED")
		m.orderRepo.AssertNotCalled(t, "Save", ctx, mock.Anything)
	})

	t.Run("download without artwork is a not-found", func(t *testing.T) {
		svc, m := newOrderService()
		order := quoteWithItem(t, tenantID, 100)

		m.orderRepo.On("FindByID", ctx, tenantID, order.ID).Return(order, nil)

		_, err := svc.ArtworkURL(ctx, tenantID, order.ID)
		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderServiceDelete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("deletes a quote", func(t *testing.T) {
		svc, m := newOrderService()
		order := quoteWithItem(t, tenantID, 100)

		m.orderRepo.On("FindByID", ctx, tenantID, order.ID).Return(order, nil)
		m.orderRepo.On("Delete", ctx, tenantID, order.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, tenantID, order.ID))
		m.orderRepo.AssertExpectations(t)
	})

	t.Run("refuses to delete an approved order", func(t *testing.T) {
		svc, m := newOrderService()
		order := quoteWithItem(t, tenantID, 100)
		require.NoError(t, order.ChangeStatus(orders.StatusAprovado, nil, ""))

		m.orderRepo.On("FindByID", ctx, tenantID, order.ID).Return(order, nil)

		err := svc.Delete(ctx, tenantID, order.ID)
		requireDomainCode(t, err, "INVALID_STATE")
		m.orderRepo.AssertNotCalled(t, "Delete", ctx, tenantID, order.ID)
	})
}
