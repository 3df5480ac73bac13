package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/domain/finance"
	"github.com/graficaerp/backend/internal/domain/orders"
	"github.com/graficaerp/backend/internal/domain/shared"
	"github.com/graficaerp/backend/internal/domain/shared/valueobject"
)

// MockPaymentRepository is a mock implementation of finance.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*finance.Payment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]finance.Payment, error) {
	args := m.Called(ctx, tenantID, orderID)
	return args.Get(0).([]finance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *finance.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockEntryRepository is a mock implementation of finance.EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*finance.FinancialEntry, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.FinancialEntry), args.Error(1)
}

func (m *MockEntryRepository) FindByPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time, filter shared.Filter) ([]finance.FinancialEntry, int64, error) {
	args := m.Called(ctx, tenantID, from, to, filter)
	return args.Get(0).([]finance.FinancialEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockEntryRepository) FindByPayment(ctx context.Context, tenantID, paymentID uuid.UUID) (*finance.FinancialEntry, error) {
	args := m.Called(ctx, tenantID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.FinancialEntry), args.Error(1)
}

func (m *MockEntryRepository) TotalsByPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (finance.CashFlowTotals, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).(finance.CashFlowTotals), args.Error(1)
}

func (m *MockEntryRepository) Save(ctx context.Context, entry *finance.FinancialEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

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

func newOrderWithPayable(t *testing.T, tenantID uuid.UUID, payable float64) *orders.Order {
	t.Helper()
	order, err := orders.NewOrder(tenantID, "PED-0001", uuid.New(), "Padaria Central")
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), "Cartão de visita", "", decimal.NewFromInt(1), valueobject.NewMoneyBRLFromFloat(payable))
	require.NoError(t, err)
	return order
}

func confirmedPayment(t *testing.T, tenantID, orderID uuid.UUID, amount float64) finance.Payment {
	t.Helper()
	p, err := finance.NewPayment(tenantID, orderID, valueobject.NewMoneyBRLFromFloat(amount), finance.MethodPix)
	require.NoError(t, err)
	require.NoError(t, p.Confirm())
	return *p
}

func TestPaymentServiceRecord(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	newService := func(paymentRepo *MockPaymentRepository, entryRepo *MockEntryRepository, orderRepo *MockOrderRepository) *PaymentService {
		return NewPaymentService(paymentRepo, entryRepo, orderRepo, zap.NewNop())
	}

	t.Run("partial payment leaves the order parcial", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		entryRepo := new(MockEntryRepository)
		orderRepo := new(MockOrderRepository)
		order := newOrderWithPayable(t, tenantID, 100)

		orderRepo.On("FindByID", ctx, tenantID, order.ID).Return(order, nil)
		paymentRepo.On("FindByOrder", ctx, tenantID, order.ID).Return([]finance.Payment{}, nil)
		paymentRepo.On("Save", ctx, mock.AnythingOfType("*finance.Payment")).Return(nil)
		entryRepo.On("Save", ctx, mock.AnythingOfType("*finance.FinancialEntry")).Return(nil)
		orderRepo.On("Save", ctx, order).Return(nil)

		svc := newService(paymentRepo, entryRepo, orderRepo)
		resp, err := svc.Record(ctx, tenantID, order.ID, RecordPaymentRequest{
			Amount: decimal.NewFromFloat(60),
			Method: "pix",
		})
		require.NoError(t, err)

		assert.Equal(t, "parcial", resp.PaymentStatus)
		assert.True(t, resp.PaidAmount.Equal(decimal.NewFromInt(60)))
		assert.True(t, resp.Remaining.Equal(decimal.NewFromInt(40)))
		assert.Equal(t, orders.PaymentParcial, order.PaymentStatus)
		paymentRepo.AssertExpectations(t)
		entryRepo.AssertExpectations(t)
	})

	t.Run("second payment settles the order", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		entryRepo := new(MockEntryRepository)
		orderRepo := new(MockOrderRepository)
		order := newOrderWithPayable(t, tenantID, 100)
		order.ApplyPaymentSummary(decimal.NewFromInt(60))
		first := confirmedPayment(t, tenantID, order.ID, 60)

		orderRepo.On("FindByID", ctx, tenantID, order.ID).Return(order, nil)
		paymentRepo.On("FindByOrder", ctx, tenantID, order.ID).Return([]finance.Payment{first}, nil)
		paymentRepo.On("Save", ctx, mock.AnythingOfType("*finance.Payment")).Return(nil)
		entryRepo.On("Save", ctx, mock.AnythingOfType("*finance.FinancialEntry")).Return(nil)
		orderRepo.On("Save", ctx, order).Return(nil)

		svc := newService(paymentRepo, entryRepo, orderRepo)
		resp, err := svc.Record(ctx, tenantID, order.ID, RecordPaymentRequest{
			Amount: decimal.NewFromFloat(40),
			Method: "dinheiro",
		})
		require.NoError(t, err)

		assert.Equal(t, "pago", resp.PaymentStatus)
		assert.True(t, resp.Remaining.IsZero())
		assert.Equal(t, orders.PaymentPago, order.PaymentStatus)
	})

	t.Run("rejects a payment above the remaining balance", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		entryRepo := new(MockEntryRepository)
		orderRepo := new(MockOrderRepository)
		order := newOrderWithPayable(t, tenantID, 100)
		first := confirmedPayment(t, tenantID, order.ID, 60)

		orderRepo.On("FindByID", ctx, tenantID, order.ID).Return(order, nil)
		paymentRepo.On("FindByOrder", ctx, tenantID, order.ID).Return([]finance.Payment{first}, nil)

		svc := newService(paymentRepo, entryRepo, orderRepo)
		_, err := svc.Record(ctx, tenantID, order.ID, RecordPaymentRequest{
			Amount: decimal.NewFromFloat(40.01),
			Method: "pix",
		})
		require.ErrorIs(t, err, shared.ErrPaymentExceedsDue)
		paymentRepo.AssertNotCalled(t, "Save", ctx, mock.Anything)
	})

	t.Run("fully paid order rejects any further payment", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		entryRepo := new(MockEntryRepository)
		orderRepo := new(MockOrderRepository)
		order := newOrderWithPayable(t, tenantID, 100)
		first := confirmedPayment(t, tenantID, order.ID, 100)

		orderRepo.On("FindByID", ctx, tenantID, order.ID).Return(order, nil)
		paymentRepo.On("FindByOrder", ctx, tenantID, order.ID).Return([]finance.Payment{first}, nil)

		svc := newService(paymentRepo, entryRepo, orderRepo)
		_, err := svc.Record(ctx, tenantID, order.ID, RecordPaymentRequest{
			Amount: decimal.NewFromFloat(0.01),
			Method: "pix",
		})
		require.ErrorIs(t, err, shared.ErrOrderFullyPaid)
		assert.Equal(t, "Pedido já está quitado", shared.ErrOrderFullyPaid.Message)
	})

	t.Run("rejects payments on a cancelled order", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		entryRepo := new(MockEntryRepository)
		orderRepo := new(MockOrderRepository)
		order := newOrderWithPayable(t, tenantID, 100)
		require.NoError(t, order.ChangeStatus(orders.StatusCancelado, nil, ""))

		orderRepo.On("FindByID", ctx, tenantID, order.ID).Return(order, nil)

		svc := newService(paymentRepo, entryRepo, orderRepo)
		_, err := svc.Record(ctx, tenantID, order.ID, RecordPaymentRequest{
			Amount: decimal.NewFromFloat(10),
			Method: "pix",
		})
		require.Error(t, err)
		paymentRepo.AssertNotCalled(t, "FindByOrder", ctx, tenantID, order.ID)
	})
}

func TestPaymentServiceCancel(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("cancelling the only payment reverts the order to pendente", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		entryRepo := new(MockEntryRepository)
		orderRepo := new(MockOrderRepository)

		order := newOrderWithPayable(t, tenantID, 100)
		payment := confirmedPayment(t, tenantID, order.ID, 100)
		order.ApplyPaymentSummary(decimal.NewFromInt(100))

		entry, err := finance.NewFinancialEntry(tenantID, finance.EntryReceita, "vendas", "Pagamento",
			valueobject.NewMoneyBRLFromFloat(100), time.Now())
		require.NoError(t, err)
		entry.LinkPayment(order.ID, payment.ID)

		cancelled := payment
		require.NoError(t, cancelled.Cancel())

		paymentRepo.On("FindByID", ctx, tenantID, payment.ID).Return(&payment, nil)
		orderRepo.On("FindByID", ctx, tenantID, order.ID).Return(order, nil)
		paymentRepo.On("Save", ctx, mock.AnythingOfType("*finance.Payment")).Return(nil)
		entryRepo.On("FindByPayment", ctx, tenantID, payment.ID).Return(entry, nil)
		entryRepo.On("Delete", ctx, tenantID, entry.ID).Return(nil)
		paymentRepo.On("FindByOrder", ctx, tenantID, order.ID).Return([]finance.Payment{cancelled}, nil)
		orderRepo.On("Save", ctx, order).Return(nil)

		svc := NewPaymentService(paymentRepo, entryRepo, orderRepo, zap.NewNop())
		resp, err := svc.Cancel(ctx, tenantID, payment.ID)
		require.NoError(t, err)

		assert.Equal(t, "pendente", resp.PaymentStatus)
		assert.True(t, resp.PaidAmount.IsZero())
		assert.Equal(t, orders.PaymentPendente, order.PaymentStatus)
		entryRepo.AssertExpectations(t)
	})

	t.Run("a ledger lookup failure aborts the cancellation", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		entryRepo := new(MockEntryRepository)
		orderRepo := new(MockOrderRepository)

		order := newOrderWithPayable(t, tenantID, 100)
		payment := confirmedPayment(t, tenantID, order.ID, 100)

		paymentRepo.On("FindByID", ctx, tenantID, payment.ID).Return(&payment, nil)
		orderRepo.On("FindByID", ctx, tenantID, order.ID).Return(order, nil)
		paymentRepo.On("Save", ctx, mock.AnythingOfType("*finance.Payment")).Return(nil)
		entryRepo.On("FindByPayment", ctx, tenantID, payment.ID).
			Return(nil, errors.New("connection reset by peer"))

		svc := NewPaymentService(paymentRepo, entryRepo, orderRepo, zap.NewNop())
		_, err := svc.Cancel(ctx, tenantID, payment.ID)
		require.Error(t, err)

		entryRepo.AssertNotCalled(t, "Delete", ctx, tenantID, mock.Anything)
		orderRepo.AssertNotCalled(t, "Save", ctx, mock.Anything)
	})

	t.Run("a payment without a ledger entry still cancels cleanly", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepository)
		entryRepo := new(MockEntryRepository)
		orderRepo := new(MockOrderRepository)

		order := newOrderWithPayable(t, tenantID, 100)
		payment := confirmedPayment(t, tenantID, order.ID, 100)
		cancelled := payment
		require.NoError(t, cancelled.Cancel())

		paymentRepo.On("FindByID", ctx, tenantID, payment.ID).Return(&payment, nil)
		orderRepo.On("FindByID", ctx, tenantID, order.ID).Return(order, nil)
		paymentRepo.On("Save", ctx, mock.AnythingOfType("*finance.Payment")).Return(nil)
		entryRepo.On("FindByPayment", ctx, tenantID, payment.ID).Return(nil, shared.ErrNotFound)
		paymentRepo.On("FindByOrder", ctx, tenantID, order.ID).Return([]finance.Payment{cancelled}, nil)
		orderRepo.On("Save", ctx, order).Return(nil)

		svc := NewPaymentService(paymentRepo, entryRepo, orderRepo, zap.NewNop())
		resp, err := svc.Cancel(ctx, tenantID, payment.ID)
		require.NoError(t, err)

		assert.Equal(t, "pendente", resp.PaymentStatus)
		entryRepo.AssertNotCalled(t, "Delete", ctx, tenantID, mock.Anything)
	})
}
