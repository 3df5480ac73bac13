package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/domain/orders"
	"github.com/graficaerp/backend/internal/domain/partner"
	"github.com/graficaerp/backend/internal/domain/shared"
)

func newPublicOrderService() (*PublicOrderService, orderServiceMocks) {
	m := orderServiceMocks{
		orderRepo:    new(MockOrderRepository),
		customerRepo: new(MockCustomerRepository),
		productRepo:  new(MockProductRepository),
		payments:     new(MockPaymentRecorder),
	}
	svc := NewPublicOrderService(m.orderRepo, m.customerRepo, m.productRepo, m.payments, zap.NewNop())
	return svc, m
}

func TestPublicOrderServiceLookup(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("returns the customer-facing view", func(t *testing.T) {
		svc, m := newPublicOrderService()
		order := quoteWithItem(t, tenantID, 100)

		m.orderRepo.On("FindByPublicToken", ctx, order.PublicToken).Return(order, nil)

		resp, err := svc.LookupByToken(ctx, order.PublicToken)
		require.NoError(t, err)

		assert.Equal(t, "PED-0001", resp.Number)
		assert.Equal(t, "orcamento", resp.Status)
		assert.Equal(t, "pendente", resp.PaymentStatus)
		assert.True(t, resp.Remaining.Equal(decimal.NewFromInt(100)))
	})

	t.Run("unknown token is a plain not-found", func(t *testing.T) {
		svc, m := newPublicOrderService()
		m.orderRepo.On("FindByPublicToken", ctx, "no-such-token").Return(nil, shared.ErrNotFound)

		_, err := svc.LookupByToken(ctx, "no-such-token")
		require.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("empty token never hits the repository", func(t *testing.T) {
		svc, m := newPublicOrderService()

		_, err := svc.LookupByToken(ctx, "")
		require.ErrorIs(t, err, shared.ErrNotFound)
		m.orderRepo.AssertNotCalled(t, "FindByPublicToken", ctx, mock.Anything)
	})
}

func TestPublicOrderServiceApprove(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("customer approves their own quote", func(t *testing.T) {
		svc, m := newPublicOrderService()
		order := quoteWithItem(t, tenantID, 100)

		m.orderRepo.On("FindByPublicToken", ctx, order.PublicToken).Return(order, nil)
		m.orderRepo.On("Save", ctx, order).Return(nil)

		resp, err := svc.ApproveByToken(ctx, order.PublicToken, "pode produzir")
		require.NoError(t, err)

		assert.Equal(t, "aprovado", resp.Status)
		assert.Equal(t, orders.StatusAprovado, order.Status)
		require.Len(t, order.History, 1)
		assert.Equal(t, "pode produzir", order.History[0].Note)
	})

	t.Run("only quotes can be approved", func(t *testing.T) {
		svc, m := newPublicOrderService()
		order := quoteWithItem(t, tenantID, 100)
		require.NoError(t, order.ChangeStatus(orders.StatusAprovado, nil, ""))

		m.orderRepo.On("FindByPublicToken", ctx, order.PublicToken).Return(order, nil)

		_, err := svc.ApproveByToken(ctx, order.PublicToken, "")
		requireDomainCode(t, err, "INVALID_TRANSITION")
		m.orderRepo.AssertNotCalled(t, "Save", ctx, mock.Anything)
	})
}

func TestPublicOrderServicePay(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("records a confirmed payment through the token", func(t *testing.T) {
		svc, m := newPublicOrderService()
		order := quoteWithItem(t, tenantID, 100)
		amount := decimal.NewFromInt(40)

		m.orderRepo.On("FindByPublicToken", ctx, order.PublicToken).Return(order, nil)
		m.payments.On("RecordConfirmed", ctx, tenantID, order.ID, amount, "pix",
			(*uuid.UUID)(nil), "Pagamento online do pedido PED-0001").Return(nil)

		_, err := svc.PayByToken(ctx, order.PublicToken, PublicPaymentRequest{
			Amount: amount,
			Method: "pix",
		})
		require.NoError(t, err)
		m.payments.AssertExpectations(t)
	})

	t.Run("balance rules apply to token payments too", func(t *testing.T) {
		svc, m := newPublicOrderService()
		order := quoteWithItem(t, tenantID, 100)
		amount := decimal.NewFromInt(150)

		m.orderRepo.On("FindByPublicToken", ctx, order.PublicToken).Return(order, nil)
		m.payments.On("RecordConfirmed", ctx, tenantID, order.ID, amount, "pix",
			(*uuid.UUID)(nil), "Pagamento online do pedido PED-0001").Return(shared.ErrPaymentExceedsDue)

		_, err := svc.PayByToken(ctx, order.PublicToken, PublicPaymentRequest{
			Amount: amount,
			Method: "pix",
		})
		require.ErrorIs(t, err, shared.ErrPaymentExceedsDue)
	})
}

func TestPublicOrderServiceCheckout(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates a quote for a new web customer", func(t *testing.T) {
		svc, m := newPublicOrderService()
		product := activeProduct(t, tenantID, "Flyer A5", 10)
		product.SetPublicVisible(true)

		m.customerRepo.On("FindByEmail", ctx, tenantID, "maria@example.com").Return(nil, shared.ErrNotFound)
		m.customerRepo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)
		m.orderRepo.On("NextNumber", ctx, tenantID).Return("PED-0100", nil)
		m.productRepo.On("FindByID", ctx, tenantID, product.ID).Return(product, nil)
		m.orderRepo.On("Save", ctx, mock.AnythingOfType("*orders.Order")).Return(nil)

		resp, err := svc.Checkout(ctx, tenantID, PublicCheckoutRequest{
			CustomerName:  "Maria Souza",
			CustomerEmail: "maria@example.com",
			Items: []PublicCheckoutItem{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(100)},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "PED-0100", resp.Number)
		assert.NotEmpty(t, resp.PublicToken)
		m.customerRepo.AssertExpectations(t)
	})

	t.Run("reuses the customer matched by email", func(t *testing.T) {
		svc, m := newPublicOrderService()
		existing, err := partner.NewCustomer(tenantID, "Maria Souza")
		require.NoError(t, err)
		existing.UpdateContact("maria@example.com", "")
		product := activeProduct(t, tenantID, "Flyer A5", 10)
		product.SetPublicVisible(true)

		m.customerRepo.On("FindByEmail", ctx, tenantID, "maria@example.com").Return(existing, nil)
		m.orderRepo.On("NextNumber", ctx, tenantID).Return("PED-0101", nil)
		m.productRepo.On("FindByID", ctx, tenantID, product.ID).Return(product, nil)
		m.orderRepo.On("Save", ctx, mock.AnythingOfType("*orders.Order")).Return(nil)

		_, err = svc.Checkout(ctx, tenantID, PublicCheckoutRequest{
			CustomerName:  "Maria Souza",
			CustomerEmail: "maria@example.com",
			Items: []PublicCheckoutItem{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(50)},
			},
		})
		require.NoError(t, err)
		m.customerRepo.AssertNotCalled(t, "Save", ctx, mock.Anything)
	})

	t.Run("rejects products hidden from the public catalog", func(t *testing.T) {
		svc, m := newPublicOrderService()
		existing, err := partner.NewCustomer(tenantID, "Maria Souza")
		require.NoError(t, err)
		product := activeProduct(t, tenantID, "Serviço interno", 10)

		m.customerRepo.On("FindByEmail", ctx, tenantID, "maria@example.com").Return(existing, nil)
		m.orderRepo.On("NextNumber", ctx, tenantID).Return("PED-0102", nil)
		m.productRepo.On("FindByID", ctx, tenantID, product.ID).Return(product, nil)

		_, err = svc.Checkout(ctx, tenantID, PublicCheckoutRequest{
			CustomerName:  "Maria Souza",
			CustomerEmail: "maria@example.com",
			Items: []PublicCheckoutItem{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(1)},
			},
		})
		requireDomainCode(t, err, "PRODUCT_UNAVAILABLE")
		m.orderRepo.AssertNotCalled(t, "Save", ctx, mock.Anything)
	})
}
