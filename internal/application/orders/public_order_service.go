package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/domain/catalog"
	"github.com/graficaerp/backend/internal/domain/orders"
	"github.com/graficaerp/backend/internal/domain/partner"
	"github.com/graficaerp/backend/internal/domain/shared"
	"github.com/graficaerp/backend/internal/domain/shared/valueobject"
)

// PublicOrderService serves the unauthenticated storefront endpoints: order
// tracking, quote approval and payment by public token, and the checkout
// that opens a quote for a walk-in web customer.
type PublicOrderService struct {
	orderRepo    orders.Repository
	customerRepo partner.CustomerRepository
	productRepo  catalog.ProductRepository
	payments     PaymentRecorder
	logger       *zap.Logger
}

// NewPublicOrderService creates a new PublicOrderService
func NewPublicOrderService(
	orderRepo orders.Repository,
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
	payments PaymentRecorder,
	logger *zap.Logger,
) *PublicOrderService {
	return &PublicOrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		payments:     payments,
		logger:       logger,
	}
}

// LookupByToken returns the customer-facing view of an order. The token is
// an opaque random value; a miss is always a plain not-found.
func (s *PublicOrderService) LookupByToken(ctx context.Context, token string) (*PublicOrderResponse, error) {
	if token == "" {
		return nil, shared.ErrNotFound
	}
	order, err := s.orderRepo.FindByPublicToken(ctx, token)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	resp := ToPublicOrderResponse(order)
	return &resp, nil
}

// ApproveByToken lets the customer approve their own quote from the tracking
// page without an account.
func (s *PublicOrderService) ApproveByToken(ctx context.Context, token, note string) (*PublicOrderResponse, error) {
	if token == "" {
		return nil, shared.ErrNotFound
	}
	order, err := s.orderRepo.FindByPublicToken(ctx, token)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := order.Approve(note); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Quote approved via public token",
		zap.String("tenant_id", order.TenantID.String()),
		zap.String("number", order.Number))

	resp := ToPublicOrderResponse(order)
	return &resp, nil
}

// PayByToken records a confirmed payment from the tracking page. The same
// balance rules apply as for payments recorded by staff.
func (s *PublicOrderService) PayByToken(ctx context.Context, token string, req PublicPaymentRequest) (*PublicOrderResponse, error) {
	if token == "" {
		return nil, shared.ErrNotFound
	}
	order, err := s.orderRepo.FindByPublicToken(ctx, token)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if s.payments == nil {
		return nil, shared.NewDomainError("INVALID_STATE", "Payments are not configured")
	}

	note := fmt.Sprintf("Pagamento online do pedido %s", order.Number)
	if err := s.payments.RecordConfirmed(ctx, order.TenantID, order.ID, req.Amount, req.Method, nil, note); err != nil {
		return nil, err
	}

	// reload to pick up the recalculated payment summary
	order, err = s.orderRepo.FindByPublicToken(ctx, token)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	s.logger.Info("Payment recorded via public token",
		zap.String("tenant_id", order.TenantID.String()),
		zap.String("number", order.Number))

	resp := ToPublicOrderResponse(order)
	return &resp, nil
}

// Checkout creates a quote from the public storefront. The customer record
// is matched by email within the tenant so repeat buyers do not pile up
// duplicates.
func (s *PublicOrderService) Checkout(ctx context.Context, tenantID uuid.UUID, req PublicCheckoutRequest) (*PublicCheckoutResponse, error) {
	customer, err := s.findOrCreateCustomer(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	number, err := s.orderRepo.NextNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	order, err := orders.NewOrder(tenantID, number, customer.ID, customer.Name)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		order.SetNotes(req.Notes)
	}

	for _, line := range req.Items {
		product, err := s.productRepo.FindByID(ctx, tenantID, line.ProductID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found")
		}
		if !product.Active || !product.PublicVisible {
			return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is not available in the public catalog")
		}
		if _, err := order.AddItem(product.ID, product.Name, "", line.Quantity, valueobject.NewMoneyBRL(product.UnitPrice)); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Public checkout created quote",
		zap.String("tenant_id", tenantID.String()),
		zap.String("number", order.Number))

	return &PublicCheckoutResponse{Number: order.Number, PublicToken: order.PublicToken}, nil
}

func (s *PublicOrderService) findOrCreateCustomer(ctx context.Context, tenantID uuid.UUID, req PublicCheckoutRequest) (*partner.Customer, error) {
	existing, err := s.customerRepo.FindByEmail(ctx, tenantID, req.CustomerEmail)
	if err == nil {
		if req.CustomerPhone != "" {
			existing.UpdateContact(existing.Email, req.CustomerPhone)
			if err := s.customerRepo.Save(ctx, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	customer, err := partner.NewCustomer(tenantID, req.CustomerName)
	if err != nil {
		return nil, err
	}
	customer.UpdateContact(req.CustomerEmail, req.CustomerPhone)
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}
