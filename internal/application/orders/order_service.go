package orders

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/domain/catalog"
	"github.com/graficaerp/backend/internal/domain/orders"
	"github.com/graficaerp/backend/internal/domain/partner"
	"github.com/graficaerp/backend/internal/domain/shared"
	"github.com/graficaerp/backend/internal/domain/shared/valueobject"
)

// PaymentRecorder records a confirmed payment against an order. Implemented
// by the finance payment service; decouples the two application packages.
type PaymentRecorder interface {
	RecordConfirmed(ctx context.Context, tenantID, orderID uuid.UUID, amount decimal.Decimal, method string, recordedBy *uuid.UUID, note string) error
}

// ArtworkStorage stores customer artwork files. Implemented by the S3 client.
type ArtworkStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	PresignDownload(ctx context.Context, key string) (string, error)
}

// OrderService handles the order lifecycle: quotes, items, the kanban board
// and status transitions.
type OrderService struct {
	orderRepo    orders.Repository
	customerRepo partner.CustomerRepository
	productRepo  catalog.ProductRepository
	payments     PaymentRecorder
	artwork      ArtworkStorage
	logger       *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo orders.Repository,
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
	payments PaymentRecorder,
	artwork ArtworkStorage,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		payments:     payments,
		artwork:      artwork,
		logger:       logger,
	}
}

// Create opens a new quote for a customer
func (s *OrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, tenantID, req.CustomerID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer not found")
	}

	number, err := s.orderRepo.NextNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	order, err := orders.NewOrder(tenantID, number, customer.ID, customer.Name)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		order.SetCreatedBy(*req.CreatedBy)
	}
	if req.DeliveryDate != nil {
		order.SetDeliveryDate(*req.DeliveryDate)
	}
	if req.Notes != "" {
		order.SetNotes(req.Notes)
	}

	for _, item := range req.Items {
		if err := s.addProductItem(ctx, tenantID, order, item.ProductID, item.Description, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("number", order.Number))

	resp := ToOrderResponse(order, false)
	return &resp, nil
}

// GetByID retrieves an order with its status history
func (s *OrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order, true)
	return &resp, nil
}

// List retrieves orders with pagination
func (s *OrderService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]OrderResponse, int64, error) {
	found, total, err := s.orderRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]OrderResponse, len(found))
	for i := range found {
		out[i] = ToOrderResponse(&found[i], false)
	}
	return out, total, nil
}

// Kanban returns the open orders grouped by status in board order
func (s *OrderService) Kanban(ctx context.Context, tenantID uuid.UUID) ([]KanbanColumn, error) {
	open, err := s.orderRepo.FindOpen(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[orders.OrderStatus][]OrderResponse)
	for i := range open {
		status := open[i].Status
		byStatus[status] = append(byStatus[status], ToOrderResponse(&open[i], false))
	}

	columns := make([]KanbanColumn, 0)
	for _, status := range orders.AllStatuses() {
		if status.IsTerminal() {
			continue
		}
		col := KanbanColumn{Status: string(status), Orders: byStatus[status]}
		if col.Orders == nil {
			col.Orders = []OrderResponse{}
		}
		columns = append(columns, col)
	}
	return columns, nil
}

// AddItem adds a product line to a quote
func (s *OrderService) AddItem(ctx context.Context, tenantID, orderID uuid.UUID, req AddItemRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.addProductItem(ctx, tenantID, order, req.ProductID, req.Description, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(order, false)
	return &resp, nil
}

// UpdateItemQuantity updates the quantity of an item in a quote
func (s *OrderService) UpdateItemQuantity(ctx context.Context, tenantID, orderID, itemID uuid.UUID, quantity decimal.Decimal) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.UpdateItemQuantity(itemID, quantity); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(order, false)
	return &resp, nil
}

// RemoveItem removes an item from a quote
func (s *OrderService) RemoveItem(ctx context.Context, tenantID, orderID, itemID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(order, false)
	return &resp, nil
}

// ApplyDiscount applies an order-level discount to a quote
func (s *OrderService) ApplyDiscount(ctx context.Context, tenantID, orderID uuid.UUID, req ApplyDiscountRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.ApplyDiscount(valueobject.NewMoneyBRL(req.Discount)); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(order, false)
	return &resp, nil
}

// ChangeStatus moves the order on the kanban board. When the request carries
// a down payment it is recorded right after the transition succeeds, so an
// approval with entrada stays a single call for the front desk.
func (s *OrderService) ChangeStatus(ctx context.Context, tenantID, orderID uuid.UUID, req ChangeStatusRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	target := orders.OrderStatus(req.Status)
	if err := order.ChangeStatus(target, req.ChangedBy, req.Note); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	if req.DownPayment != nil && req.DownPayment.IsPositive() {
		if s.payments == nil {
			return nil, shared.NewDomainError("INVALID_STATE", "Payments are not configured")
		}
		note := fmt.Sprintf("Entrada no pedido %s", order.Number)
		if err := s.payments.RecordConfirmed(ctx, tenantID, order.ID, *req.DownPayment, req.Method, req.ChangedBy, note); err != nil {
			return nil, err
		}
		// reload to pick up the recalculated payment summary
		order, err = s.orderRepo.FindByID(ctx, tenantID, orderID)
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info("Order status changed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("number", order.Number),
		zap.String("status", string(order.Status)))

	resp := ToOrderResponse(order, true)
	return &resp, nil
}

// AttachArtwork uploads the customer artwork file and links it to the order
func (s *OrderService) AttachArtwork(ctx context.Context, tenantID, orderID uuid.UUID, filename, contentType string, body io.Reader, size int64) (*OrderResponse, error) {
	if s.artwork == nil {
		return nil, shared.NewDomainError("STORAGE_DISABLED", "Artwork storage is not enabled")
	}

	order, err := s.orderRepo.FindByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tenants/%s/orders/%s/%s", tenantID, order.Number, filename)
	if err := s.artwork.Upload(ctx, key, contentType, body, size); err != nil {
		s.logger.Error("Artwork upload failed",
			zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, shared.NewDomainError("UPLOAD_FAILED", "Failed to store the artwork file")
	}

	if err := order.AttachArtwork(key); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(order, false)
	return &resp, nil
}

// ArtworkURL returns a presigned download URL for the order's artwork
func (s *OrderService) ArtworkURL(ctx context.Context, tenantID, orderID uuid.UUID) (string, error) {
	if s.artwork == nil {
		return "", shared.NewDomainError("STORAGE_DISABLED", "Artwork storage is not enabled")
	}

	order, err := s.orderRepo.FindByID(ctx, tenantID, orderID)
	if err != nil {
		return "", err
	}
	if order.ArtworkKey == "" {
		return "", shared.ErrNotFound
	}

	return s.artwork.PresignDownload(ctx, order.ArtworkKey)
}

// Delete removes a quote. Only orcamento orders can be deleted.
func (s *OrderService) Delete(ctx context.Context, tenantID, orderID uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, tenantID, orderID)
	if err != nil {
		return err
	}
	if !order.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "Only quotes can be deleted; cancel the order instead")
	}
	return s.orderRepo.Delete(ctx, tenantID, orderID)
}

func (s *OrderService) addProductItem(ctx context.Context, tenantID uuid.UUID, order *orders.Order, productID uuid.UUID, description string, quantity decimal.Decimal) error {
	product, err := s.productRepo.FindByID(ctx, tenantID, productID)
	if err != nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product not found")
	}
	if !product.Active {
		return shared.NewDomainError("PRODUCT_INACTIVE", "Product is not available for sale")
	}

	_, err = order.AddItem(product.ID, product.Name, description, quantity, valueobject.NewMoneyBRL(product.UnitPrice))
	return err
}
