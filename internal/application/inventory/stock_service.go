package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/domain/catalog"
	"github.com/graficaerp/backend/internal/domain/inventory"
	"github.com/graficaerp/backend/internal/domain/shared"
)

// RecordMovementRequest records a stock movement for a product
type RecordMovementRequest struct {
	Type     string          `json:"type" binding:"required,oneof=entrada saida ajuste"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Reason   string          `json:"reason" binding:"max=500"`
	OrderID  *uuid.UUID      `json:"order_id"`
}

// MovementResponse represents a stock movement in API responses
type MovementResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason"`
	OrderID   *uuid.UUID      `json:"order_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// StockResponse pairs a movement with the resulting product quantity
type StockResponse struct {
	Movement      MovementResponse `json:"movement"`
	StockQuantity decimal.Decimal  `json:"stock_quantity"`
	BelowMinimum  bool             `json:"below_minimum"`
}

// ToMovementResponse converts a domain StockMovement
func ToMovementResponse(m *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      string(m.Type),
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		OrderID:   m.OrderID,
		CreatedAt: m.CreatedAt,
	}
}

// StockService records stock movements and keeps the product quantity in
// step with the movement log.
type StockService struct {
	movementRepo inventory.Repository
	productRepo  catalog.ProductRepository
	logger       *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(movementRepo inventory.Repository, productRepo catalog.ProductRepository, logger *zap.Logger) *StockService {
	return &StockService{
		movementRepo: movementRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// Record registers a movement and applies its delta to the product stock.
// A movement that would drive the stock negative is rejected before
// anything is written.
func (s *StockService) Record(ctx context.Context, tenantID, productID uuid.UUID, req RecordMovementRequest) (*StockResponse, error) {
	product, err := s.productRepo.FindByID(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	movement, err := inventory.NewStockMovement(tenantID, productID, inventory.MovementType(req.Type), req.Quantity, req.Reason)
	if err != nil {
		return nil, err
	}
	if req.OrderID != nil {
		movement.LinkOrder(*req.OrderID)
	}

	if err := product.AdjustStock(movement.Delta()); err != nil {
		return nil, err
	}

	if err := s.movementRepo.Save(ctx, movement, product); err != nil {
		return nil, err
	}

	if product.BelowMinimum() {
		s.logger.Warn("Product stock below minimum",
			zap.String("tenant_id", tenantID.String()),
			zap.String("product_code", product.Code),
			zap.String("quantity", product.StockQuantity.String()))
	}

	return &StockResponse{
		Movement:      ToMovementResponse(movement),
		StockQuantity: product.StockQuantity,
		BelowMinimum:  product.BelowMinimum(),
	}, nil
}

// History returns the movement log for a product
func (s *StockService) History(ctx context.Context, tenantID, productID uuid.UUID, filter shared.Filter) ([]MovementResponse, int64, error) {
	movements, total, err := s.movementRepo.FindByProduct(ctx, tenantID, productID, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]MovementResponse, len(movements))
	for i := range movements {
		out[i] = ToMovementResponse(&movements[i])
	}
	return out, total, nil
}
