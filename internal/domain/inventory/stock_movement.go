package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/graficaerp/backend/internal/domain/catalog"
	"github.com/graficaerp/backend/internal/domain/shared"
)

// MovementType classifies a stock movement
type MovementType string

const (
	MovementEntrada MovementType = "entrada"
	MovementSaida   MovementType = "saida"
	MovementAjuste  MovementType = "ajuste"
)

// IsValid checks if the type is a known MovementType
func (t MovementType) IsValid() bool {
	switch t {
	case MovementEntrada, MovementSaida, MovementAjuste:
		return true
	}
	return false
}

// StockMovement is one audited stock change for a product. The product's
// quantity is adjusted in the same transaction that stores the movement.
type StockMovement struct {
	shared.TenantAggregateRoot
	ProductID uuid.UUID
	Type      MovementType
	Quantity  decimal.Decimal
	Reason    string
	OrderID   *uuid.UUID
}

// NewStockMovement creates a stock movement
func NewStockMovement(tenantID, productID uuid.UUID, movementType MovementType, quantity decimal.Decimal, reason string) (*StockMovement, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT", "Unknown movement type")
	}
	if movementType == MovementAjuste {
		if quantity.IsZero() {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Adjustment quantity cannot be zero")
		}
	} else if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	return &StockMovement{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		Type:                movementType,
		Quantity:            quantity,
		Reason:              reason,
	}, nil
}

// LinkOrder ties the movement to the order that consumed the stock
func (m *StockMovement) LinkOrder(orderID uuid.UUID) {
	m.OrderID = &orderID
	m.Touch()
}

// Delta returns the signed effect on the product stock
func (m *StockMovement) Delta() decimal.Decimal {
	if m.Type == MovementSaida {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// Repository is the persistence port for stock movements. Save stores the
// movement together with the adjusted product in one transaction, so the
// log and the stock quantity can never diverge.
type Repository interface {
	FindByProduct(ctx context.Context, tenantID, productID uuid.UUID, filter shared.Filter) ([]StockMovement, int64, error)
	Save(ctx context.Context, movement *StockMovement, product *catalog.Product) error
}
