package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/graficaerp/backend/internal/domain/inventory"
)

// StockMovementModel is the persistence model for stock movements
type StockMovementModel struct {
	TenantAggregateModel
	ProductID uuid.UUID              `gorm:"type:uuid;not null;index"`
	Type      inventory.MovementType `gorm:"type:varchar(20);not null"`
	Quantity  decimal.Decimal        `gorm:"type:decimal(12,3);not null"`
	Reason    string                 `gorm:"type:varchar(500)"`
	OrderID   *uuid.UUID             `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (StockMovementModel) TableName() string {
	return "stock_movements"
}

// ToDomain converts the persistence model to a domain StockMovement
func (m *StockMovementModel) ToDomain() *inventory.StockMovement {
	movement := &inventory.StockMovement{
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		OrderID:   m.OrderID,
	}
	m.PopulateTenantAggregateRoot(&movement.TenantAggregateRoot)
	return movement
}

// FromDomain populates the persistence model from a domain StockMovement
func (m *StockMovementModel) FromDomain(s *inventory.StockMovement) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.ProductID = s.ProductID
	m.Type = s.Type
	m.Quantity = s.Quantity
	m.Reason = s.Reason
	m.OrderID = s.OrderID
}

// StockMovementModelFromDomain creates a persistence model from a domain StockMovement
func StockMovementModelFromDomain(s *inventory.StockMovement) *StockMovementModel {
	m := &StockMovementModel{}
	m.FromDomain(s)
	return m
}
