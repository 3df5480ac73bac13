package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/graficaerp/backend/internal/domain/orders"
)

// OrderModel is the persistence model for the Order aggregate. Items and
// status history are loaded eagerly; the aggregate is always saved whole.
type OrderModel struct {
	TenantAggregateModel
	Number         string               `gorm:"type:varchar(50);not null;index:idx_orders_tenant_number,unique,composite:tenant_id"`
	CustomerID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	CustomerName   string               `gorm:"type:varchar(200);not null"`
	Items          []OrderItemModel     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History        []StatusChangeModel  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount    decimal.Decimal      `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountAmount decimal.Decimal      `gorm:"type:decimal(12,2);not null;default:0"`
	PayableAmount  decimal.Decimal      `gorm:"type:decimal(12,2);not null;default:0"`
	PaidAmount     decimal.Decimal      `gorm:"type:decimal(12,2);not null;default:0"`
	PaymentStatus  orders.PaymentStatus `gorm:"type:varchar(20);not null;default:'pendente'"`
	Status         orders.OrderStatus   `gorm:"type:varchar(20);not null;default:'orcamento';index"`
	PublicToken    string               `gorm:"type:varchar(64);not null;uniqueIndex"`
	ArtworkKey     string               `gorm:"type:varchar(500)"`
	DeliveryDate   *time.Time
	Notes          string `gorm:"type:text"`
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the persistence model for one order line
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:varchar(500)"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// StatusChangeModel is the persistence model for one status history row
type StatusChangeModel struct {
	ID         uuid.UUID          `gorm:"type:uuid;primary_key"`
	OrderID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	FromStatus orders.OrderStatus `gorm:"type:varchar(20);not null"`
	ToStatus   orders.OrderStatus `gorm:"type:varchar(20);not null"`
	ChangedBy  *uuid.UUID         `gorm:"type:uuid"`
	Note       string             `gorm:"type:varchar(500)"`
	CreatedAt  time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StatusChangeModel) TableName() string {
	return "order_status_changes"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *orders.Order {
	order := &orders.Order{
		Number:         m.Number,
		CustomerID:     m.CustomerID,
		CustomerName:   m.CustomerName,
		TotalAmount:    m.TotalAmount,
		DiscountAmount: m.DiscountAmount,
		PayableAmount:  m.PayableAmount,
		PaidAmount:     m.PaidAmount,
		PaymentStatus:  m.PaymentStatus,
		Status:         m.Status,
		PublicToken:    m.PublicToken,
		ArtworkKey:     m.ArtworkKey,
		DeliveryDate:   m.DeliveryDate,
		Notes:          m.Notes,
		CreatedBy:      m.CreatedBy,
		DeliveredAt:    m.DeliveredAt,
		CancelledAt:    m.CancelledAt,
	}
	m.PopulateTenantAggregateRoot(&order.TenantAggregateRoot)

	order.Items = make([]orders.OrderItem, len(m.Items))
	for i, item := range m.Items {
		order.Items[i] = orders.OrderItem{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
			CreatedAt:   item.CreatedAt,
			UpdatedAt:   item.UpdatedAt,
		}
	}

	order.History = make([]orders.StatusChange, len(m.History))
	for i, change := range m.History {
		order.History[i] = orders.StatusChange{
			ID:         change.ID,
			OrderID:    change.OrderID,
			FromStatus: change.FromStatus,
			ToStatus:   change.ToStatus,
			ChangedBy:  change.ChangedBy,
			Note:       change.Note,
			CreatedAt:  change.CreatedAt,
		}
	}

	return order
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *orders.Order) {
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	m.Number = o.Number
	m.CustomerID = o.CustomerID
	m.CustomerName = o.CustomerName
	m.TotalAmount = o.TotalAmount
	m.DiscountAmount = o.DiscountAmount
	m.PayableAmount = o.PayableAmount
	m.PaidAmount = o.PaidAmount
	m.PaymentStatus = o.PaymentStatus
	m.Status = o.Status
	m.PublicToken = o.PublicToken
	m.ArtworkKey = o.ArtworkKey
	m.DeliveryDate = o.DeliveryDate
	m.Notes = o.Notes
	m.CreatedBy = o.CreatedBy
	m.DeliveredAt = o.DeliveredAt
	m.CancelledAt = o.CancelledAt

	m.Items = make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = OrderItemModel{
			ID:          item.ID,
			OrderID:     o.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
			CreatedAt:   item.CreatedAt,
			UpdatedAt:   item.UpdatedAt,
		}
	}

	m.History = make([]StatusChangeModel, len(o.History))
	for i, change := range o.History {
		m.History[i] = StatusChangeModel{
			ID:         change.ID,
			OrderID:    o.ID,
			FromStatus: change.FromStatus,
			ToStatus:   change.ToStatus,
			ChangedBy:  change.ChangedBy,
			Note:       change.Note,
			CreatedAt:  change.CreatedAt,
		}
	}
}

// OrderModelFromDomain creates a persistence model from a domain Order
func OrderModelFromDomain(o *orders.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}
