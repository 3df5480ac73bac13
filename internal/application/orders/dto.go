package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/graficaerp/backend/internal/domain/orders"
)

// OrderItemRequest is one line item in a create/update request
type OrderItemRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateOrderRequest creates a new quote
type CreateOrderRequest struct {
	CustomerID   uuid.UUID          `json:"customer_id" binding:"required"`
	Items        []OrderItemRequest `json:"items"`
	DeliveryDate *time.Time         `json:"delivery_date"`
	Notes        string             `json:"notes" binding:"max=2000"`
	CreatedBy    *uuid.UUID         `json:"-"`
}

// AddItemRequest adds an item to an existing quote
type AddItemRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
}

// ApplyDiscountRequest applies an order-level discount
type ApplyDiscountRequest struct {
	Discount decimal.Decimal `json:"discount" binding:"required"`
}

// ChangeStatusRequest moves the order to a target status. An optional down
// payment (entrada) can be recorded atomically with the transition.
type ChangeStatusRequest struct {
	Status      string           `json:"status" binding:"required"`
	Note        string           `json:"note" binding:"max=500"`
	DownPayment *decimal.Decimal `json:"down_payment"`
	Method      string           `json:"payment_method"`
	ChangedBy   *uuid.UUID       `json:"-"`
}

// OrderItemResponse is one line item in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// StatusChangeResponse is one audit row in the status history
type StatusChangeResponse struct {
	FromStatus string     `json:"from_status"`
	ToStatus   string     `json:"to_status"`
	ChangedBy  *uuid.UUID `json:"changed_by"`
	Note       string     `json:"note"`
	CreatedAt  time.Time  `json:"created_at"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID             uuid.UUID              `json:"id"`
	Number         string                 `json:"number"`
	CustomerID     uuid.UUID              `json:"customer_id"`
	CustomerName   string                 `json:"customer_name"`
	Items          []OrderItemResponse    `json:"items"`
	TotalAmount    decimal.Decimal        `json:"total_amount"`
	DiscountAmount decimal.Decimal        `json:"discount_amount"`
	PayableAmount  decimal.Decimal        `json:"payable_amount"`
	PaidAmount     decimal.Decimal        `json:"paid_amount"`
	Remaining      decimal.Decimal        `json:"remaining_amount"`
	PaymentStatus  string                 `json:"payment_status"`
	Status         string                 `json:"status"`
	History        []StatusChangeResponse `json:"history,omitempty"`
	ArtworkKey     string                 `json:"artwork_key,omitempty"`
	DeliveryDate   *time.Time             `json:"delivery_date"`
	Notes          string                 `json:"notes"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// KanbanColumn is one column of the production board
type KanbanColumn struct {
	Status string          `json:"status"`
	Orders []OrderResponse `json:"orders"`
}

// PublicOrderResponse is the customer-facing view behind the public token
type PublicOrderResponse struct {
	Number        string              `json:"number"`
	CustomerName  string              `json:"customer_name"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	Items         []OrderItemResponse `json:"items"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	PayableAmount decimal.Decimal     `json:"payable_amount"`
	Remaining     decimal.Decimal     `json:"remaining_amount"`
	DeliveryDate  *time.Time          `json:"delivery_date"`
}

// PublicCheckoutItem is one cart line on the public storefront
type PublicCheckoutItem struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// PublicCheckoutRequest creates a quote from the public storefront
type PublicCheckoutRequest struct {
	CustomerName  string               `json:"customer_name" binding:"required,min=2,max=200"`
	CustomerEmail string               `json:"customer_email" binding:"required,email"`
	CustomerPhone string               `json:"customer_phone" binding:"max=30"`
	Items         []PublicCheckoutItem `json:"items" binding:"required,min=1"`
	Notes         string               `json:"notes" binding:"max=2000"`
}

// PublicCheckoutResponse returns the tracking token for the new quote
type PublicCheckoutResponse struct {
	Number      string `json:"number"`
	PublicToken string `json:"public_token"`
}

// PublicPaymentRequest records a payment from the tracking page
type PublicPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method" binding:"required,oneof=dinheiro pix cartao boleto"`
}

// ToOrderItemResponse converts a domain OrderItem
func ToOrderItemResponse(i *orders.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:          i.ID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		Description: i.Description,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		Amount:      i.Amount,
	}
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *orders.Order, includeHistory bool) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = ToOrderItemResponse(&o.Items[i])
	}

	resp := OrderResponse{
		ID:             o.ID,
		Number:         o.Number,
		CustomerID:     o.CustomerID,
		CustomerName:   o.CustomerName,
		Items:          items,
		TotalAmount:    o.TotalAmount,
		DiscountAmount: o.DiscountAmount,
		PayableAmount:  o.PayableAmount,
		PaidAmount:     o.PaidAmount,
		Remaining:      o.RemainingAmount(),
		PaymentStatus:  string(o.PaymentStatus),
		Status:         string(o.Status),
		ArtworkKey:     o.ArtworkKey,
		DeliveryDate:   o.DeliveryDate,
		Notes:          o.Notes,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}

	if includeHistory {
		history := make([]StatusChangeResponse, len(o.History))
		for i, h := range o.History {
			history[i] = StatusChangeResponse{
				FromStatus: string(h.FromStatus),
				ToStatus:   string(h.ToStatus),
				ChangedBy:  h.ChangedBy,
				Note:       h.Note,
				CreatedAt:  h.CreatedAt,
			}
		}
		resp.History = history
	}

	return resp
}

// ToPublicOrderResponse converts a domain Order to its customer-facing view
func ToPublicOrderResponse(o *orders.Order) PublicOrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = ToOrderItemResponse(&o.Items[i])
	}

	return PublicOrderResponse{
		Number:        o.Number,
		CustomerName:  o.CustomerName,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		Items:         items,
		TotalAmount:   o.TotalAmount,
		PayableAmount: o.PayableAmount,
		Remaining:     o.RemainingAmount(),
		DeliveryDate:  o.DeliveryDate,
	}
}
