package orders

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/graficaerp/backend/internal/domain/shared"
	"github.com/graficaerp/backend/internal/domain/shared/valueobject"
)

// PaymentStatus is the tri-state payment situation derived from the
// order's confirmed payments.
type PaymentStatus string

const (
	PaymentPendente PaymentStatus = "pendente"
	PaymentParcial  PaymentStatus = "parcial"
	PaymentPago     PaymentStatus = "pago"
)

// OrderItem represents a line item in an order
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOrderItem creates a new order item
func NewOrderItem(orderID, productID uuid.UUID, productName, description string, quantity decimal.Decimal, unitPrice valueobject.Money) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		Amount:      quantity.Mul(unitPrice.Amount()),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateQuantity updates the item quantity and recalculates the amount
func (i *OrderItem) UpdateQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	i.Quantity = quantity
	i.Amount = quantity.Mul(i.UnitPrice)
	i.UpdatedAt = time.Now()
	return nil
}

// StatusChange is one audit row in the order's status history
type StatusChange struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	FromStatus OrderStatus
	ToStatus   OrderStatus
	ChangedBy  *uuid.UUID
	Note       string
	CreatedAt  time.Time
}

// Order is the aggregate root for a print-shop order. It carries the kanban
// status, the derived payment summary, and a public token used by the
// customer-facing lookup/approval endpoints.
type Order struct {
	shared.TenantAggregateRoot
	Number         string
	CustomerID     uuid.UUID
	CustomerName   string
	Items          []OrderItem
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	PayableAmount  decimal.Decimal
	PaidAmount     decimal.Decimal
	PaymentStatus  PaymentStatus
	Status         OrderStatus
	History        []StatusChange
	PublicToken    string
	ArtworkKey     string
	DeliveryDate   *time.Time
	Notes          string
	CreatedBy      *uuid.UUID
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
}

// NewOrder creates a new order in the orcamento status
func NewOrder(tenantID uuid.UUID, number string, customerID uuid.UUID, customerName string) (*Order, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(number) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	return &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		CustomerID:          customerID,
		CustomerName:        customerName,
		Items:               make([]OrderItem, 0),
		TotalAmount:         decimal.Zero,
		DiscountAmount:      decimal.Zero,
		PayableAmount:       decimal.Zero,
		PaidAmount:          decimal.Zero,
		PaymentStatus:       PaymentPendente,
		Status:              StatusOrcamento,
		PublicToken:         uuid.New().String(),
	}, nil
}

// AddItem adds a new item to the order. Only allowed while the order is an
// orcamento (the quote has not been approved by the customer yet).
func (o *Order) AddItem(productID uuid.UUID, productName, description string, quantity decimal.Decimal, unitPrice valueobject.Money) (*OrderItem, error) {
	if !o.CanModify() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items after the quote is approved")
	}

	item, err := NewOrderItem(o.ID, productID, productName, description, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.Touch()
	return item, nil
}

// UpdateItemQuantity updates the quantity of an existing item
func (o *Order) UpdateItemQuantity(itemID uuid.UUID, quantity decimal.Decimal) error {
	if !o.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items after the quote is approved")
	}
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			o.recalculateTotals()
			o.Touch()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// RemoveItem removes an item from the order
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	if !o.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items after the quote is approved")
	}
	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalculateTotals()
			o.Touch()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// ApplyDiscount applies an order-level discount
func (o *Order) ApplyDiscount(discount valueobject.Money) error {
	if !o.CanModify() {
		return shared.NewDomainError("INVALID_STATE", "Cannot apply discount after the quote is approved")
	}
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if discount.Amount().GreaterThan(o.TotalAmount) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed total amount")
	}
	o.DiscountAmount = discount.Amount()
	o.PayableAmount = o.TotalAmount.Sub(o.DiscountAmount)
	// the payment status is derived from the payable amount, so a discount
	// that clears the balance settles the order on the spot
	o.ApplyPaymentSummary(o.PaidAmount)
	return nil
}

// ChangeStatus moves the order to the target status after checking the fixed
// successor map. A same-status request is accepted and recorded as a no-op
// without an audit row. An accepted transition appends one StatusChange to
// the history.
func (o *Order) ChangeStatus(target OrderStatus, changedBy *uuid.UUID, note string) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	if target == o.Status {
		return nil
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}
	if target == StatusAprovado && len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot approve a quote without items")
	}

	now := time.Now()
	change := StatusChange{
		ID:         uuid.New(),
		OrderID:    o.ID,
		FromStatus: o.Status,
		ToStatus:   target,
		ChangedBy:  changedBy,
		Note:       note,
		CreatedAt:  now,
	}

	o.Status = target
	o.History = append(o.History, change)
	switch target {
	case StatusEntregue:
		o.DeliveredAt = &now
	case StatusCancelado:
		o.CancelledAt = &now
	}
	o.UpdatedAt = now
	return nil
}

// Approve moves an orcamento to aprovado. Used by the public token flow.
func (o *Order) Approve(note string) error {
	if o.Status != StatusOrcamento {
		return shared.NewDomainError("INVALID_TRANSITION", "Only quotes can be approved")
	}
	return o.ChangeStatus(StatusAprovado, nil, note)
}

// RemainingAmount returns the unpaid balance, clamped at zero
func (o *Order) RemainingAmount() decimal.Decimal {
	remaining := o.PayableAmount.Sub(o.PaidAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// ApplyPaymentSummary stores a recomputed payment summary on the order.
// paid is the sum of confirmed payments; the derived status follows the
// threshold rule against the payable amount.
func (o *Order) ApplyPaymentSummary(paid decimal.Decimal) {
	o.PaidAmount = paid
	switch {
	case paid.GreaterThanOrEqual(o.PayableAmount):
		o.PaymentStatus = PaymentPago
	case paid.IsPositive():
		o.PaymentStatus = PaymentParcial
	default:
		o.PaymentStatus = PaymentPendente
	}
	o.Touch()
}

// SetCreatedBy records the user who opened the quote
func (o *Order) SetCreatedBy(userID uuid.UUID) {
	o.CreatedBy = &userID
}

// SetDeliveryDate sets the promised delivery date
func (o *Order) SetDeliveryDate(date time.Time) {
	o.DeliveryDate = &date
	o.Touch()
}

// SetNotes sets free-form order notes
func (o *Order) SetNotes(notes string) {
	o.Notes = notes
	o.Touch()
}

// AttachArtwork records the object-storage key of the customer artwork file
func (o *Order) AttachArtwork(key string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_ARTWORK", "Artwork key cannot be empty")
	}
	o.ArtworkKey = key
	o.Touch()
	return nil
}

// recalculateTotals recalculates the order totals
func (o *Order) recalculateTotals() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total
	o.PayableAmount = o.TotalAmount.Sub(o.DiscountAmount)
	if o.PayableAmount.IsNegative() {
		o.DiscountAmount = o.TotalAmount
		o.PayableAmount = decimal.Zero
	}
}

// CanModify returns true while items and discounts may still change
func (o *Order) CanModify() bool {
	return o.Status == StatusOrcamento
}

// IsCancelled returns true if the order was cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == StatusCancelado
}

// IsOpen returns true for orders still on the kanban board
func (o *Order) IsOpen() bool {
	return !o.Status.IsTerminal()
}

// ItemCount returns the number of items in the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// GetItem returns an item by its ID
func (o *Order) GetItem(itemID uuid.UUID) *OrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}
