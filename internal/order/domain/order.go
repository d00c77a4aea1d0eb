package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderConfirmed OrderStatus = "Confirmed"
	OrderShipped   OrderStatus = "Shipped"
	OrderDelivered OrderStatus = "Delivered"
	OrderCancelled OrderStatus = "Cancelled"
)

type Order struct {
	ID             uuid.UUID   `json:"id"`
	OrderNumber    string      `json:"orderNumber"`
	CustomerID     uuid.UUID   `json:"customerId"`
	Status         OrderStatus `json:"status"`
	Subtotal       Money       `json:"subtotal"`
	TaxAmount      Money       `json:"taxAmount"`
	ShippingAmount Money       `json:"shippingAmount"`
	DiscountAmount Money       `json:"discountAmount"`
	TotalAmount    Money       `json:"totalAmount"`
	Notes          *string     `json:"notes"`
	CancelledAt    *time.Time  `json:"cancelledAt"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      *time.Time  `json:"updatedAt"`
	IsActive       bool        `json:"isActive"`
}

func NewOrder(customerID uuid.UUID, orderNumber string, subtotal, tax, shipping, discount Money) (Order, []Event) {
	o := Order{
		ID:             uuid.New(),
		OrderNumber:    orderNumber,
		CustomerID:     customerID,
		Status:         OrderPending,
		Subtotal:       subtotal,
		TaxAmount:      tax,
		ShippingAmount: shipping,
		DiscountAmount: discount,
		TotalAmount:    subtotal.Add(tax).Add(shipping).Sub(discount),
		CreatedAt:      time.Now().UTC(),
		IsActive:       true,
	}
	return o, []Event{entityChanged(EntityOrder, ChangeCreated, o)}
}

func (o Order) UpdateStatus(status OrderStatus) (Order, []Event) {
	now := time.Now().UTC()
	o.Status = status
	o.UpdatedAt = &now
	return o, []Event{entityChanged(EntityOrder, ChangeUpdated, o)}
}

func (o Order) Cancel() (Order, []Event) {
	now := time.Now().UTC()
	o.Status = OrderCancelled
	o.CancelledAt = &now
	o.UpdatedAt = &now
	return o, []Event{entityChanged(EntityOrder, ChangeCancelled, o)}
}
