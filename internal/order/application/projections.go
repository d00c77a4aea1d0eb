package application

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmehra2102/order-sync/internal/order/domain"
	"github.com/dmehra2102/order-sync/pkg/outbox"
)

// One explicit projection per entity type, selected by the eventType tag
// on the outbox record. The projection shapes are the wire contract the
// sync worker decodes.

type customerProjection struct {
	ID             uuid.UUID  `json:"id"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	DocumentNumber *string    `json:"documentNumber"`
	DateOfBirth    *time.Time `json:"dateOfBirth"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      *time.Time `json:"updatedAt"`
	IsActive       bool       `json:"isActive"`
}

type orderProjection struct {
	ID               uuid.UUID       `json:"id"`
	OrderNumber      string          `json:"orderNumber"`
	CustomerID       uuid.UUID       `json:"customerId"`
	Status           string          `json:"status"`
	SubtotalAmount   decimal.Decimal `json:"subtotalAmount"`
	SubtotalCurrency string          `json:"subtotalCurrency"`
	TaxAmount        decimal.Decimal `json:"taxAmount"`
	TaxCurrency      string          `json:"taxCurrency"`
	ShippingAmount   decimal.Decimal `json:"shippingAmount"`
	ShippingCurrency string          `json:"shippingCurrency"`
	DiscountAmount   decimal.Decimal `json:"discountAmount"`
	DiscountCurrency string          `json:"discountCurrency"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	TotalCurrency    string          `json:"totalCurrency"`
	Notes            *string         `json:"notes"`
	CancelledAt      *time.Time      `json:"cancelledAt"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        *time.Time      `json:"updatedAt"`
	IsActive         bool            `json:"isActive"`
}

type productProjection struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	SKU           string          `json:"sku"`
	Price         decimal.Decimal `json:"price"`
	Currency      string          `json:"currency"`
	StockQuantity int             `json:"stockQuantity"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     *time.Time      `json:"updatedAt"`
	IsActive      bool            `json:"isActive"`
}

func RegisterProjections(reg *outbox.ProjectionRegistry) {
	reg.Register("EntityChanged<Customer>", projectCustomer)
	reg.Register("EntityChanged<Order>", projectOrder)
	reg.Register("EntityChanged<Product>", projectProduct)
}

func projectCustomer(payload []byte) (string, outbox.Envelope, error) {
	var change struct {
		Entity     domain.Customer `json:"entity"`
		ChangeType string          `json:"changeType"`
		OccurredAt time.Time       `json:"occurredAt"`
	}
	if err := json.Unmarshal(payload, &change); err != nil {
		return "", outbox.Envelope{}, fmt.Errorf("decode customer change: %w", err)
	}

	c := change.Entity
	proj := customerProjection{
		ID:             c.ID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		Phone:          c.Phone,
		DocumentNumber: c.DocumentNumber,
		DateOfBirth:    c.DateOfBirth,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
		IsActive:       c.IsActive,
	}

	env, err := outbox.NewEnvelope(c.ID, domain.EntityCustomer, change.ChangeType, change.OccurredAt, proj)
	if err != nil {
		return "", outbox.Envelope{}, err
	}
	return outbox.QueueName(domain.EntityCustomer), env, nil
}

func projectOrder(payload []byte) (string, outbox.Envelope, error) {
	var change struct {
		Entity     domain.Order `json:"entity"`
		ChangeType string       `json:"changeType"`
		OccurredAt time.Time    `json:"occurredAt"`
	}
	if err := json.Unmarshal(payload, &change); err != nil {
		return "", outbox.Envelope{}, fmt.Errorf("decode order change: %w", err)
	}

	o := change.Entity
	proj := orderProjection{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		CustomerID:       o.CustomerID,
		Status:           string(o.Status),
		SubtotalAmount:   o.Subtotal.Amount,
		SubtotalCurrency: o.Subtotal.Currency,
		TaxAmount:        o.TaxAmount.Amount,
		TaxCurrency:      o.TaxAmount.Currency,
		ShippingAmount:   o.ShippingAmount.Amount,
		ShippingCurrency: o.ShippingAmount.Currency,
		DiscountAmount:   o.DiscountAmount.Amount,
		DiscountCurrency: o.DiscountAmount.Currency,
		TotalAmount:      o.TotalAmount.Amount,
		TotalCurrency:    o.TotalAmount.Currency,
		Notes:            o.Notes,
		CancelledAt:      o.CancelledAt,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
		IsActive:         o.IsActive,
	}

	env, err := outbox.NewEnvelope(o.ID, domain.EntityOrder, change.ChangeType, change.OccurredAt, proj)
	if err != nil {
		return "", outbox.Envelope{}, err
	}
	return outbox.QueueName(domain.EntityOrder), env, nil
}

func projectProduct(payload []byte) (string, outbox.Envelope, error) {
	var change struct {
		Entity     domain.Product `json:"entity"`
		ChangeType string         `json:"changeType"`
		OccurredAt time.Time      `json:"occurredAt"`
	}
	if err := json.Unmarshal(payload, &change); err != nil {
		return "", outbox.Envelope{}, fmt.Errorf("decode product change: %w", err)
	}

	p := change.Entity
	proj := productProjection{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		SKU:           p.SKU,
		Price:         p.Price.Amount,
		Currency:      p.Price.Currency,
		StockQuantity: p.StockQuantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		IsActive:      p.IsActive,
	}

	env, err := outbox.NewEnvelope(p.ID, domain.EntityProduct, change.ChangeType, change.OccurredAt, proj)
	if err != nil {
		return "", outbox.Envelope{}, err
	}
	return outbox.QueueName(domain.EntityProduct), env, nil
}
