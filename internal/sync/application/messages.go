package application

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmehra2102/order-sync/internal/sync/readmodel"
)

// Typed message shapes, one per entity queue. Field names mirror the
// projections the relay publishes.

type CustomerMessage struct {
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

// Row builds the read-model row from the message, no validation applied.
func (m CustomerMessage) Row() readmodel.Customer {
	return readmodel.Customer{
		ID:             m.ID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Email:          m.Email,
		Phone:          m.Phone,
		DocumentNumber: m.DocumentNumber,
		DateOfBirth:    m.DateOfBirth,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		IsActive:       m.IsActive,
	}
}

type OrderMessage struct {
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

func (m OrderMessage) Row() readmodel.Order {
	return readmodel.Order{
		ID:               m.ID,
		OrderNumber:      m.OrderNumber,
		CustomerID:       m.CustomerID,
		Status:           m.Status,
		SubtotalAmount:   m.SubtotalAmount,
		SubtotalCurrency: m.SubtotalCurrency,
		TaxAmount:        m.TaxAmount,
		TaxCurrency:      m.TaxCurrency,
		ShippingAmount:   m.ShippingAmount,
		ShippingCurrency: m.ShippingCurrency,
		DiscountAmount:   m.DiscountAmount,
		DiscountCurrency: m.DiscountCurrency,
		TotalAmount:      m.TotalAmount,
		TotalCurrency:    m.TotalCurrency,
		Notes:            m.Notes,
		CancelledAt:      m.CancelledAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		IsActive:         m.IsActive,
	}
}

type ProductMessage struct {
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

func (m ProductMessage) Row() readmodel.Product {
	return readmodel.Product{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		SKU:           m.SKU,
		Price:         m.Price,
		Currency:      m.Currency,
		StockQuantity: m.StockQuantity,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		IsActive:      m.IsActive,
	}
}
