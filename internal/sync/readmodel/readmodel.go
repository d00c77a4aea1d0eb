package readmodel

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Denormalized read-side rows. They share identity with their write-side
// counterparts but are only ever written by the sync handlers. Rows are
// built straight from sync messages without validation: the write side
// already validated everything before the event was captured.

type Customer struct {
	ID             uuid.UUID
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	DocumentNumber *string
	DateOfBirth    *time.Time
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	IsActive       bool
}

type Order struct {
	ID               uuid.UUID
	OrderNumber      string
	CustomerID       uuid.UUID
	Status           string
	SubtotalAmount   decimal.Decimal
	SubtotalCurrency string
	TaxAmount        decimal.Decimal
	TaxCurrency      string
	ShippingAmount   decimal.Decimal
	ShippingCurrency string
	DiscountAmount   decimal.Decimal
	DiscountCurrency string
	TotalAmount      decimal.Decimal
	TotalCurrency    string
	Notes            *string
	CancelledAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        *time.Time
	IsActive         bool
}

type Product struct {
	ID            uuid.UUID
	Name          string
	Description   string
	SKU           string
	Price         decimal.Decimal
	Currency      string
	StockQuantity int
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	IsActive      bool
}
