package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	SKU           string     `json:"sku"`
	Price         Money      `json:"price"`
	StockQuantity int        `json:"stockQuantity"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt"`
	IsActive      bool       `json:"isActive"`
}

func NewProduct(name, description, sku string, price Money, stockQuantity int) (Product, []Event) {
	p := Product{
		ID:            uuid.New(),
		Name:          name,
		Description:   description,
		SKU:           sku,
		Price:         price,
		StockQuantity: stockQuantity,
		CreatedAt:     time.Now().UTC(),
		IsActive:      true,
	}
	return p, []Event{entityChanged(EntityProduct, ChangeCreated, p)}
}

func (p Product) Update(name, description string, price Money) (Product, []Event) {
	now := time.Now().UTC()
	p.Name = name
	p.Description = description
	p.Price = price
	p.UpdatedAt = &now
	return p, []Event{entityChanged(EntityProduct, ChangeUpdated, p)}
}

func (p Product) AdjustStock(delta int) (Product, []Event) {
	now := time.Now().UTC()
	p.StockQuantity += delta
	p.UpdatedAt = &now
	return p, []Event{entityChanged(EntityProduct, ChangeUpdated, p)}
}
