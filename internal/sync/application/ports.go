package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmehra2102/order-sync/internal/sync/readmodel"
)

// Read-store repositories. FindByID returns nil when no row exists.

type CustomerReadRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*readmodel.Customer, error)
	Upsert(ctx context.Context, c readmodel.Customer) error
}

type OrderReadRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*readmodel.Order, error)
	Upsert(ctx context.Context, o readmodel.Order) error
}

type ProductReadRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*readmodel.Product, error)
	Upsert(ctx context.Context, p readmodel.Product) error
}
