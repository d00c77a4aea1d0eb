package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmehra2102/order-sync/internal/order/domain"
	"github.com/dmehra2102/order-sync/pkg/outbox"
)

type CustomerRepository interface {
	SaveWithEvents(ctx context.Context, c domain.Customer, records []outbox.Record) error
	Get(ctx context.Context, id uuid.UUID) (domain.Customer, error)
}

type OrderRepository interface {
	SaveWithEvents(ctx context.Context, o domain.Order, records []outbox.Record) error
	Get(ctx context.Context, id uuid.UUID) (domain.Order, error)
}

type ProductRepository interface {
	SaveWithEvents(ctx context.Context, p domain.Product, records []outbox.Record) error
	Get(ctx context.Context, id uuid.UUID) (domain.Product, error)
}
