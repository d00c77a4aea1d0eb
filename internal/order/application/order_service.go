package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmehra2102/order-sync/internal/order/domain"
)

type OrderService struct {
	repo OrderRepository
}

func NewOrderService(repo OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

func (s *OrderService) Create(ctx context.Context, customerID uuid.UUID, orderNumber string, subtotal, tax, shipping, discount domain.Money) (domain.Order, error) {
	o, events := domain.NewOrder(customerID, orderNumber, subtotal, tax, shipping, discount)

	records, err := CaptureRecords(events)
	if err != nil {
		return domain.Order{}, err
	}
	if err := s.repo.SaveWithEvents(ctx, o, records); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (domain.Order, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	updated, events := o.UpdateStatus(status)

	records, err := CaptureRecords(events)
	if err != nil {
		return domain.Order{}, err
	}
	if err := s.repo.SaveWithEvents(ctx, updated, records); err != nil {
		return domain.Order{}, err
	}
	return updated, nil
}

func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	cancelled, events := o.Cancel()

	records, err := CaptureRecords(events)
	if err != nil {
		return domain.Order{}, err
	}
	if err := s.repo.SaveWithEvents(ctx, cancelled, records); err != nil {
		return domain.Order{}, err
	}
	return cancelled, nil
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	return s.repo.Get(ctx, id)
}
