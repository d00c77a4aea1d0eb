package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmehra2102/order-sync/internal/order/domain"
)

type ProductService struct {
	repo ProductRepository
}

func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) Create(ctx context.Context, name, description, sku string, price domain.Money, stockQuantity int) (domain.Product, error) {
	p, events := domain.NewProduct(name, description, sku, price, stockQuantity)

	records, err := CaptureRecords(events)
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.repo.SaveWithEvents(ctx, p, records); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, name, description string, price domain.Money) (domain.Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	updated, events := p.Update(name, description, price)

	records, err := CaptureRecords(events)
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.repo.SaveWithEvents(ctx, updated, records); err != nil {
		return domain.Product{}, err
	}
	return updated, nil
}

func (s *ProductService) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (domain.Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	adjusted, events := p.AdjustStock(delta)

	records, err := CaptureRecords(events)
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.repo.SaveWithEvents(ctx, adjusted, records); err != nil {
		return domain.Product{}, err
	}
	return adjusted, nil
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	return s.repo.Get(ctx, id)
}
