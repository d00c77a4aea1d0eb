package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmehra2102/order-sync/internal/order/domain"
)

type CustomerService struct {
	repo CustomerRepository
}

func NewCustomerService(repo CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

func (s *CustomerService) Create(ctx context.Context, firstName, lastName, email, phone string, documentNumber *string, dateOfBirth *time.Time) (domain.Customer, error) {
	c, events := domain.NewCustomer(firstName, lastName, email, phone, documentNumber, dateOfBirth)

	records, err := CaptureRecords(events)
	if err != nil {
		return domain.Customer{}, err
	}
	if err := s.repo.SaveWithEvents(ctx, c, records); err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}

func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, firstName, lastName, email, phone string) (domain.Customer, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}

	updated, events := c.Update(firstName, lastName, email, phone)

	records, err := CaptureRecords(events)
	if err != nil {
		return domain.Customer{}, err
	}
	if err := s.repo.SaveWithEvents(ctx, updated, records); err != nil {
		return domain.Customer{}, err
	}
	return updated, nil
}

func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	return s.repo.Get(ctx, id)
}
