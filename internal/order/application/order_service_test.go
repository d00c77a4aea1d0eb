package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/order-sync/internal/order/domain"
	"github.com/dmehra2102/order-sync/pkg/outbox"
)

type fakeOrderRepo struct {
	orders  map[uuid.UUID]domain.Order
	records []outbox.Record
	saveErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]domain.Order)}
}

func (r *fakeOrderRepo) SaveWithEvents(_ context.Context, o domain.Order, records []outbox.Record) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.orders[o.ID] = o
	r.records = append(r.records, records...)
	return nil
}

func (r *fakeOrderRepo) Get(_ context.Context, id uuid.UUID) (domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return domain.Order{}, errors.New("order not found")
	}
	return o, nil
}

func TestOrderServiceCreateCapturesRecord(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderService(repo)

	o, err := svc.Create(context.Background(), uuid.New(), "ORD-2025-0001", money(100), money(10), money(25), money(5))
	require.NoError(t, err)

	require.True(t, o.TotalAmount.Amount.Equal(decimal.NewFromInt(130)))
	require.Equal(t, domain.OrderPending, o.Status)

	require.Len(t, repo.records, 1)
	require.Equal(t, "EntityChanged<Order>", repo.records[0].EventType)

	stored, err := repo.Get(context.Background(), o.ID)
	require.NoError(t, err)
	require.Equal(t, o.OrderNumber, stored.OrderNumber)
}

func TestOrderServiceCancelEmitsCancelledChange(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderService(repo)

	o, err := svc.Create(context.Background(), uuid.New(), "ORD-2025-0002", money(80), money(0), money(0), money(0))
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), o.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	require.Len(t, repo.records, 2)
	var change struct {
		ChangeType string `json:"changeType"`
	}
	require.NoError(t, json.Unmarshal(repo.records[1].Payload, &change))
	require.Equal(t, domain.ChangeCancelled, change.ChangeType)
}

func TestOrderServiceSaveFailurePropagates(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.saveErr = errors.New("tx aborted")
	svc := NewOrderService(repo)

	_, err := svc.Create(context.Background(), uuid.New(), "ORD-2025-0003", money(10), money(0), money(0), money(0))
	require.ErrorContains(t, err, "tx aborted")
	require.Empty(t, repo.records)
}
