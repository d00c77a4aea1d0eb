package application

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/order-sync/internal/sync/readmodel"
)

type fakeOrderReadRepo struct {
	rows    map[uuid.UUID]readmodel.Order
	upserts int
	findErr error
}

func newFakeOrderReadRepo() *fakeOrderReadRepo {
	return &fakeOrderReadRepo{rows: make(map[uuid.UUID]readmodel.Order)}
}

func (r *fakeOrderReadRepo) FindByID(_ context.Context, id uuid.UUID) (*readmodel.Order, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *fakeOrderReadRepo) Upsert(_ context.Context, o readmodel.Order) error {
	r.rows[o.ID] = o
	r.upserts++
	return nil
}

type fakeProductReadRepo struct {
	rows map[uuid.UUID]readmodel.Product
}

func (r *fakeProductReadRepo) FindByID(_ context.Context, id uuid.UUID) (*readmodel.Product, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *fakeProductReadRepo) Upsert(_ context.Context, p readmodel.Product) error {
	r.rows[p.ID] = p
	return nil
}

func orderMessage() OrderMessage {
	return OrderMessage{
		ID:               uuid.New(),
		OrderNumber:      "ORD-2025-0042",
		CustomerID:       uuid.New(),
		Status:           "Pending",
		SubtotalAmount:   decimal.NewFromInt(100),
		SubtotalCurrency: "BRL",
		TotalAmount:      decimal.NewFromInt(100),
		TotalCurrency:    "BRL",
		CreatedAt:        time.Now().UTC(),
		IsActive:         true,
	}
}

func TestOrderHandlerCreatesRow(t *testing.T) {
	repo := newFakeOrderReadRepo()
	h := NewOrderHandler(slog.New(slog.DiscardHandler), repo)

	msg := orderMessage()
	require.NoError(t, h.Handle(context.Background(), msg))

	row, ok := repo.rows[msg.ID]
	require.True(t, ok)
	require.Equal(t, "ORD-2025-0042", row.OrderNumber)
	require.Equal(t, "Pending", row.Status)
	require.True(t, row.TotalAmount.Equal(decimal.NewFromInt(100)))
}

func TestOrderHandlerDoubleApplyIsIdempotent(t *testing.T) {
	repo := newFakeOrderReadRepo()
	h := NewOrderHandler(slog.New(slog.DiscardHandler), repo)

	msg := orderMessage()
	require.NoError(t, h.Handle(context.Background(), msg))
	require.NoError(t, h.Handle(context.Background(), msg))

	require.Equal(t, 2, repo.upserts)
	require.Len(t, repo.rows, 1)
	require.Equal(t, msg.Row(), repo.rows[msg.ID])
}

func TestOrderHandlerLastWriteWins(t *testing.T) {
	repo := newFakeOrderReadRepo()
	h := NewOrderHandler(slog.New(slog.DiscardHandler), repo)

	msg := orderMessage()
	require.NoError(t, h.Handle(context.Background(), msg))

	updated := msg
	updated.Status = "Cancelled"
	now := time.Now().UTC()
	updated.CancelledAt = &now
	require.NoError(t, h.Handle(context.Background(), updated))

	require.Equal(t, "Cancelled", repo.rows[msg.ID].Status)
	require.NotNil(t, repo.rows[msg.ID].CancelledAt)
}

func TestOrderHandlerFindFailureAbortsUpsert(t *testing.T) {
	repo := newFakeOrderReadRepo()
	repo.findErr = errors.New("read db down")
	h := NewOrderHandler(slog.New(slog.DiscardHandler), repo)

	err := h.Handle(context.Background(), orderMessage())
	require.ErrorContains(t, err, "read db down")
	require.Zero(t, repo.upserts)
}

func TestProductHandlerRawDecodesWirePayload(t *testing.T) {
	repo := &fakeProductReadRepo{rows: make(map[uuid.UUID]readmodel.Product)}
	h := NewProductHandler(slog.New(slog.DiscardHandler), repo)

	id := uuid.New()
	payload, err := json.Marshal(map[string]any{
		"id":            id,
		"name":          "Keyboard",
		"sku":           "KB-87",
		"price":         "350",
		"currency":      "BRL",
		"stockQuantity": 10,
		"createdAt":     time.Now().UTC(),
		"isActive":      true,
	})
	require.NoError(t, err)

	require.NoError(t, h.HandleRaw(context.Background(), payload))

	row, ok := repo.rows[id]
	require.True(t, ok)
	require.Equal(t, "KB-87", row.SKU)
	require.True(t, row.Price.Equal(decimal.NewFromInt(350)))
	require.Equal(t, 10, row.StockQuantity)
}

func TestProductHandlerRawMalformedPayload(t *testing.T) {
	repo := &fakeProductReadRepo{rows: make(map[uuid.UUID]readmodel.Product)}
	h := NewProductHandler(slog.New(slog.DiscardHandler), repo)

	err := h.HandleRaw(context.Background(), []byte(`{"id": 12}`))
	require.ErrorContains(t, err, "decode product message")
	require.Empty(t, repo.rows)
}
