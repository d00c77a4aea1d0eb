package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Upserts here are last-write-wins: whichever message is applied last
// overwrites the row, regardless of occurredAt. Out-of-order delivery of
// different versions of the same entity can therefore regress a row.
// Known limitation of the sync design, kept as-is.

type CustomerHandler struct {
	log  *slog.Logger
	repo CustomerReadRepository
}

func NewCustomerHandler(log *slog.Logger, repo CustomerReadRepository) *CustomerHandler {
	return &CustomerHandler{log: log, repo: repo}
}

func (h *CustomerHandler) Handle(ctx context.Context, msg CustomerMessage) error {
	existing, err := h.repo.FindByID(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("find customer %s: %w", msg.ID, err)
	}

	if existing == nil {
		h.log.Debug("creating customer via sync", "customer_id", msg.ID)
	} else {
		h.log.Debug("updating customer via sync", "customer_id", msg.ID)
	}

	if err := h.repo.Upsert(ctx, msg.Row()); err != nil {
		return fmt.Errorf("upsert customer %s: %w", msg.ID, err)
	}
	return nil
}

func (h *CustomerHandler) HandleRaw(ctx context.Context, payload []byte) error {
	var msg CustomerMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("decode customer message: %w", err)
	}
	return h.Handle(ctx, msg)
}

type OrderHandler struct {
	log  *slog.Logger
	repo OrderReadRepository
}

func NewOrderHandler(log *slog.Logger, repo OrderReadRepository) *OrderHandler {
	return &OrderHandler{log: log, repo: repo}
}

func (h *OrderHandler) Handle(ctx context.Context, msg OrderMessage) error {
	existing, err := h.repo.FindByID(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("find order %s: %w", msg.ID, err)
	}

	if existing == nil {
		h.log.Debug("creating order via sync", "order_id", msg.ID)
	} else {
		h.log.Debug("updating order via sync", "order_id", msg.ID)
	}

	if err := h.repo.Upsert(ctx, msg.Row()); err != nil {
		return fmt.Errorf("upsert order %s: %w", msg.ID, err)
	}
	return nil
}

func (h *OrderHandler) HandleRaw(ctx context.Context, payload []byte) error {
	var msg OrderMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("decode order message: %w", err)
	}
	return h.Handle(ctx, msg)
}

type ProductHandler struct {
	log  *slog.Logger
	repo ProductReadRepository
}

func NewProductHandler(log *slog.Logger, repo ProductReadRepository) *ProductHandler {
	return &ProductHandler{log: log, repo: repo}
}

func (h *ProductHandler) Handle(ctx context.Context, msg ProductMessage) error {
	existing, err := h.repo.FindByID(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("find product %s: %w", msg.ID, err)
	}

	if existing == nil {
		h.log.Debug("creating product via sync", "product_id", msg.ID)
	} else {
		h.log.Debug("updating product via sync", "product_id", msg.ID)
	}

	if err := h.repo.Upsert(ctx, msg.Row()); err != nil {
		return fmt.Errorf("upsert product %s: %w", msg.ID, err)
	}
	return nil
}

func (h *ProductHandler) HandleRaw(ctx context.Context, payload []byte) error {
	var msg ProductMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("decode product message: %w", err)
	}
	return h.Handle(ctx, msg)
}
