package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dmehra2102/order-sync/pkg/outbox"
)

// MessageHandlerFunc decodes and applies one entity payload.
type MessageHandlerFunc func(ctx context.Context, payload []byte) error

// Deduper short-circuits envelopes whose eventId was already dispatched.
type Deduper interface {
	Key(scope, id string) string
	Seen(ctx context.Context, key string) (bool, error)
}

// Dispatcher routes an incoming envelope to the handler registered for
// its entityType. Unknown entity types are logged and dropped; they are
// treated as forward-compatibility noise, not faults.
type Dispatcher struct {
	log      *slog.Logger
	dedup    Deduper
	handlers map[string]MessageHandlerFunc
}

func NewDispatcher(log *slog.Logger, dedup Deduper) *Dispatcher {
	return &Dispatcher{
		log:      log,
		dedup:    dedup,
		handlers: make(map[string]MessageHandlerFunc),
	}
}

func (d *Dispatcher) Register(entityType string, fn MessageHandlerFunc) {
	d.handlers[entityType] = fn
}

func (d *Dispatcher) Dispatch(ctx context.Context, body []byte) error {
	var env outbox.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}

	handler, ok := d.handlers[env.EntityType]
	if !ok {
		d.log.Warn("unsupported entity type, message dropped",
			"entity_type", env.EntityType, "event_id", env.EventID)
		return nil
	}

	if d.dedup != nil {
		key := d.dedup.Key(env.EntityType, env.EventID.String())
		seen, err := d.dedup.Seen(ctx, key)
		if err != nil {
			// Dedup is an optimization; the upsert itself is idempotent.
			d.log.Warn("dedup check failed, processing anyway", "event_id", env.EventID, "err", err)
		} else if seen {
			d.log.Info("duplicate message skipped", "event_id", env.EventID, "entity_type", env.EntityType)
			return nil
		}
	}

	d.log.Debug("dispatching message",
		"entity_type", env.EntityType, "change_type", env.ChangeType, "entity_id", env.EntityID)

	if err := handler(ctx, []byte(env.Payload)); err != nil {
		return err
	}

	d.log.Debug("message dispatched", "entity_type", env.EntityType, "entity_id", env.EntityID)
	return nil
}
