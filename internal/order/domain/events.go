package domain

import (
	"fmt"
	"time"
)

const (
	EntityCustomer = "Customer"
	EntityOrder    = "Order"
	EntityProduct  = "Product"
)

const (
	ChangeCreated   = "Created"
	ChangeUpdated   = "Updated"
	ChangeCancelled = "Cancelled"
)

// Event documents one entity change. Operations return their events
// explicitly; the transaction boundary forwards them to the outbox.
type Event struct {
	EntityType string
	ChangeType string
	OccurredAt time.Time
	Entity     any
}

func entityChanged(entityType, changeType string, entity any) Event {
	return Event{
		EntityType: entityType,
		ChangeType: changeType,
		OccurredAt: time.Now().UTC(),
		Entity:     entity,
	}
}

// Name is the eventType tag stored on the outbox record.
func (e Event) Name() string {
	return fmt.Sprintf("EntityChanged<%s>", e.EntityType)
}
