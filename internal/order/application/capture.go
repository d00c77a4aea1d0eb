package application

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmehra2102/order-sync/internal/order/domain"
	"github.com/dmehra2102/order-sync/pkg/outbox"
)

type changePayload struct {
	Entity     any       `json:"entity"`
	ChangeType string    `json:"changeType"`
	OccurredAt time.Time `json:"occurredAt"`
}

// CaptureRecords converts domain events into outbox records, one record
// per event. A failure here aborts the write before any transaction is
// committed, so no event can be dropped silently.
func CaptureRecords(events []domain.Event) ([]outbox.Record, error) {
	records := make([]outbox.Record, 0, len(events))
	for _, ev := range events {
		payload, err := json.Marshal(changePayload{
			Entity:     ev.Entity,
			ChangeType: ev.ChangeType,
			OccurredAt: ev.OccurredAt,
		})
		if err != nil {
			return nil, fmt.Errorf("capture %s: %w", ev.Name(), err)
		}
		records = append(records, outbox.NewRecord(ev.Name(), payload))
	}
	return records, nil
}
