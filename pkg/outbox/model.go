package outbox

import (
	"time"

	"github.com/google/uuid"
)

// Record is one captured domain change, written in the same transaction
// as the business write it documents. Only the relay mutates a record
// after creation.
type Record struct {
	ID          uuid.UUID
	EventType   string
	Payload     []byte
	OccurredAt  time.Time
	ProcessedAt *time.Time
	IsProcessed bool
	Error       *string
	RetryCount  int
}

func NewRecord(eventType string, payload []byte) Record {
	return Record{
		ID:         uuid.New(),
		EventType:  eventType,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

func (r *Record) MarkProcessed() {
	now := time.Now().UTC()
	r.IsProcessed = true
	r.ProcessedAt = &now
	r.Error = nil
}

func (r *Record) MarkFailed(msg string) {
	r.Error = &msg
	r.RetryCount++
}

func (r *Record) ShouldRetry(maxRetries int) bool {
	return r.RetryCount < maxRetries
}
