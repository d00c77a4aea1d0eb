package outbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrMissingEntityID = errors.New("envelope requires a non-nil entity id")

// Envelope is the wire message placed on the broker. Payload carries the
// entity projection as a JSON-encoded string, so consumers can pick the
// typed shape from EntityType before decoding it.
type Envelope struct {
	EventID    uuid.UUID `json:"eventId"`
	EntityID   uuid.UUID `json:"entityId"`
	EntityType string    `json:"entityType"`
	ChangeType string    `json:"changeType"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    string    `json:"payload"`
}

// NewEnvelope builds a wire envelope around an entity projection.
// EventID is fresh per call, so every publish attempt is distinguishable.
func NewEnvelope(entityID uuid.UUID, entityType, changeType string, occurredAt time.Time, projection any) (Envelope, error) {
	if entityID == uuid.Nil {
		return Envelope{}, ErrMissingEntityID
	}

	body, err := json.Marshal(projection)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s projection: %w", entityType, err)
	}

	return Envelope{
		EventID:    uuid.New(),
		EntityID:   entityID,
		EntityType: entityType,
		ChangeType: changeType,
		OccurredAt: occurredAt,
		Payload:    string(body),
	}, nil
}

// QueueName maps an entity type to its broker queue, one queue per type.
func QueueName(entityType string) string {
	return "entity.changed." + strings.ToLower(entityType)
}
