package outbox

import (
	"errors"
	"fmt"
)

var ErrUnsupportedEventType = errors.New("unsupported event type")

// ProjectFunc turns a stored outbox payload into the queue and envelope
// to publish. Each entity type registers its own explicit projection;
// the relay never inspects payloads by field name.
type ProjectFunc func(payload []byte) (queue string, env Envelope, err error)

type ProjectionRegistry struct {
	byEventType map[string]ProjectFunc
}

func NewProjectionRegistry() *ProjectionRegistry {
	return &ProjectionRegistry{byEventType: make(map[string]ProjectFunc)}
}

func (p *ProjectionRegistry) Register(eventType string, fn ProjectFunc) {
	p.byEventType[eventType] = fn
}

func (p *ProjectionRegistry) Project(eventType string, payload []byte) (string, Envelope, error) {
	fn, ok := p.byEventType[eventType]
	if !ok {
		return "", Envelope{}, fmt.Errorf("%w: %s", ErrUnsupportedEventType, eventType)
	}
	return fn(payload)
}
