package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/dmehra2102/order-sync/pkg/tracing"
)

// Publisher sends durable messages to named queues. The connection is
// established lazily and reused while healthy; on any failure the whole
// publish is retried (reconnect, redeclare, resend) up to
// ConnectionRetryCount times with a fixed delay between attempts.
type Publisher struct {
	mu       sync.Mutex
	log      *slog.Logger
	settings Settings
	conn     *amqp.Connection
	channel  *amqp.Channel
}

func NewPublisher(log *slog.Logger, settings Settings) *Publisher {
	return &Publisher{log: log, settings: settings}
}

func (p *Publisher) Publish(ctx context.Context, queue string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for attempt := 1; attempt <= p.settings.ConnectionRetryCount; attempt++ {
		if err := p.tryPublish(ctx, queue, body); err != nil {
			lastErr = err
			p.log.Warn("publish attempt failed",
				"queue", queue, "attempt", attempt, "max_attempts", p.settings.ConnectionRetryCount, "err", err)
			p.teardown()

			if attempt == p.settings.ConnectionRetryCount {
				break
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.settings.ConnectionRetryDelay):
			}
			continue
		}
		return nil
	}

	return fmt.Errorf("publish to %s failed after %d attempts: %w",
		queue, p.settings.ConnectionRetryCount, lastErr)
}

func (p *Publisher) tryPublish(ctx context.Context, queue string, body []byte) error {
	if err := p.ensureChannel(); err != nil {
		return err
	}

	if _, err := p.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Headers:      tracing.InjectAMQPHeaders(ctx, nil),
		Body:         body,
	}

	if err := p.channel.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	p.log.Debug("message published", "queue", queue, "message_id", msg.MessageId)
	return nil
}

func (p *Publisher) ensureChannel() error {
	if p.conn != nil && !p.conn.IsClosed() && p.channel != nil && !p.channel.IsClosed() {
		return nil
	}
	p.teardown()

	conn, err := amqp.Dial(p.settings.URL)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	p.conn = conn
	p.channel = ch
	p.log.Debug("broker connection established")
	return nil
}

// teardown drops the current connection; broken connections are rebuilt
// on the next attempt, not patched in place.
func (p *Publisher) teardown() {
	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.teardown()
}
