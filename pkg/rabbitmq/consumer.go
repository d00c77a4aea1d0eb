package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/dmehra2102/order-sync/pkg/tracing"
)

// Handler processes one delivered message body. Returning an error
// rejects the message without requeue.
type Handler func(ctx context.Context, body []byte) error

// Consumer reads one queue at a time with a prefetch of 1, acknowledging
// each message only after the handler returns. Lost connections are
// rebuilt and the subscription re-established; already-acknowledged
// messages are not replayed.
type Consumer struct {
	log      *slog.Logger
	settings Settings
	conn     *amqp.Connection
	channel  *amqp.Channel
}

func NewConsumer(log *slog.Logger, settings Settings) *Consumer {
	return &Consumer{log: log, settings: settings}
}

// Consume runs until ctx is cancelled. Broker failures never escape:
// they trigger a reconnect after the configured delay.
func (c *Consumer) Consume(ctx context.Context, queue string, handler Handler) error {
	defer c.teardown()

	for {
		if ctx.Err() != nil {
			c.log.Info("consumer stopping", "queue", queue)
			return nil
		}

		deliveries, err := c.subscribe(queue)
		if err != nil {
			c.log.Warn("subscribe failed, retrying", "queue", queue, "err", err)
			c.teardown()
			select {
			case <-ctx.Done():
				c.log.Info("consumer stopping", "queue", queue)
				return nil
			case <-time.After(c.settings.ConnectionRetryDelay):
			}
			continue
		}

		c.log.Info("consumer started", "queue", queue)
		c.drain(ctx, queue, deliveries, handler)

		if ctx.Err() == nil {
			c.log.Warn("connection lost, reconnecting", "queue", queue)
			c.teardown()
		}
	}
}

func (c *Consumer) subscribe(queue string) (<-chan amqp.Delivery, error) {
	if err := c.ensureChannel(); err != nil {
		return nil, err
	}

	if _, err := c.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	// One unacknowledged message at a time keeps ack/reject decisions
	// unambiguous and bounds in-flight work per queue.
	if err := c.channel.Qos(1, 0, false); err != nil {
		return nil, fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := c.channel.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("start consume: %w", err)
	}
	return deliveries, nil
}

// drain processes deliveries until cancellation or until the broker
// closes the delivery channel. An in-flight handler call is allowed to
// finish; cancellation only stops scheduling the next message.
func (c *Consumer) drain(ctx context.Context, queue string, deliveries <-chan amqp.Delivery, handler Handler) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			c.handleDelivery(ctx, queue, d, handler)
		}
	}
}

func (c *Consumer) handleDelivery(ctx context.Context, queue string, d amqp.Delivery, handler Handler) {
	if len(d.Body) == 0 {
		c.log.Warn("empty message rejected", "queue", queue, "message_id", d.MessageId)
		_ = d.Nack(false, false)
		return
	}

	msgCtx := tracing.ExtractAMQPHeaders(ctx, d.Headers)

	if err := handler(msgCtx, d.Body); err != nil {
		// Rejected without requeue to avoid poison-message loops;
		// bounded retry lives one layer up in the outbox relay.
		c.log.Error("handler failed, message rejected",
			"queue", queue, "message_id", d.MessageId, "err", err)
		_ = d.Nack(false, false)
		return
	}

	_ = d.Ack(false)
	c.log.Debug("message processed", "queue", queue, "message_id", d.MessageId)
}

func (c *Consumer) ensureChannel() error {
	if c.conn != nil && !c.conn.IsClosed() && c.channel != nil && !c.channel.IsClosed() {
		return nil
	}
	c.teardown()

	conn, err := amqp.Dial(c.settings.URL)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	c.conn = conn
	c.channel = ch
	return nil
}

func (c *Consumer) teardown() {
	if c.channel != nil {
		_ = c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}
