package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
)

// Client wraps one AMQP connection used for the recompute retry queue. The
// exchange, queue and binding are declared durable on connect, so tasks
// survive a broker restart.
type Client struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	queue    string
	logger   *slog.Logger
}

// NewClient connects to the broker and declares the recompute topology.
func NewClient(url, exchange, queue string, logger *slog.Logger) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to amqp broker: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open amqp channel: %w", err)
	}

	if err := channel.ExchangeDeclare(exchange, "direct", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	if _, err := channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}
	if err := channel.QueueBind(queue, queue, exchange, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue %s: %w", queue, err)
	}

	return &Client{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		queue:    queue,
		logger:   logger,
	}, nil
}

var _ portssvc.RecomputePublisher = (*Client)(nil)

// PublishRecompute enqueues a refresh task for the background worker.
func (c *Client) PublishRecompute(ctx context.Context, task portssvc.RecomputeTask) error {
	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal recompute task: %w", err)
	}

	err = c.channel.PublishWithContext(ctx, c.exchange, c.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish recompute task: %w", err)
	}

	c.logger.Debug("Published recompute task",
		slog.String("kind", string(task.Kind)),
		slog.String("user_id", task.UserID),
	)
	return nil
}

// Consume starts delivering queued tasks with manual acknowledgement.
func (c *Client) Consume() (<-chan amqp.Delivery, error) {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start consumer on %s: %w", c.queue, err)
	}
	return deliveries, nil
}

// Close tears down the channel and connection.
func (c *Client) Close() error {
	if err := c.channel.Close(); err != nil {
		c.conn.Close()
		return fmt.Errorf("failed to close amqp channel: %w", err)
	}
	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("failed to close amqp connection: %w", err)
	}
	return nil
}
