package amqphandler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ericfisherdev/professionalaize/internal/application"
	"github.com/ericfisherdev/professionalaize/internal/domain/model"
)

const publishTimeout = 5 * time.Second

// ErrDeliveriesClosed is returned by Run when the broker stops delivering.
var ErrDeliveriesClosed = errors.New("amqp delivery channel closed")

// Channel is the subset of *amqp.Channel the consumer needs.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Dispatcher is the relay entry point the consumer feeds.
type Dispatcher interface {
	Dispatch(ctx context.Context, req model.RelayRequest, reply application.ReplyFunc) bool
}

// Consumer reads relay requests from a durable queue.
type Consumer struct {
	ch     Channel
	queue  string
	relay  Dispatcher
	logger *slog.Logger
}

// NewConsumer creates a Consumer. An empty queue name uses DefaultQueue.
func NewConsumer(ch Channel, queue string, relay Dispatcher, logger *slog.Logger) *Consumer {
	if queue == "" {
		queue = DefaultQueue
	}
	return &Consumer{
		ch:     ch,
		queue:  queue,
		relay:  relay,
		logger: logger.With("queue", queue),
	}
}

// Run declares the queue and consumes it until ctx is cancelled or the
// broker closes the delivery channel.
func (c *Consumer) Run(ctx context.Context) error {
	if _, err := c.ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", c.queue, err)
	}

	// Prefetch 1: the next delivery arrives once the current one is acked.
	if err := c.ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := c.ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}

	c.logger.Info("amqp consumer started")
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("amqp consumer stopped")
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return ErrDeliveriesClosed
			}
			c.handle(ctx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	logger := c.logger.With("correlation_id", d.CorrelationId)

	if d.ReplyTo == "" {
		logger.Warn("dropping delivery without reply_to")
		c.ack(logger, d)
		return
	}

	var req model.RelayRequest
	if err := json.Unmarshal(d.Body, &req); err != nil {
		logger.Warn("dropping undecodable delivery", "error", err)
		c.ack(logger, d)
		return
	}

	// The request may outlive the consumer; its reply is still published.
	if !c.relay.Dispatch(context.WithoutCancel(ctx), req, c.reply(ctx, logger, d)) {
		logger.Debug("dropping delivery with unsupported action", "action", req.Action)
		c.ack(logger, d)
	}
}

// reply publishes resp to the delivery's reply queue, then settles the
// delivery: ack on success, nack without requeue when publishing failed.
func (c *Consumer) reply(ctx context.Context, logger *slog.Logger, d amqp.Delivery) application.ReplyFunc {
	return func(resp model.RelayResponse) error {
		body, err := json.Marshal(resp)
		if err != nil {
			_ = d.Nack(false, false)
			return fmt.Errorf("marshal reply: %w", err)
		}

		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()

		err = c.ch.PublishWithContext(pubCtx, "", d.ReplyTo, false, false, amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: d.CorrelationId,
			Timestamp:     time.Now(),
			Body:          body,
		})
		if err != nil {
			if nackErr := d.Nack(false, false); nackErr != nil {
				logger.Error("failed to nack delivery", "error", nackErr)
			}
			return fmt.Errorf("publish reply to %s: %w", d.ReplyTo, err)
		}

		c.ack(logger, d)
		return nil
	}
}

func (c *Consumer) ack(logger *slog.Logger, d amqp.Delivery) {
	if err := d.Ack(false); err != nil {
		logger.Error("failed to ack delivery", "error", err)
	}
}
