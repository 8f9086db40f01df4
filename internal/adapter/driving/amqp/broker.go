// Package amqphandler serves the relay as an RPC endpoint on a RabbitMQ
// queue. Requests arrive as JSON deliveries; each reply is published to the
// delivery's ReplyTo queue with the same CorrelationId.
package amqphandler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultQueue is the request queue consumed when none is configured.
const DefaultQueue = "professionalaize.process"

// DefaultDialAttempts is how many times Dial tries before giving up.
const DefaultDialAttempts = 10

// Broker owns one AMQP connection and the channel the consumer runs on.
type Broker struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects to RabbitMQ, retrying with a linear backoff of one second
// per failed attempt.
func Dial(ctx context.Context, url string, attempts int, logger *slog.Logger) (*Broker, error) {
	if attempts < 1 {
		attempts = 1
	}

	var (
		conn *amqp.Connection
		err  error
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		logger.Warn("rabbitmq connection failed", "attempt", attempt, "error", err)
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("rabbitmq connect after %d attempts: %w", attempts, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	return &Broker{conn: conn, ch: ch}, nil
}

// Channel returns the broker's channel.
func (b *Broker) Channel() *amqp.Channel {
	return b.ch
}

// Close shuts down channel and connection.
func (b *Broker) Close() {
	if b.ch != nil {
		_ = b.ch.Close()
	}
	if b.conn != nil {
		_ = b.conn.Close()
	}
}
