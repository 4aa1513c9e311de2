package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// RabbitPublisher publishes completion events to a durable RabbitMQ queue.
type RabbitPublisher struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	queueName string
	logger    *zap.Logger

	// amqp channels are not safe for concurrent publishing.
	mu sync.Mutex
}

// NewRabbitPublisher dials url, opens a channel and declares queueName.
func NewRabbitPublisher(url, queueName string, logger *zap.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	logger.Info("Connected to RabbitMQ", zap.String("queue", queueName))
	return &RabbitPublisher{conn: conn, channel: ch, queueName: queueName, logger: logger}, nil
}

// PublishCompletion sends event as a persistent JSON message.
func (p *RabbitPublisher) PublishCompletion(ctx context.Context, event CompletionEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode completion event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.Publish(
		"",          // exchange
		p.queueName, // routing key (queue name)
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.CompletedAt,
			Type:         "mission.completed",
		})
	if err != nil {
		return fmt.Errorf("failed to publish completion event to %s: %w", p.queueName, err)
	}
	p.logger.Debug("Published completion event",
		zap.String("missionID", event.MissionID), zap.String("email", event.Email))
	return nil
}

// Close closes the channel and the connection.
func (p *RabbitPublisher) Close() error {
	var lastErr error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			lastErr = err
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
