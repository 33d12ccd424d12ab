package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/victoragudo/hotel-booking-aggregator/internal/domain/booking"
	"github.com/victoragudo/hotel-booking-aggregator/pkg/constants"
)

const confirmTimeout = 5 * time.Second

type Message struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Channel is the subset of *amqp.Channel the publisher uses.
type Channel interface {
	PublishWithDeferredConfirmWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) (*amqp.DeferredConfirmation, error)
	Close() error
}

type RabbitMQPublisher struct {
	conn         *amqp.Connection
	ch           Channel
	primaryQueue string
	logger       *slog.Logger
}

// NewMQPublisher declares the durable queue and enables publisher confirms on the channel.
func NewMQPublisher(amqpConnection *amqp.Connection, amqpChannel *amqp.Channel, queueName string, logger *slog.Logger) (*RabbitMQPublisher, error) {
	if _, err := amqpChannel.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		_ = amqpChannel.Close()
		_ = amqpConnection.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	if err := amqpChannel.Confirm(false); err != nil {
		_ = amqpChannel.Close()
		_ = amqpConnection.Close()
		return nil, fmt.Errorf("failed to enable publish confirms: %w", err)
	}

	return newPublisher(amqpConnection, amqpChannel, queueName, logger), nil
}

func newPublisher(conn *amqp.Connection, ch Channel, queueName string, logger *slog.Logger) *RabbitMQPublisher {
	return &RabbitMQPublisher{
		conn:         conn,
		ch:           ch,
		primaryQueue: queueName,
		logger:       logger,
	}
}

func (p *RabbitMQPublisher) PublishBookingCreated(ctx context.Context, b *booking.Booking) error {
	return p.Publish(ctx, Message{
		ID:   b.ID,
		Type: constants.MessageTypeBookingCreated,
		Data: b,
	})
}

// Publish sends message to the primary queue and waits for the broker confirm.
func (p *RabbitMQPublisher) Publish(ctx context.Context, message Message) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message %s: %w", message.ID, err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    message.ID,
		Type:         message.Type,
		Timestamp:    time.Now(),
	}

	confirmation, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, "", p.primaryQueue, false, false, pub)
	if err != nil {
		return fmt.Errorf("failed to publish message %s: %w", message.ID, err)
	}
	if confirmation == nil {
		return nil
	}

	confirmCtx, cancel := context.WithTimeout(ctx, confirmTimeout)
	defer cancel()

	acked, err := confirmation.WaitContext(confirmCtx)
	if err != nil {
		return fmt.Errorf("failed waiting for confirm of message %s: %w", message.ID, err)
	}
	if !acked {
		return fmt.Errorf("message %s was nacked by the broker", message.ID)
	}

	p.logger.Debug("Message published", "message_id", message.ID, "type", message.Type, "queue", p.primaryQueue)
	return nil
}

func (p *RabbitMQPublisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
