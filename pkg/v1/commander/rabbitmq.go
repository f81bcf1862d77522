package commander

import (
	"context"
	"fmt"
)

//go:generate mockery --name RabbitMQPublisher --filename rabbitmqpublisher.go

// RabbitMQPublisher publishes RabbitMQ messages.
type RabbitMQPublisher interface {
	Publish(ctx context.Context, routingKey string, message []byte) error
}

// RabbitMQSender sends messages to worker queue bound with routing key.
type RabbitMQSender struct {
	publisher  RabbitMQPublisher
	routingKey string
}

// NewRabbitMQSender returns new RabbitMQSender publishing messages with provided routing key.
func NewRabbitMQSender(publisher RabbitMQPublisher, routingKey string) RabbitMQSender {
	return RabbitMQSender{
		publisher:  publisher,
		routingKey: routingKey,
	}
}

// Send publishes message with sender's routing key.
func (s RabbitMQSender) Send(ctx context.Context, message []byte) error {
	if err := s.publisher.Publish(ctx, s.routingKey, message); err != nil {
		return fmt.Errorf("can't publish message to %s: %w", s.routingKey, err)
	}
	return nil
}
