package messaging

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PublishFunc adapta una función al canal de publicación (tests).
type PublishFunc func(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error

func (f PublishFunc) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return f(ctx, exchange, key, mandatory, immediate, msg)
}

// NewTestPublisher construye un Publisher sin conexión real.
func NewTestPublisher(exchange string, f PublishFunc) *Publisher {
	return &Publisher{ch: f, exchange: exchange}
}
