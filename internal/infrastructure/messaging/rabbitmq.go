// Package messaging publica los eventos del flujo de pedidos en RabbitMQ.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
)

// Routing keys publicadas en el exchange topic.
const (
	RoutingOrderPlaced   = "order.placed"
	RoutingTicketChanged = "ticket.status_changed"
)

const publishTimeout = 5 * time.Second

var _ ports.EventPublisher = (*Publisher)(nil)

// publishChannel subconjunto de *amqp.Channel que usa el publisher.
type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher implementa ports.EventPublisher sobre un exchange topic durable.
type Publisher struct {
	conn     *amqp.Connection
	ch       publishChannel
	exchange string
	mu       sync.Mutex
}

// Dial conecta, abre un canal y declara el exchange.
func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp exchange %s: %w", exchange, err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// Close cierra canal y conexión.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if ch, ok := p.ch.(*amqp.Channel); ok && ch != nil {
		_ = ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// PublishOrderPlaced publica order.placed.
func (p *Publisher) PublishOrderPlaced(ctx context.Context, evt dto.OrderPlacedEvent) error {
	return p.publish(ctx, RoutingOrderPlaced, evt)
}

// PublishTicketStatus publica ticket.status_changed.
func (p *Publisher) PublishTicketStatus(ctx context.Context, evt dto.TicketStatusEvent) error {
	return p.publish(ctx, RoutingTicketChanged, evt)
}

func (p *Publisher) publish(ctx context.Context, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", key, err)
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publicar %s: %w", key, err)
	}
	return nil
}
