// Package rabbitmq публикует доменные события в topic-exchange.
// Ошибки публикации возвращаются вызывающему, который решает, игнорировать ли их.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	RoutingBannerDeactivated = "banner.deactivated"
	RoutingGalleryDeleted    = "gallery.deleted"
)

type Publisher struct {
	log      *slog.Logger
	exchange string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(log *slog.Logger, url, exchange string) (*Publisher, error) {
	const op = "broker.rabbitmq.NewPublisher"

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// durable, чтобы события переживали рестарт брокера
	if err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // autoDelete
		false,    // internal
		false,    // noWait
		nil,      // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Publisher{
		log:      log,
		exchange: exchange,
		conn:     conn,
		ch:       ch,
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	const op = "broker.rabbitmq.Publish"

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.log.Debug("event published", slog.String("routing_key", routingKey))

	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}

	return p.conn.Close()
}

// NoopPublisher используется, когда брокер не настроен
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, interface{}) error {
	return nil
}

// BannerDeactivated событие достижения лимита баннером
type BannerDeactivated struct {
	BannerID string    `json:"banner_id"`
	Counter  string    `json:"counter"`
	Value    int64     `json:"value"`
	At       time.Time `json:"at"`
}

// GalleryDeleted событие удаления галереи
type GalleryDeleted struct {
	GalleryID string    `json:"gallery_id"`
	Bucket    string    `json:"bucket"`
	Images    int       `json:"images"`
	At        time.Time `json:"at"`
}
