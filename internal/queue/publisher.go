package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/home-inventory/internal/config"
)

// Publisher hands committed change events to the broker.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// NewPublisher returns an AMQP publisher when events are enabled and a
// no-op publisher otherwise.
func NewPublisher(cfg config.EventsConfig) Publisher {
	if !cfg.Enabled {
		return NopPublisher{}
	}
	return &AMQPPublisher{URL: cfg.URL, Queue: cfg.Queue}
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// AMQPPublisher publishes each event to a durable queue.  It dials the
// broker per call and keeps no connection between requests.
type AMQPPublisher struct {
	URL   string
	Queue string
}

// Publish sends ev as a persistent JSON message through the default
// exchange, routed by queue name.  Errors are logged and returned so the
// caller can choose to ignore them.
func (p *AMQPPublisher) Publish(ctx context.Context, ev Event) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		slog.Warn("rabbitmq: dial failed", "error", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		slog.Warn("rabbitmq: channel open failed", "error", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := declareQueue(ch, p.Queue); err != nil {
		slog.Warn("rabbitmq: queue declare failed", "queue", p.Queue, "error", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		MessageId:    ev.ID,
		Timestamp:    time.Now().UTC(),
		Type:         ev.Entity + "." + ev.Action,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		p.Queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		slog.Warn("rabbitmq: publish failed", "event", ev.ID, "error", err)
		return err
	}
	return nil
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,  // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
}

// Fanout hands each event to every publisher in turn and joins their
// errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, ev Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
