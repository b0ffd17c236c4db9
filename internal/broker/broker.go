// Package broker publishes and consumes e-mail jobs over RabbitMQ.
//
// The API publishes one persistent JSON message per [models.EmailJob] to a
// durable queue on the default exchange; the e-mail worker consumes it with
// manual acknowledgements.
package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-photo-share/internal/config"
	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

//go:generate mockgen -source=broker.go -destination=../mock/broker_mock.go -package=mock

var (
	ErrBrokerClosed   = errors.New("broker connection is closed")
	ErrDeliveriesDone = errors.New("deliveries channel closed")
)

// consumerPrefetch bounds the number of unacknowledged jobs per consumer.
const consumerPrefetch = 10

// Publisher puts e-mail jobs on the queue.
type Publisher interface {
	PublishEmail(ctx context.Context, job models.EmailJob) error
}

// EmailHandler processes one consumed job. A returned error rejects the
// message without requeue.
type EmailHandler func(ctx context.Context, job models.EmailJob) error

// Broker holds one connection and a publishing channel guarded by a mutex.
// A connection closed by the server or the network is redialled on next use.
type Broker struct {
	queue string

	dial func() (connection, error)

	mu     sync.Mutex
	conn   connection
	ch     channel
	closed bool

	logger *logger.Logger
}

// Dial connects to cfg.URL, opens the publishing channel and declares the
// e-mail queue.
func Dial(cfg config.Broker, logger *logger.Logger) (*Broker, error) {
	b := newBroker(cfg.EmailQueue, dialer(cfg.URL), logger)

	if err := b.init(); err != nil {
		_ = b.Close()
		return nil, err
	}

	return b, nil
}

func newBroker(queue string, dial func() (connection, error), logger *logger.Logger) *Broker {
	return &Broker{
		queue:  queue,
		dial:   dial,
		logger: logger,
	}
}

func (b *Broker) init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := b.publishChannel()
	return err
}

// connection returns the live connection, dialling a new one when there is
// none or the previous one was closed. Must be called with b.mu held.
func (b *Broker) connection() (connection, error) {
	if b.closed {
		return nil, ErrBrokerClosed
	}
	if b.conn != nil && !b.conn.IsClosed() {
		return b.conn, nil
	}

	if b.conn != nil {
		b.logger.Warn().Str("func", "*Broker.connection").Msg("broker connection lost, redialling")
	}
	// channels die with their connection
	b.ch = nil
	b.conn = nil

	conn, err := b.dial()
	if err != nil {
		return nil, fmt.Errorf("error dialing broker: %w", err)
	}

	b.conn = conn
	return conn, nil
}

// publishChannel returns the publishing channel, reopening it when a previous
// publish or a lost connection closed it. Must be called with b.mu held.
func (b *Broker) publishChannel() (channel, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	if b.ch != nil {
		return b.ch, nil
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("error opening channel: %w", err)
	}
	if err = declareQueue(ch, b.queue); err != nil {
		_ = ch.Close()
		return nil, err
	}

	b.ch = ch
	return ch, nil
}

func declareQueue(ch channel, queue string) error {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("error declaring queue %s: %w", queue, err)
	}
	return nil
}

// PublishEmail implements [Publisher]. Messages are persistent JSON.
func (b *Broker) PublishEmail(ctx context.Context, job models.EmailJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("error encoding email job: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         string(job.Kind),
		Body:         body,
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	ch, err := b.publishChannel()
	if err != nil {
		return err
	}

	if err = ch.PublishWithContext(ctx, "", b.queue, false, false, msg); err != nil {
		// a failed publish closes the channel on the server side
		_ = ch.Close()
		b.ch = nil
		return fmt.Errorf("error publishing email job: %w", err)
	}

	return nil
}

// ConsumeEmails delivers queued jobs to handle until ctx is cancelled or the
// deliveries channel closes. Each job is acknowledged after handle succeeds.
// A lost connection is redialled when ConsumeEmails is called again.
func (b *Broker) ConsumeEmails(ctx context.Context, handle EmailHandler) error {
	b.mu.Lock()
	conn, err := b.connection()
	b.mu.Unlock()
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("error opening channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err = ch.Qos(consumerPrefetch, 0, false); err != nil {
		return fmt.Errorf("error setting qos: %w", err)
	}
	if err = declareQueue(ch, b.queue); err != nil {
		return err
	}

	deliveries, err := ch.Consume(b.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("error consuming queue %s: %w", b.queue, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return ErrDeliveriesDone
			}
			b.handleDelivery(ctx, d, handle)
		}
	}
}

func (b *Broker) handleDelivery(ctx context.Context, d amqp.Delivery, handle EmailHandler) {
	var job models.EmailJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		b.logger.Err(err).Str("func", "*Broker.handleDelivery").Msg("malformed email job rejected")
		_ = d.Nack(false, false)
		return
	}

	if err := handle(ctx, job); err != nil {
		b.logger.Err(err).Str("func", "*Broker.handleDelivery").Str("kind", string(job.Kind)).Msg("email job failed")
		_ = d.Nack(false, false)
		return
	}

	_ = d.Ack(false)
}

// Close closes the publishing channel and the connection. A closed broker
// does not redial.
func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true

	var errs []error
	if b.ch != nil {
		errs = append(errs, b.ch.Close())
		b.ch = nil
	}
	if b.conn != nil && !b.conn.IsClosed() {
		errs = append(errs, b.conn.Close())
	}
	b.conn = nil

	return errors.Join(errs...)
}
