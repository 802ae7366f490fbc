// This file publishes domain events to RabbitMQ.  Errors are logged
// and returned so callers can ignore publish failures without
// interrupting the main request flow; a committed booking is never
// rolled back because the broker was unreachable.

package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/cinema-session-booking/internal/queue"
)

// PublishReservationConfirmed publishes a ReservationConfirmedEvent to
// the reservation.confirmed queue.
func PublishReservationConfirmed(ctx context.Context, event q.ReservationConfirmedEvent) error {
	return publishJSON(ctx, q.ReservationConfirmedQueue, event)
}

// PublishReservationTransferred publishes a
// ReservationTransferredEvent to the reservation.transferred queue.
func PublishReservationTransferred(ctx context.Context, event q.ReservationTransferredEvent) error {
	return publishJSON(ctx, q.ReservationTransferredQueue, event)
}

// publishJSON marshals the event and publishes it to the named durable
// queue on the default exchange.  Messages are marked persistent so
// they survive broker restarts.
func publishJSON(ctx context.Context, queueName string, event any) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent) and durable.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
