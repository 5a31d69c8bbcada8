package amqpnotify

import (
	"context"
	"encoding/json"
	"time"

	"table-reservation/internal/domain/reservation"
	"table-reservation/internal/pkg/clock"
	"table-reservation/internal/pkg/errs"
	"table-reservation/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

type EventType string

const EventReservationCreated EventType = "ReservationCreated"

const publishTimeout = 5 * time.Second

// Envelope is the message body consumers decode before looking at Payload.
type Envelope struct {
	Type       EventType       `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

type ReservationCreatedPayload struct {
	ReservationID string `json:"reservationId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	PartySize     int    `json:"partySize"`
	Status        string `json:"status"`
}

// Channel is the part of *amqp.Channel the publisher uses.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher sends reservation events to a durable queue on the default exchange.
type Publisher struct {
	ch    Channel
	queue string
	clock clock.Clock
}

func NewPublisher(ch Channel, queue string, clk clock.Clock) *Publisher {
	return &Publisher{ch: ch, queue: queue, clock: clk}
}

var _ shared.Notifier = (*Publisher)(nil)

func (p *Publisher) ReservationCreated(ctx context.Context, res *reservation.Reservation) error {
	payload, err := json.Marshal(ReservationCreatedPayload{
		ReservationID: res.ID().String(),
		CustomerName:  res.CustomerName(),
		CustomerEmail: res.CustomerEmail(),
		Date:          res.Date().String(),
		Time:          res.Time().String(),
		PartySize:     res.PartySize(),
		Status:        res.Status().String(),
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode reservation event payload")
	}

	now := p.clock.Now().UTC()
	body, err := json.Marshal(Envelope{
		Type:       EventReservationCreated,
		OccurredAt: now,
		Payload:    payload,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode reservation event")
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    res.ID().String(),
		Timestamp:    now,
		Type:         string(EventReservationCreated),
		Body:         body,
	})
	if err != nil {
		return errs.Wrap(err, "failed to publish reservation event")
	}
	return nil
}

// Dial connects to the broker and declares queue as durable. The caller closes the
// returned connection.
func Dial(url, queue string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to connect to message broker")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, errs.Wrap(err, "failed to open broker channel")
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, nil, errs.Wrap(err, "failed to declare queue "+queue)
	}
	return conn, ch, nil
}
