package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// NewJSONMessage marshals payload into a message with a fresh UUID and the
// trace context of ctx in its metadata.
func NewJSONMessage(ctx context.Context, payload any) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("events: marshal %T: %w", payload, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	injectTrace(ctx, msg)
	return msg, nil
}

func injectTrace(ctx context.Context, msgs ...*message.Message) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for _, msg := range msgs {
		for k, v := range carrier {
			msg.Metadata.Set(k, v)
		}
	}
}

// Publish sends messages to topic outside of any transaction.
func (q *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	injectTrace(ctx, msgs...)
	if err := q.publisher.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// NewTxPublisher returns a Publisher bound to tx, so the event rows commit
// or roll back together with the item row. Event tables already exist once
// the bus is up, so schema initialization is skipped.
func (q *EventBus) NewTxPublisher(tx *sql.Tx) (message.Publisher, error) {
	pub, err := watermillsql.NewPublisher(tx, publisherConfig(false), newWatermillLogger(q.log))
	if err != nil {
		return nil, fmt.Errorf("events: new tx publisher: %w", err)
	}
	if q.useForwarder {
		return wrapForwarder(pub), nil
	}
	return pub, nil
}

// PublishTx publishes payload as JSON to topic inside tx. extra is copied
// into the message metadata.
func (q *EventBus) PublishTx(ctx context.Context, tx *sql.Tx, topic string, payload any, extra map[string]string) error {
	msg, err := NewJSONMessage(ctx, payload)
	if err != nil {
		return err
	}
	for k, v := range extra {
		msg.Metadata.Set(k, v)
	}
	pub, err := q.NewTxPublisher(tx)
	if err != nil {
		return err
	}
	if err := pub.Publish(topic, msg); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s in tx: %w", topic, err)
	}
	return nil
}
