// Package events provides the PostgreSQL-backed pub/sub EventBus the item
// context uses to announce saved and updated items, built on Watermill.
//
// Delivery semantics:
//   - All workers sharing Options.ConsumerGroup are load-balanced: each message
//     is processed by exactly one of them.
//   - Handlers must be idempotent. On failure a message is retried with
//     exponential backoff, then Nacked and redelivered.
//
// Trace context is injected into message metadata on publish and restored on
// subscribe, so a form post and the cache refresh it triggers share one trace.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/itemvalidation/pkg/config"
	"github.com/ghuser/itemvalidation/pkg/logger"
)

const (
	defaultMaxRetries     = 3
	defaultRetryBaseDelay = time.Second
	shutdownTimeout       = 30 * time.Second
	forwarderTopic        = "_forwarder_queue" // internal outbox topic for the Forwarder daemon
	errChannelSize        = 100
)

// Options configures an EventBus.
type Options struct {
	DatabaseURL    string
	ConsumerGroup  string
	MaxRetries     int           // handler attempts per message; 0 means 3
	RetryBaseDelay time.Duration // first backoff delay, doubled per attempt; 0 means 1s
}

// OptionsFromConfig uses the item database for the event tables and one
// consumer group per service name.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		DatabaseURL:   cfg.DefinitionDatabaseURL,
		ConsumerGroup: cfg.ServiceName + "-consumer",
	}
}

func (o Options) withDefaults() Options {
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetries
	}
	if o.RetryBaseDelay <= 0 {
		o.RetryBaseDelay = defaultRetryBaseDelay
	}
	return o
}

// EventBus is a pub/sub bus over Watermill's SQL transport. Subscribers use
// FOR UPDATE SKIP LOCKED, so several workers can share one topic safely.
type EventBus struct {
	publisher    message.Publisher // direct SQL publisher or forwarder-decorated
	subscriber   *watermillsql.Subscriber
	fwd          *forwarder.Forwarder // set by StartForwarder
	db           *sql.DB
	log          logger.Logger
	opts         Options
	wg           sync.WaitGroup
	useForwarder bool
}

// NewEventBus opens opts.DatabaseURL and creates a publisher and a subscriber.
// Schema tables are created on first use. The worker uses this constructor.
func NewEventBus(opts Options, log logger.Logger) (*EventBus, error) {
	return newEventBus(opts, log, false)
}

// NewEventBusWithForwarder creates an EventBus whose publishes go to a
// durable forwarder queue first; StartForwarder relays them to their topics.
// The API uses this so an event written in the item transaction is never lost
// once the transaction commits.
func NewEventBusWithForwarder(opts Options, log logger.Logger) (*EventBus, error) {
	return newEventBus(opts, log, true)
}

func newEventBus(opts Options, log logger.Logger, useForwarder bool) (*EventBus, error) {
	if opts.DatabaseURL == "" {
		return nil, errors.New("events: database url is required")
	}
	opts = opts.withDefaults()

	db, err := sql.Open("pgx", opts.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("events: open db: %w", err)
	}

	wlog := newWatermillLogger(log)

	pub, err := watermillsql.NewPublisher(db, publisherConfig(true), wlog)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}

	var publisher message.Publisher = pub
	if useForwarder {
		publisher = wrapForwarder(pub)
	}

	sub, err := newSQLSubscriber(db, opts.ConsumerGroup, wlog)
	if err != nil {
		_ = pub.Close()
		_ = db.Close()
		return nil, err
	}

	return &EventBus{
		publisher:    publisher,
		subscriber:   sub,
		db:           db,
		log:          log,
		opts:         opts,
		useForwarder: useForwarder,
	}, nil
}

func publisherConfig(initSchema bool) watermillsql.PublisherConfig {
	return watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: initSchema,
	}
}

func newSQLSubscriber(db *sql.DB, group string, wlog *watermillLogger) (*watermillsql.Subscriber, error) {
	sub, err := watermillsql.NewSubscriber(db, watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    group,
	}, wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new subscriber %s: %w", group, err)
	}
	return sub, nil
}

func wrapForwarder(pub message.Publisher) message.Publisher {
	return forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: forwarderTopic})
}

// StartForwarder runs the daemon that drains the forwarder queue into the
// target topics. It may be called once, on a bus built with
// NewEventBusWithForwarder, and returns when the daemon is running.
func (q *EventBus) StartForwarder(ctx context.Context) error {
	if !q.useForwarder {
		return errors.New("events: StartForwarder called on non-forwarder EventBus")
	}
	if q.fwd != nil {
		return errors.New("events: forwarder already started")
	}

	wlog := newWatermillLogger(q.log)

	fwdSub, err := newSQLSubscriber(q.db, "forwarder-consumer", wlog)
	if err != nil {
		return err
	}
	targetPub, err := watermillsql.NewPublisher(q.db, publisherConfig(true), wlog)
	if err != nil {
		_ = fwdSub.Close()
		return fmt.Errorf("events: new forwarder target publisher: %w", err)
	}

	fwd, err := forwarder.NewForwarder(fwdSub, targetPub, wlog, forwarder.Config{
		ForwarderTopic: forwarderTopic,
	})
	if err != nil {
		_ = targetPub.Close()
		_ = fwdSub.Close()
		return fmt.Errorf("events: create forwarder: %w", err)
	}
	q.fwd = fwd

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.log.InfoContext(ctx, "events: forwarder started")
		if err := fwd.Run(ctx); err != nil {
			q.log.ErrorContext(ctx, "events: forwarder stopped with error", "error", err)
			return
		}
		q.log.InfoContext(ctx, "events: forwarder stopped")
	}()

	select {
	case <-fwd.Running():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: context cancelled waiting for forwarder: %w", ctx.Err())
	}
}

// Ping checks the EventBus database connection.
func (q *EventBus) Ping(ctx context.Context) error {
	if err := q.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops the subscriber and the forwarder, waits up to 30s for
// in-flight handlers, then closes the publisher and the database.
func (q *EventBus) Close() error {
	if err := q.subscriber.Close(); err != nil {
		return fmt.Errorf("events: close subscriber: %w", err)
	}
	if q.fwd != nil {
		if err := q.fwd.Close(); err != nil {
			return fmt.Errorf("events: close forwarder: %w", err)
		}
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		q.log.Error("events: timed out waiting for in-flight handlers to complete")
	}

	if err := q.publisher.Close(); err != nil {
		return fmt.Errorf("events: close publisher: %w", err)
	}
	return q.db.Close()
}
