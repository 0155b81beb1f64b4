package eventpublisher

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"github.com/iho/gaapledger/internal/domain"
)

// ErrQueueFull is returned by Publish when the delivery buffer is full.
var ErrQueueFull = errors.New("event queue is full")

// Sink delivers events to an external system.
type Sink interface {
	Publish(ctx context.Context, event *domain.Event) error
}

// EventPublisher queues events and hands them to a Sink from a single
// worker, so a slow sink never holds a book's lock.
type EventPublisher struct {
	sink   Sink
	logger zerolog.Logger
	queue  chan *domain.Event
}

// Config for EventPublisher.
type Config struct {
	Sink       Sink
	Logger     zerolog.Logger
	BufferSize int // Number of events buffered before Publish fails
}

// NewEventPublisher creates a new EventPublisher.
func NewEventPublisher(cfg Config) *EventPublisher {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1024
	}
	if cfg.Sink == nil {
		cfg.Sink = NewLogPublisher(cfg.Logger)
	}

	return &EventPublisher{
		sink:   cfg.Sink,
		logger: cfg.Logger,
		queue:  make(chan *domain.Event, cfg.BufferSize),
	}
}

// Publish enqueues event without blocking.
func (ep *EventPublisher) Publish(ctx context.Context, event *domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case ep.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start runs the delivery worker until ctx is cancelled. Events still
// queued at cancellation are delivered before it returns.
func (ep *EventPublisher) Start(ctx context.Context) error {
	ep.logger.Info().Int("buffer_size", cap(ep.queue)).Msg("event publisher started")

	for {
		select {
		case <-ctx.Done():
			ep.drain(context.WithoutCancel(ctx))
			ep.logger.Info().Msg("event publisher shutting down")
			return ctx.Err()
		case event := <-ep.queue:
			ep.deliver(ctx, event)
		}
	}
}

func (ep *EventPublisher) drain(ctx context.Context) {
	for {
		select {
		case event := <-ep.queue:
			ep.deliver(ctx, event)
		default:
			return
		}
	}
}

func (ep *EventPublisher) deliver(ctx context.Context, event *domain.Event) {
	if err := ep.sink.Publish(ctx, event); err != nil {
		ep.logger.Error().Err(err).
			Str("event_id", event.ID).
			Str("event_type", event.EventType).
			Str("book_id", event.BookID).
			Msg("failed to publish event")
	}
}

// LogPublisher is a Sink that writes events to the log.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event with its JSON payload.
func (p *LogPublisher) Publish(ctx context.Context, event *domain.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	p.logger.Info().
		Str("event_id", event.ID).
		Str("event_type", event.EventType).
		Str("book_id", event.BookID).
		Time("created_at", event.CreatedAt).
		RawJSON("payload", payload).
		Msg("event published")

	return nil
}
