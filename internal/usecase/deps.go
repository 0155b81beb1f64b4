package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/gaapledger/internal/domain"
)

// Deps are the collaborators shared by the book use cases. Nil Recorder,
// Publisher and Clock fall back to no-ops and the system clock.
type Deps struct {
	Store     BookStore
	IDGen     IDGenerator
	Recorder  Recorder
	Publisher EventPublisher
	Clock     Clock
	Logger    zerolog.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Recorder == nil {
		d.Recorder = nopRecorder{}
	}
	if d.Publisher == nil {
		d.Publisher = nopPublisher{}
	}
	if d.Clock == nil {
		d.Clock = systemClock{}
	}
	return d
}

// publish delivers an event; delivery failures are logged, never returned.
func (d Deps) publish(ctx context.Context, bookID, eventType string, payload any) {
	event := &domain.Event{
		ID:        d.IDGen.Generate(),
		BookID:    bookID,
		EventType: eventType,
		Payload:   payload,
		CreatedAt: d.Clock.Now().UTC(),
	}
	if err := d.Publisher.Publish(ctx, event); err != nil {
		d.Logger.Warn().Err(err).
			Str("book_id", bookID).
			Str("event_type", eventType).
			Msg("failed to publish event")
	}
}

// rejectionReason names the sentinel behind a rejected entry for metrics.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnbalancedEntry):
		return "unbalanced"
	case errors.Is(err, domain.ErrInsufficientPostings):
		return "insufficient_postings"
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidPostingAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrInvalidPostingSide):
		return "invalid_side"
	case errors.Is(err, domain.ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, domain.ErrAccountNotFound), errors.Is(err, domain.ErrAccountRequired):
		return "unknown_account"
	default:
		return "other"
	}
}

type nopRecorder struct{}

func (nopRecorder) BookCreated()                          {}
func (nopRecorder) AccountCreated(domain.AccountType)     {}
func (nopRecorder) EntryRecorded(int)                     {}
func (nopRecorder) EntryRejected(string)                  {}
func (nopRecorder) ReportGenerated(string, time.Duration) {}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, *domain.Event) error { return nil }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
