package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/gaapledger/internal/domain"
)

// BookStore holds books in memory for the lifetime of the process.
type BookStore interface {
	Create(ctx context.Context, book *domain.Book) error
	Get(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Book, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// Recorder receives bookkeeping metrics.
type Recorder interface {
	BookCreated()
	AccountCreated(accountType domain.AccountType)
	EntryRecorded(postings int)
	EntryRejected(reason string)
	ReportGenerated(report string, duration time.Duration)
}

// EventPublisher delivers book events to interested parties.
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.Event) error
}

// ErrRequestInFlight is returned by IdempotencyStore.Reserve while another
// request holding the same key has not finished.
var ErrRequestInFlight = errors.New("request with this idempotency key is in flight")

// IdempotentResponse is a completed response kept for replay.
type IdempotentResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// IdempotencyStore remembers responses to mutating requests by key.
type IdempotencyStore interface {
	// Reserve claims key for a new request. It returns (nil, nil) when the
	// claim succeeded and the stored response when key already completed.
	Reserve(ctx context.Context, key string, ttl time.Duration) (*IdempotentResponse, error)
	// Complete stores the final response for key.
	Complete(ctx context.Context, key string, response IdempotentResponse, ttl time.Duration) error
	// Release drops the claim so that the request can be retried.
	Release(ctx context.Context, key string) error
}
