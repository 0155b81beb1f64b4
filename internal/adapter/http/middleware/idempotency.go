package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/gaapledger/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader marks a response served from the store.
	IdempotencyReplayHeader = "X-Idempotency-Replay"
)

// IdempotencyObserver counts idempotency lookups by outcome.
type IdempotencyObserver interface {
	IdempotencyLookup(outcome string)
}

// IdempotencyMiddleware replays the stored response of a POST that was
// already handled under the same Idempotency-Key and path.
type IdempotencyMiddleware struct {
	store    usecase.IdempotencyStore
	ttl      time.Duration
	logger   zerolog.Logger
	observer IdempotencyObserver
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware. A nil
// observer disables lookup counting.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration, logger zerolog.Logger, observer IdempotencyObserver) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = usecase.IdempotencyKeyTTL
	}
	return &IdempotencyMiddleware{store: store, ttl: ttl, logger: logger, observer: observer}
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only apply to mutating requests
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}
		// The same key may be reused against a different resource.
		scoped := r.URL.Path + ":" + key

		stored, err := m.store.Reserve(r.Context(), scoped, m.ttl)
		switch {
		case errors.Is(err, usecase.ErrRequestInFlight):
			m.observe("in_flight")
			writeJSONError(w, http.StatusConflict, "request with this idempotency key is still in progress")
			return
		case err != nil:
			m.logger.Error().Err(err).Str("key", key).Msg("idempotency check failed")
			writeJSONError(w, http.StatusInternalServerError, "idempotency check failed")
			return
		case stored != nil:
			m.observe("replayed")
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set(IdempotencyReplayHeader, "true")
			w.WriteHeader(stored.Status)
			w.Write(stored.Body)
			return
		}
		m.observe("claimed")

		// Capture response
		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		// A panicking handler never reaches the code below; release the key
		// while the panic unwinds so retries are not stuck behind it.
		finished := false
		defer func() {
			if !finished {
				m.release(r.Context(), scoped, key)
			}
		}()

		next.ServeHTTP(recorder, r)
		finished = true

		// Only successful responses are replayed; anything else frees the
		// key so the client can retry.
		if recorder.statusCode >= 200 && recorder.statusCode < 300 {
			resp := usecase.IdempotentResponse{Status: recorder.statusCode, Body: recorder.body.Bytes()}
			if err := m.store.Complete(r.Context(), scoped, resp, m.ttl); err != nil {
				m.logger.Warn().Err(err).Str("key", key).Msg("failed to store idempotent response")
			}
			return
		}
		m.release(r.Context(), scoped, key)
	})
}

func (m *IdempotencyMiddleware) release(ctx context.Context, scoped, key string) {
	if err := m.store.Release(context.WithoutCancel(ctx), scoped); err != nil {
		m.logger.Warn().Err(err).Str("key", key).Msg("failed to release idempotency key")
	}
}

func (m *IdempotencyMiddleware) observe(outcome string) {
	if m.observer != nil {
		m.observer.IdempotencyLookup(outcome)
	}
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
