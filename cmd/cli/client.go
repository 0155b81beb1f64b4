package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/iho/gaapledger/internal/adapter/http/middleware"
	"github.com/iho/gaapledger/internal/infrastructure/idgen"
)

const maxRetries = 3

// statusError is a non-2xx API response.
type statusError struct {
	Status int
	Body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("request failed (status %d): %s", e.Status, strings.TrimSpace(e.Body))
}

// apiClient talks to the ledger API, retrying network errors and 5xx
// responses with exponential backoff. Every attempt of one mutating call
// carries the same Idempotency-Key, so a retry after a lost reply is
// replayed by the server instead of applied twice.
type apiClient struct {
	baseURL string
	http    *http.Client
	backoff func() backoff.BackOff
	keys    interface{ Generate() string }
}

func newAPIClient(baseURL string, timeout time.Duration) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxElapsedTime = 5 * time.Second
			return backoff.WithMaxRetries(b, maxRetries)
		},
		keys: idgen.NewULIDGenerator(),
	}
}

// do sends the request and decodes a successful JSON response into out.
// A 4xx response is returned at once as a *statusError.
func (c *apiClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var idempotencyKey string
	if method != http.MethodGet {
		idempotencyKey = c.keys.Generate()
	}

	var respBody []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if idempotencyKey != "" {
			req.Header.Set(middleware.IdempotencyKeyHeader, idempotencyKey)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		switch {
		case resp.StatusCode >= http.StatusInternalServerError:
			return &statusError{Status: resp.StatusCode, Body: string(respBody)}
		case resp.StatusCode >= http.StatusBadRequest:
			return backoff.Permanent(&statusError{Status: resp.StatusCode, Body: string(respBody)})
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(c.backoff(), ctx)); err != nil {
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			return permanent.Err
		}
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
