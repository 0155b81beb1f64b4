package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gaapledger/internal/adapter/http/middleware"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected short unchanged, got %q", got)
	}

	if got := truncate("longerstring", 6); got != "lon..." {
		t.Fatalf("expected lon..., got %q", got)
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, struct {
		A int `json:"a"`
	}{A: 1}))

	expected := "{\n  \"a\": 1\n}\n"
	if buf.String() != expected {
		t.Fatalf("unexpected json output:\n%s", buf.String())
	}
}

func TestBooksCommands(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/books/":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"01HZX","name":"Household","created_at":"2024-01-01T00:00:00Z"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/books/":
			w.Write([]byte(`{"books":[{"id":"01HZX","name":"Household","created_at":"2024-01-01T00:00:00Z"}],"total":1}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	out, err := execute(t, "--url", srv.URL, "books", "create", "Household")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "01HZX"`)

	out, err = execute(t, "--url", srv.URL, "books", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Household")
	assert.Contains(t, out, "2024-01-01 00:00")
}

func TestReportCommand_PassesDates(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		w.Write([]byte(`{"net_income":"3500","income":"5000","expenses":"1500","lines":[]}`))
	}))
	defer srv.Close()

	out, err := execute(t, "--url", srv.URL, "report", "income-statement",
		"--book", "b1", "--start", "2024-01-01", "--end", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/books/b1/reports/income-statement", gotPath)
	assert.Equal(t, "end=2024-01-31&start=2024-01-01", gotQuery)
	assert.Contains(t, out, `"net_income": "3500"`)
}

func TestReportCommand_RequiresBook(t *testing.T) {
	_, err := execute(t, "report", "balance-sheet")
	assert.Error(t, err)
}

func TestLedgerConsistency(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
		want    string
	}{
		{
			name:   "consistent",
			status: http.StatusOK,
			body:   `{"status":"ok","consistent":true}`,
			want:   "Consistency check PASSED",
		},
		{
			name:    "inconsistent",
			status:  http.StatusConflict,
			body:    `{"status":"inconsistent","consistent":false,"message":"debits=10 credits=9"}`,
			wantErr: true,
			want:    "Reason: debits=10 credits=9",
		},
		{
			name:    "unknown book",
			status:  http.StatusNotFound,
			body:    `{"error":"book not found"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/books/b1/consistency", r.URL.Path)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			out, err := execute(t, "--url", srv.URL, "ledger", "consistency", "--book", "b1")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.want != "" {
				assert.Contains(t, out, tt.want)
			}
		})
	}
}

func TestAPIClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"books":[],"total":0}`))
	}))
	defer srv.Close()

	_, err := execute(t, "--url", srv.URL, "books", "list")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestAPIClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid request body"}`))
	}))
	defer srv.Close()

	_, err := execute(t, "--url", srv.URL, "--timeout", time.Second.String(), "books", "create", "x")
	var apiErr *statusError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, int32(1), calls.Load())
}

func TestScenarioRun(t *testing.T) {
	out, err := execute(t, "scenario", "run", "../../internal/scenario/testdata/retirement.yaml")
	require.NoError(t, err)

	for _, section := range []string{"Retirement year one", "Chart of Accounts", "Journal", "Balance Sheet", "Trial Balance"} {
		assert.True(t, strings.Contains(out, section), "missing %q", section)
	}
}

func TestScenarioRun_MissingFile(t *testing.T) {
	_, err := execute(t, "scenario", "run", "does-not-exist.yaml")
	assert.Error(t, err)
}

func TestAPIClient_RetriedPostReusesIdempotencyKey(t *testing.T) {
	var (
		mu   sync.Mutex
		keys []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		keys = append(keys, r.Header.Get(middleware.IdempotencyKeyHeader))
		attempt := len(keys)
		mu.Unlock()

		if attempt == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"01HZX","name":"Household","created_at":"2024-01-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	_, err := execute(t, "--url", srv.URL, "books", "create", "Household")
	require.NoError(t, err)

	require.Len(t, keys, 2)
	assert.NotEmpty(t, keys[0])
	assert.Equal(t, keys[0], keys[1])
}

func TestAPIClient_SeparateCallsUseDistinctKeys(t *testing.T) {
	var keys []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get(middleware.IdempotencyKeyHeader))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"01HZX","name":"Household","created_at":"2024-01-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	for range 2 {
		_, err := execute(t, "--url", srv.URL, "books", "create", "Household")
		require.NoError(t, err)
	}

	require.Len(t, keys, 2)
	assert.NotEqual(t, keys[0], keys[1])
}

func TestAPIClient_GetSendsNoIdempotencyKey(t *testing.T) {
	var key string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key = r.Header.Get(middleware.IdempotencyKeyHeader)
		w.Write([]byte(`{"books":[],"total":0}`))
	}))
	defer srv.Close()

	_, err := execute(t, "--url", srv.URL, "books", "list")
	require.NoError(t, err)
	assert.Empty(t, key)
}
