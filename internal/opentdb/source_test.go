package opentdb

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts:   4,
		InitialWait:   time.Millisecond,
		MaxWait:       5 * time.Millisecond,
		Multiplier:    2,
		RateLimitWait: 7 * time.Second,
	}
}

// newTestSource records requested waits instead of sleeping.
func newTestSource(t *testing.T, cfg SourceConfig, handler http.HandlerFunc) (*Source, *[]time.Duration) {
	t.Helper()
	s := NewSource(newTestClient(t, handler), cfg, nil)
	var waits []time.Duration
	s.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	return s, &waits
}

func TestSource_Next_DecodesAndShuffles(t *testing.T) {
	s, _ := newTestSource(t, SourceConfig{Retry: testRetry()}, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"response_code": 0, "results": []any{sampleResult()}})
	})

	q, err := s.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `Who wrote "1984"?`, q.Text)
	assert.Equal(t, "George Orwell", q.Correct)
	assert.Equal(t, "easy", q.Difficulty)
	assert.Equal(t, "Entertainment: Books", q.Category)
	assert.ElementsMatch(t, []string{"George Orwell", "Aldous Huxley", "Ray Bradbury", "H.G. Wells"}, q.Options)
}

func TestSource_Next_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	s, waits := newTestSource(t, SourceConfig{Retry: testRetry()}, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			writeJSON(w, map[string]any{"response_code": CodeRateLimit, "results": []any{}})
			return
		}
		writeJSON(w, map[string]any{"response_code": 0, "results": []any{sampleResult()}})
	})

	q, err := s.Next(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, q)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, []time.Duration{7 * time.Second}, *waits)
}

func TestSource_Next_GivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	s, waits := newTestSource(t, SourceConfig{Retry: testRetry()}, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := s.Next(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(4), calls.Load())
	assert.Len(t, *waits, 3)
	for _, w := range *waits {
		assert.LessOrEqual(t, w, 6*time.Millisecond)
	}
}

func TestSource_Next_NoResultsIsTerminal(t *testing.T) {
	var calls atomic.Int32
	s, _ := newTestSource(t, SourceConfig{Retry: testRetry()}, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, map[string]any{"response_code": CodeNoResults, "results": []any{}})
	})

	_, err := s.Next(context.Background())
	assert.ErrorIs(t, err, ErrNoResults)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSource_Next_ClientErrorIsTerminal(t *testing.T) {
	var calls atomic.Int32
	s, _ := newTestSource(t, SourceConfig{Retry: testRetry()}, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := s.Next(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSource_SessionToken_Lifecycle(t *testing.T) {
	var questionCalls atomic.Int32
	var resets atomic.Int32

	s, _ := newTestSource(t, SourceConfig{SessionToken: true, Retry: testRetry()}, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api_token.php":
			if r.URL.Query().Get("command") == "reset" {
				resets.Add(1)
			}
			writeJSON(w, map[string]any{"response_code": 0, "token": "tok"})
		case "/api.php":
			assert.Equal(t, "tok", r.URL.Query().Get("token"))
			if questionCalls.Add(1) == 1 {
				writeJSON(w, map[string]any{"response_code": CodeTokenEmpty, "results": []any{}})
				return
			}
			writeJSON(w, map[string]any{"response_code": 0, "results": []any{sampleResult()}})
		}
	})

	q, err := s.Next(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, q)
	assert.Equal(t, int32(1), resets.Load())
	assert.Equal(t, int32(2), questionCalls.Load())
}

func TestSource_SessionToken_NotFoundRequestsNew(t *testing.T) {
	var requests atomic.Int32
	var questionCalls atomic.Int32

	s, _ := newTestSource(t, SourceConfig{SessionToken: true, Retry: testRetry()}, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api_token.php":
			requests.Add(1)
			writeJSON(w, map[string]any{"response_code": 0, "token": "tok"})
		case "/api.php":
			if questionCalls.Add(1) == 1 {
				writeJSON(w, map[string]any{"response_code": CodeTokenNotFound, "results": []any{}})
				return
			}
			writeJSON(w, map[string]any{"response_code": 0, "results": []any{sampleResult()}})
		}
	})

	_, err := s.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), requests.Load())
}

func TestSource_Next_ContextCanceled(t *testing.T) {
	s, _ := newTestSource(t, SourceConfig{Retry: testRetry()}, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"response_code": 0, "results": []any{sampleResult()}})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSource_Backoff_Caps(t *testing.T) {
	s := NewSource(NewClient(), SourceConfig{Retry: RetryConfig{
		MaxAttempts: 5,
		InitialWait: time.Second,
		MaxWait:     2 * time.Second,
		Multiplier:  2,
	}}, nil)

	for attempt := 0; attempt < 5; attempt++ {
		w := s.backoff(attempt, &HTTPError{StatusCode: 503})
		assert.LessOrEqual(t, w, 2400*time.Millisecond)
		assert.GreaterOrEqual(t, w, 800*time.Millisecond)
	}
}
