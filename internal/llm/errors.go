package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind classifies a provider failure.
type Kind int

const (
	KindUnavailable Kind = iota // network failure or 5xx
	KindRateLimited             // 429
	KindInvalidResponse         // output is not valid JSON or fails the schema
	KindTruncated               // hit the max token limit
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate limited"
	case KindInvalidResponse:
		return "invalid response"
	case KindTruncated:
		return "response truncated"
	default:
		return "provider unavailable"
	}
}

// Sentinels for errors.Is.
var (
	ErrUnavailable     = errors.New("llm: provider unavailable")
	ErrRateLimited     = errors.New("llm: rate limited")
	ErrInvalidResponse = errors.New("llm: invalid response")
	ErrTruncated       = errors.New("llm: response truncated")
)

// Error is returned by every Provider implementation.
type Error struct {
	Kind Kind

	// RetryAfter is the server's hint for KindRateLimited, if any.
	RetryAfter time.Duration

	// Content is the offending output for KindInvalidResponse and
	// KindTruncated.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "llm: " + e.Kind.String()
	}
	return fmt.Sprintf("llm: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindRateLimited:
		return target == ErrRateLimited
	case KindInvalidResponse:
		return target == ErrInvalidResponse
	case KindTruncated:
		return target == ErrTruncated
	default:
		return target == ErrUnavailable
	}
}

// fromStatus classifies an SDK error by its HTTP status. Anything that is
// not a rate limit counts as unavailable.
func fromStatus(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &Error{Kind: KindRateLimited, Err: err}
	}
	return &Error{Kind: KindUnavailable, Err: err}
}

func invalid(content json.RawMessage, format string, args ...any) error {
	return &Error{Kind: KindInvalidResponse, Content: content, Err: fmt.Errorf(format, args...)}
}
