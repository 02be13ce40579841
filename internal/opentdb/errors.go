package opentdb

import (
	"errors"
	"fmt"
	"net/http"
)

// Response codes returned in the "response_code" field.
const (
	CodeSuccess          = 0
	CodeNoResults        = 1
	CodeInvalidParameter = 2
	CodeTokenNotFound    = 3
	CodeTokenEmpty       = 4
	CodeRateLimit        = 5
)

var (
	ErrNoResults        = errors.New("not enough questions for the query")
	ErrInvalidParameter = errors.New("invalid query parameter")
	ErrTokenNotFound    = errors.New("session token not found")
	ErrTokenEmpty       = errors.New("session token has returned all questions")
	ErrRateLimit        = errors.New("too many requests")
)

// APIError is a non-zero response code from the API.
type APIError struct {
	Code int
}

func (e *APIError) Error() string {
	if s := e.sentinel(); s != nil {
		return fmt.Sprintf("opentdb: %v (code %d)", s, e.Code)
	}
	return fmt.Sprintf("opentdb: unexpected response code %d", e.Code)
}

// Is lets errors.Is match an APIError against the package sentinels.
func (e *APIError) Is(target error) bool {
	s := e.sentinel()
	return s != nil && s == target
}

func (e *APIError) sentinel() error {
	switch e.Code {
	case CodeNoResults:
		return ErrNoResults
	case CodeInvalidParameter:
		return ErrInvalidParameter
	case CodeTokenNotFound:
		return ErrTokenNotFound
	case CodeTokenEmpty:
		return ErrTokenEmpty
	case CodeRateLimit:
		return ErrRateLimit
	}
	return nil
}

// HTTPError is a non-200 HTTP status.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("opentdb: HTTP %d for %s", e.StatusCode, e.URL)
}

// Is maps HTTP 429 to ErrRateLimit.
func (e *HTTPError) Is(target error) bool {
	return target == ErrRateLimit && e.StatusCode == http.StatusTooManyRequests
}
