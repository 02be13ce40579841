package llm

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesKind(t *testing.T) {
	tests := []struct {
		kind Kind
		want error
	}{
		{KindUnavailable, ErrUnavailable},
		{KindRateLimited, ErrRateLimited},
		{KindInvalidResponse, ErrInvalidResponse},
		{KindTruncated, ErrTruncated},
	}
	all := []error{ErrUnavailable, ErrRateLimited, ErrInvalidResponse, ErrTruncated}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := &Error{Kind: tt.kind}
			for _, target := range all {
				assert.Equal(t, target == tt.want, errors.Is(err, target), "errors.Is(%v, %v)", err, target)
			}
		})
	}
}

func TestError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := &Error{Kind: KindUnavailable, Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "llm: provider unavailable: connection reset", err.Error())
	assert.Equal(t, "llm: response truncated", (&Error{Kind: KindTruncated}).Error())
}

func TestFromStatus(t *testing.T) {
	cause := errors.New("x")
	assert.ErrorIs(t, fromStatus(http.StatusTooManyRequests, cause), ErrRateLimited)
	assert.ErrorIs(t, fromStatus(http.StatusInternalServerError, cause), ErrUnavailable)
	assert.ErrorIs(t, fromStatus(http.StatusUnauthorized, cause), ErrUnavailable)
}
