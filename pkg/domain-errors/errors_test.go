package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCodeWalksWrapChain(t *testing.T) {
	inner := New(CodeNotFound, "certificate not found")
	outer := Wrap(inner, CodeInternal, "lookup failed")

	assert.True(t, HasCode(outer, CodeInternal))
	assert.True(t, HasCode(outer, CodeNotFound))
	assert.False(t, HasCode(outer, CodeConflict))
}

func TestHasCodeThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("query: %w", New(CodeConflict, "duplicate fingerprint"))

	assert.True(t, HasCode(err, CodeConflict))
}

func TestGetCodeOutermostWins(t *testing.T) {
	err := Wrap(New(CodeNotFound, "inner"), CodeInternal, "outer")
	assert.Equal(t, CodeInternal, GetCode(err))

	assert.Equal(t, CodeInternal, GetCode(errors.New("plain")))
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, CodeInternal, "store unavailable")

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "store unavailable")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestToHTTPStatus(t *testing.T) {
	for code, want := range map[Code]int{
		CodeBadRequest:         http.StatusBadRequest,
		CodeValidation:         http.StatusBadRequest,
		CodeUnauthorized:       http.StatusUnauthorized,
		CodeForbidden:          http.StatusForbidden,
		CodeNotFound:           http.StatusNotFound,
		CodeConflict:           http.StatusConflict,
		CodeInvariantViolation: http.StatusConflict,
		CodeCapacityExceeded:   http.StatusInsufficientStorage,
		CodeTimeout:            http.StatusGatewayTimeout,
		CodeInternal:           http.StatusInternalServerError,
		Code("unknown"):        http.StatusInternalServerError,
	} {
		assert.Equal(t, want, ToHTTPStatus(code), "code %s", code)
	}
}
