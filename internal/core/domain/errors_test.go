package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors_SurviveWrapping(t *testing.T) {
	err := fmt.Errorf("demo: %w", ErrNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrNotInstalled)
}

func TestNetworkError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("install failed: %w", &NetworkError{URL: "http://example.com", Err: cause})

	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
	assert.Equal(t, "http://example.com", netErr.URL)
	assert.ErrorIs(t, err, cause)
}

func TestParseError_DistinctFromNetworkError(t *testing.T) {
	err := error(&ParseError{Reason: "missing field"})

	var parseErr *ParseError
	var netErr *NetworkError
	assert.ErrorAs(t, err, &parseErr)
	assert.False(t, errors.As(err, &netErr))
	assert.Contains(t, err.Error(), "missing field")
}

func TestIntegrityError_CarriesBothDigests(t *testing.T) {
	err := &IntegrityError{Name: "demo", Expected: "aaaa", Actual: "bbbb"}
	assert.Contains(t, err.Error(), "aaaa")
	assert.Contains(t, err.Error(), "bbbb")
	assert.Contains(t, err.Error(), "demo")
}

func TestIOError_UnwrapsToCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := error(&IOError{Op: "write", Path: "/tmp/x", Err: cause})
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "/tmp/x")
}
