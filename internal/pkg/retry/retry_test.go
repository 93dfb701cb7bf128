package retry

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	pkghttp "github.com/pitchperfect/pitch-backend/pkg/http"
	"github.com/stretchr/testify/require"
)

func testConfig() *RetryConfig {
	return &RetryConfig{
		Attempts: 3,
		Delay:    time.Millisecond,
		MaxDelay: 5 * time.Millisecond,
		Timeout:  time.Second,
	}
}

func TestDo_RetriesServerErrorsUntilSuccess(t *testing.T) {
	cfg := testConfig()

	calls := 0
	err := cfg.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return &pkghttp.HTTPError{StatusCode: http.StatusBadGateway}
		}
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestDo_ClientErrorReturnsImmediately(t *testing.T) {
	cfg := testConfig()

	calls := 0
	err := cfg.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return &pkghttp.HTTPError{StatusCode: http.StatusBadRequest}
	})

	var httpErr *pkghttp.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, 1, calls)
}

func TestDo_ExhaustedAttemptsReturnLastError(t *testing.T) {
	cfg := testConfig()

	calls := 0
	err := cfg.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return &pkghttp.NetworkError{Err: errors.New("connection refused")}
	})

	var netErr *pkghttp.NetworkError
	require.ErrorAs(t, err, &netErr)
	require.Equal(t, 3, calls)
}

func TestRetryable(t *testing.T) {
	require.True(t, Retryable(&pkghttp.HTTPError{StatusCode: http.StatusInternalServerError}))
	require.True(t, Retryable(&pkghttp.HTTPError{StatusCode: http.StatusTooManyRequests}))
	require.True(t, Retryable(&pkghttp.NetworkError{Err: errors.New("timeout")}))

	require.False(t, Retryable(&pkghttp.HTTPError{StatusCode: http.StatusNotFound}))
	require.False(t, Retryable(errors.New("decode response: unexpected EOF")))
}

func TestNormalize_FillsUnsetFields(t *testing.T) {
	cfg := &RetryConfig{Attempts: 5}
	cfg.Normalize()

	require.Equal(t, uint(5), cfg.Attempts)
	require.Equal(t, DefaultRetryConfig().Delay, cfg.Delay)
	require.Equal(t, DefaultRetryConfig().MaxDelay, cfg.MaxDelay)
	require.Equal(t, DefaultRetryConfig().Timeout, cfg.Timeout)
}
