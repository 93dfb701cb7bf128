package retry

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	pkghttp "github.com/pitchperfect/pitch-backend/pkg/http"
)

const (
	defaultAttempts = 3
	defaultDelay    = 100 * time.Millisecond
	defaultMaxDelay = 2 * time.Second
	defaultTimeout  = 10 * time.Second
)

// RetryConfig is the per-connector retry tuning loaded from env.
// Unset fields are filled from DefaultRetryConfig via Normalize.
type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS"`
	Delay    time.Duration `env:"DELAY"`
	MaxDelay time.Duration `env:"MAX_DELAY"`
	Timeout  time.Duration `env:"TIMEOUT"`
}

// Normalize fills zero fields with the defaults so a connector can run
// with a partially configured retry block.
func (rc *RetryConfig) Normalize() {
	def := DefaultRetryConfig()
	if rc.Attempts == 0 {
		rc.Attempts = def.Attempts
	}
	if rc.Delay == 0 {
		rc.Delay = def.Delay
	}
	if rc.MaxDelay == 0 {
		rc.MaxDelay = def.MaxDelay
	}
	if rc.Timeout == 0 {
		rc.Timeout = def.Timeout
	}
}

func (rc *RetryConfig) ToRetryOptions() []retry.Option {
	return []retry.Option{
		retry.Attempts(rc.Attempts),
		retry.Delay(rc.Delay),
		retry.MaxDelay(rc.MaxDelay),
	}
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
		MaxDelay: defaultMaxDelay,
		Timeout:  defaultTimeout,
	}
}

// Do runs fn under the configured schedule. Timeout bounds the whole
// sequence of attempts, not a single one. Client errors from the
// remote service are returned immediately; only transport failures and
// server-side errors earn another attempt.
func (rc *RetryConfig) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if rc.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rc.Timeout)
		defer cancel()
	}

	opts := append(rc.ToRetryOptions(),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(Retryable),
	)

	return retry.Do(func() error { return fn(ctx) }, opts...)
}

// Retryable reports whether a connector error is worth another attempt.
func Retryable(err error) bool {
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= http.StatusInternalServerError ||
			httpErr.StatusCode == http.StatusTooManyRequests
	}

	var netErr *pkghttp.NetworkError
	return errors.As(err, &netErr)
}
