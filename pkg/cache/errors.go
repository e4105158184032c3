package cache

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
)

// ErrUnsupported is returned by [Open] for unknown cache locations.
var ErrUnsupported = errors.New("unsupported cache location")

// RetryableError wraps an error to indicate it should trigger a retry.
type RetryableError struct{ Err error }

// Retryable wraps an error as a RetryableError.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error returns the error message of the wrapped error.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable checks if an error is wrapped with RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryPolicy controls how backends retry their initial connection.
type RetryPolicy struct {
	Attempts uint
	Delay    time.Duration
}

// DefaultRetryPolicy retries 5 times with exponential backoff from 200ms.
var DefaultRetryPolicy = RetryPolicy{Attempts: 5, Delay: 200 * time.Millisecond}

// RetryWithBackoff runs fn until it succeeds, the policy is exhausted or ctx
// is done. Only errors wrapped with Retryable trigger retries; the last error
// is returned unwrapped.
func RetryWithBackoff(ctx context.Context, p RetryPolicy, fn func() error) error {
	if p.Attempts == 0 {
		p.Attempts = 1
	}
	err := retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(p.Attempts),
		retry.Delay(p.Delay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(IsRetryable),
		retry.LastErrorOnly(true),
	)
	if re := (*RetryableError)(nil); errors.As(err, &re) {
		return re.Err
	}
	return err
}
