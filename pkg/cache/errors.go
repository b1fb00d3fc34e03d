package cache

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/matzehuels/floorplan/pkg/errors"
)

// ErrNetwork marks a failure to reach a cache backend. Callers treat it
// as a miss: a solve never fails because the cache is down.
var ErrNetwork = stderrors.New("cache backend unreachable")

// Backoff schedule of RetryWithBackoff.
var (
	retryAttempts = 3
	retryDelay    = 200 * time.Millisecond
)

// transientError marks an error worth another attempt. It carries
// errors.ErrCodeBackend so API responses classify it.
type transientError struct{ err error }

func (e *transientError) Error() string     { return e.err.Error() }
func (e *transientError) Unwrap() error     { return e.err }
func (e *transientError) Code() errors.Code { return errors.ErrCodeBackend }

// Retryable marks err as transient. It returns nil for a nil error.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsRetryable reports whether err was marked with Retryable.
func IsRetryable(err error) bool {
	var te *transientError
	return stderrors.As(err, &te)
}

// RetryWithBackoff calls fn until it succeeds, returns an error not marked
// Retryable, or the attempts run out. The delay doubles between attempts.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryDelay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt >= retryAttempts {
			return err
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
}
