package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
)

// Policy is the retry budget of a remote operation.
type Policy struct {
	MaxRetries int
	Delay      time.Duration

	// Timer overrides the wall-clock timer between attempts. Nil uses the real one.
	Timer backoff.Timer
	// Notify is called before every wait with the failure and the upcoming delay.
	Notify backoff.Notify
}

// DefaultPolicy retries three times starting at two seconds.
func DefaultPolicy() Policy {
	return Policy{MaxRetries: 3, Delay: 2 * time.Second}
}

// IsTransient reports whether err is worth retrying: a 5xx answer or an
// internal error reported in the message. Quota errors are not retried here.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 500 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Internal error") || strings.Contains(msg, "INTERNAL")
}

// Retry runs op until it succeeds, fails permanently or the budget is spent.
// The delay doubles after every transient failure. Non-transient failures are
// returned immediately and unchanged.
func Retry(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	operation := func() error {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.RetryNotifyWithTimer(operation, newBackOff(ctx, p), p.Notify, p.Timer)
}

// Do is Retry for operations that produce a value.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := Retry(ctx, p, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

func newBackOff(ctx context.Context, p Policy) backoff.BackOff {
	retries := p.MaxRetries
	if retries < 0 {
		retries = 0
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.Delay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0
	bo.MaxInterval = p.Delay << uint(retries)
	if bo.MaxInterval <= 0 {
		bo.MaxInterval = p.Delay
	}
	bo.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(bo, uint64(retries)), ctx)
}

// poll calls check every interval until it reports done, returns a permanent
// error, or attempts run out. Errors from check are passed to onErr and polling
// continues.
func poll(ctx context.Context, interval time.Duration, attempts int, check func(ctx context.Context) (bool, error), onErr func(error)) error {
	if attempts < 1 {
		attempts = 1
	}

	errNotReady := errors.New("not ready")
	var terminal error
	operation := func() error {
		done, err := check(ctx)
		if err != nil {
			var permanent *backoff.PermanentError
			if errors.As(err, &permanent) {
				terminal = permanent.Err
				return err
			}
			if onErr != nil {
				onErr(err)
			}
			return err
		}
		if !done {
			return errNotReady
		}
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(interval), uint64(attempts-1)), ctx)
	err := backoff.Retry(operation, b)
	switch {
	case err == nil:
		return nil
	case terminal != nil:
		return terminal
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ErrProcessingTimeout
	case ctx.Err() != nil:
		return ctx.Err()
	}
	// Out of attempts, whether the last poll said "not ready" or failed.
	return ErrProcessingTimeout
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
