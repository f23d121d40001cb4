// Package deadline bounds external calls with a per-operation deadline.
//
// Run executes the call on its own goroutine and stops waiting once the
// deadline passes. The call receives a context that is cancelled at that
// point, but a call that ignores its context may still complete in the
// background after Run has returned a *TimeoutError.
package deadline

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// TimeoutError reports that Operation did not finish within Deadline.
type TimeoutError struct {
	Operation string
	Deadline  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Operation, e.Deadline)
}

// IsTimeout reports whether err carries a *TimeoutError.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// PanicError wraps a panic raised inside a bounded call.
type PanicError struct {
	Operation string
	Value     interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s panicked: %v", e.Operation, e.Value)
}

type outcome[T any] struct {
	value T
	err   error
}

// Run calls fn under the given deadline. A non-positive timeout means no
// deadline beyond the parent context.
func Run[T any](ctx context.Context, operation string, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	var (
		callCtx context.Context
		cancel  context.CancelFunc
	)
	if timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		callCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	// Buffered so an abandoned call can still deliver and exit.
	done := make(chan outcome[T], 1)
	go func() {
		var out outcome[T]
		defer func() {
			if p := recover(); p != nil {
				out = outcome[T]{err: &PanicError{Operation: operation, Value: p}}
			}
			done <- out
		}()
		v, err := fn(callCtx)
		out = outcome[T]{value: v, err: err}
	}()

	timedOut := func() bool {
		return timeout > 0 && ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded)
	}

	select {
	case out := <-done:
		// A context-aware call reports the deadline itself.
		if out.err != nil && timedOut() {
			return zero, &TimeoutError{Operation: operation, Deadline: timeout}
		}
		return out.value, out.err
	case <-callCtx.Done():
		// Prefer a result that raced the deadline.
		select {
		case out := <-done:
			if out.err == nil {
				return out.value, nil
			}
		default:
		}
		if timedOut() {
			return zero, &TimeoutError{Operation: operation, Deadline: timeout}
		}
		return zero, fmt.Errorf("%s: %w", operation, ctx.Err())
	}
}

// Do is Run for calls that only return an error.
func Do(ctx context.Context, operation string, timeout time.Duration, fn func(context.Context) error) error {
	_, err := Run(ctx, operation, timeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
