package client

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned by Latest.Do when a newer call started before
// this one finished.
var ErrSuperseded = errors.New("client: request superseded by a newer one")

// Latest runs fetches where only the most recent call's result counts, as a
// screen does when the user switches filters faster than responses arrive.
// Starting a call cancels the context of the one in flight.
type Latest[T any] struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Do runs fn with a context that is cancelled when a newer Do starts. A
// superseded call returns ErrSuperseded whatever fn returned.
func (l *Latest[T]) Do(ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	mine := l.seq
	l.cancel = cancel
	l.mu.Unlock()

	v, err := fn(ctx)

	l.mu.Lock()
	superseded := mine != l.seq
	if !superseded {
		l.cancel = nil
	}
	l.mu.Unlock()

	if superseded {
		var zero T
		return zero, ErrSuperseded
	}
	return v, err
}

// Cancel aborts the call in flight, if any. It mirrors a screen unmounting.
func (l *Latest[T]) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.seq++
}
