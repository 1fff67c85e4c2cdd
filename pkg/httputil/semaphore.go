package httputil

import (
	"context"
	"sync/atomic"
)

// Semaphore bounds concurrent per-URL work inside a scan. A message
// stuffed with links must not fan out into unbounded goroutines.
type Semaphore struct {
	sem     chan struct{}
	dropped atomic.Int64
}

// NewSemaphore creates a semaphore admitting capacity concurrent
// holders (default 8).
func NewSemaphore(capacity int) *Semaphore {
	if capacity <= 0 {
		capacity = 8
	}
	return &Semaphore{sem: make(chan struct{}, capacity)}
}

// Acquire blocks until a slot frees up or the context is cancelled.
func (s *Semaphore) Acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryAcquire takes a slot without blocking. Failed attempts count as
// dropped work.
func (s *Semaphore) TryAcquire() bool {
	select {
	case s.sem <- struct{}{}:
		return true
	default:
		s.dropped.Add(1)
		return false
	}
}

// Release returns a slot. Only call after a successful acquire.
func (s *Semaphore) Release() {
	select {
	case <-s.sem:
	default:
	}
}

// InUse returns the number of held slots.
func (s *Semaphore) InUse() int {
	return len(s.sem)
}

// Dropped returns how many TryAcquire attempts were refused.
func (s *Semaphore) Dropped() int64 {
	return s.dropped.Load()
}
