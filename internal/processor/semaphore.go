package processor

import "context"

// semaphore bounds how many full runs execute at once
type semaphore struct {
	ch chan struct{}
}

func newSemaphore(capacity int) *semaphore {
	return &semaphore{
		ch: make(chan struct{}, capacity),
	}
}

// acquire blocks until a slot is free and returns the func that releases it.
func (s *semaphore) acquire(ctx context.Context) (func(), error) {
	select {
	case s.ch <- struct{}{}:
		return func() { <-s.ch }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// inUse reports how many slots are currently held
func (s *semaphore) inUse() int {
	return len(s.ch)
}
