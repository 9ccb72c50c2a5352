package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Options carries the knobs every store shares.
type Options struct {
	// Latency delays each mutation before it is applied. Zero disables it.
	Latency time.Duration
	Now     func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// store holds the busy flag and the latency seam.
type store struct {
	opts Options
	busy atomic.Int64
}

// IsLoading reports whether an operation is in flight.
func (s *store) IsLoading() bool {
	return s.busy.Load() > 0
}

// begin raises the busy flag until the returned func is called.
func (s *store) begin() func() {
	s.busy.Add(1)
	return func() { s.busy.Add(-1) }
}

func (s *store) settle(ctx context.Context) error {
	return simulateLatency(ctx, s.opts.Latency)
}

func (s *store) now() time.Time {
	return s.opts.Now()
}

func (s *store) today() string {
	return s.now().Format("2006-01-02")
}

func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
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

// keyedMutex serializes work per entity id.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyedLock)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
