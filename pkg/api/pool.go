package api

import (
	"context"
	"sync/atomic"
	"time"
)

// WorkerPool bounds concurrent work in two tiers: searches (move, evaluate,
// legal) are short, self-play matches run many games and get few slots.
type WorkerPool struct {
	search tier
	match  tier
}

// tier is one counting semaphore with its counters
type tier struct {
	sem    chan struct{}
	queued atomic.Int64
	active atomic.Int64
	total  atomic.Int64
}

func (t *tier) acquire(ctx context.Context) error {
	t.queued.Add(1)
	defer t.queued.Add(-1)

	select {
	case t.sem <- struct{}{}:
		t.active.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *tier) tryAcquire() bool {
	select {
	case t.sem <- struct{}{}:
		t.active.Add(1)
		return true
	default:
		return false
	}
}

func (t *tier) release() {
	t.active.Add(-1)
	t.total.Add(1)
	<-t.sem
}

// PoolConfig configures the worker pool.
type PoolConfig struct {
	MaxSearchWorkers int // Max concurrent searches (default: 64)
	MaxMatchWorkers  int // Max concurrent self-play matches (default: 2)
}

// DefaultPoolConfig returns a PoolConfig with sensible defaults.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxSearchWorkers: 64,
		MaxMatchWorkers:  2,
	}
}

// NewWorkerPool creates a new worker pool with the given configuration.
func NewWorkerPool(config PoolConfig) *WorkerPool {
	def := DefaultPoolConfig()
	if config.MaxSearchWorkers <= 0 {
		config.MaxSearchWorkers = def.MaxSearchWorkers
	}
	if config.MaxMatchWorkers <= 0 {
		config.MaxMatchWorkers = def.MaxMatchWorkers
	}

	p := &WorkerPool{}
	p.search.sem = make(chan struct{}, config.MaxSearchWorkers)
	p.match.sem = make(chan struct{}, config.MaxMatchWorkers)
	return p
}

// AcquireSearch waits for a search slot.
// Returns an error if the context is cancelled while waiting.
func (p *WorkerPool) AcquireSearch(ctx context.Context) error {
	return p.search.acquire(ctx)
}

// ReleaseSearch releases a search slot.
func (p *WorkerPool) ReleaseSearch() {
	p.search.release()
}

// TryAcquireSearch takes a search slot without blocking.
func (p *WorkerPool) TryAcquireSearch() bool {
	return p.search.tryAcquire()
}

// AcquireMatch waits for a self-play slot.
func (p *WorkerPool) AcquireMatch(ctx context.Context) error {
	return p.match.acquire(ctx)
}

// ReleaseMatch releases a self-play slot.
func (p *WorkerPool) ReleaseMatch() {
	p.match.release()
}

// TryAcquireMatch takes a self-play slot without blocking.
func (p *WorkerPool) TryAcquireMatch() bool {
	return p.match.tryAcquire()
}

// AcquireMatchWithTimeout waits at most timeout for a self-play slot.
func (p *WorkerPool) AcquireMatchWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return p.AcquireMatch(ctx)
}

// PoolStats is a snapshot of the pool counters.
type PoolStats struct {
	ActiveSearch int64 `json:"active_search"`
	ActiveMatch  int64 `json:"active_match"`
	QueuedSearch int64 `json:"queued_search"`
	QueuedMatch  int64 `json:"queued_match"`
	TotalSearch  int64 `json:"total_search"`
	TotalMatch   int64 `json:"total_match"`
	MaxSearch    int   `json:"max_search"`
	MaxMatch     int   `json:"max_match"`
}

// Stats returns current pool statistics.
func (p *WorkerPool) Stats() PoolStats {
	return PoolStats{
		ActiveSearch: p.search.active.Load(),
		ActiveMatch:  p.match.active.Load(),
		QueuedSearch: p.search.queued.Load(),
		QueuedMatch:  p.match.queued.Load(),
		TotalSearch:  p.search.total.Load(),
		TotalMatch:   p.match.total.Load(),
		MaxSearch:    cap(p.search.sem),
		MaxMatch:     cap(p.match.sem),
	}
}
