package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"catalog-sync-service/internal/metrics"
)

// MaxConcurrentPageFetches caps in-flight remote requests of one sweep so a
// sync never trips the remote platform's rate limits
const MaxConcurrentPageFetches = 15

// MaxSweepPages bounds the page count a remote listing may claim
const MaxSweepPages = 10000

// ErrSyncInProgress is returned when the same sync is already running
var ErrSyncInProgress = errors.New("a sync of this kind is already running")

// PageFetcher fetches one page and reports the total page count
type PageFetcher[T any] func(ctx context.Context, page int) (items []T, totalPages int, err error)

// FetchAllPages fetches page 1 to learn the page count, then fans out pages
// 2..N with at most MaxConcurrentPageFetches in flight. Items come back in
// no particular order. Any page failure fails the sweep.
func FetchAllPages[T any](ctx context.Context, fetch PageFetcher[T]) ([]T, error) {
	first, totalPages, err := fetchPage(ctx, fetch, 1)
	if err != nil {
		return nil, err
	}
	if totalPages <= 1 {
		return first, nil
	}
	if totalPages > MaxSweepPages {
		return nil, fmt.Errorf("remote reports %d pages, more than %d", totalPages, MaxSweepPages)
	}

	var mu sync.Mutex
	all := append([]T(nil), first...)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrentPageFetches)
	for page := 2; page <= totalPages; page++ {
		g.Go(func() error {
			items, _, err := fetchPage(gctx, fetch, page)
			if err != nil {
				return err
			}
			mu.Lock()
			all = append(all, items...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

func fetchPage[T any](ctx context.Context, fetch PageFetcher[T], page int) ([]T, int, error) {
	metrics.PageFetchesInFlight.Inc()
	defer metrics.PageFetchesInFlight.Dec()

	items, totalPages, err := fetch(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("page %d: %w", page, err)
	}
	return items, totalPages, nil
}

// RunGuard lets at most one sync per key run at a time
type RunGuard struct {
	mu      sync.Mutex
	running map[string]bool
}

// NewRunGuard creates an empty guard
func NewRunGuard() *RunGuard {
	return &RunGuard{running: make(map[string]bool)}
}

// TryAcquire claims key without blocking. The returned release must be
// called once the run finishes.
func (g *RunGuard) TryAcquire(key string) (func(), bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.running[key] {
		return nil, false
	}
	g.running[key] = true

	return func() {
		g.mu.Lock()
		delete(g.running, key)
		g.mu.Unlock()
	}, true
}

// Running returns the keys with a sync in flight
func (g *RunGuard) Running() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	keys := make([]string, 0, len(g.running))
	for key := range g.running {
		keys = append(keys, key)
	}
	return keys
}
