package service

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wjct-public-media/delivery-dashboard/internal/api"
)

// Fetcher runs the two-query fetch cycle against the tracker and applies
// the results to the store. Issues and projects are fetched concurrently
// and fail independently; an error on one side is logged and leaves that
// side's collection unchanged.
type Fetcher struct {
	client api.Client
	store  *Store
	logger *zap.Logger
	gen    atomic.Uint64
}

// NewFetcher creates a fetcher writing into store.
func NewFetcher(client api.Client, store *Store, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client: client,
		store:  store,
		logger: logger,
	}
}

// Refresh performs one full fetch cycle. Both queries always run to
// completion; the last-updated stamp is written once when both are done,
// regardless of individual failures.
func (f *Fetcher) Refresh(ctx context.Context) {
	gen := f.gen.Add(1)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		issues, err := f.client.FetchIssues(ctx)
		if err != nil {
			// Retain the stale collection until the next successful fetch.
			f.logger.Error("issues fetch failed", zap.Error(err))
			return nil
		}
		if !f.store.ReplaceIssues(gen, issues) {
			f.logger.Warn("discarding stale issues fetch", zap.Uint64("generation", gen))
			return nil
		}
		f.logger.Info("issues refreshed", zap.Int("count", len(issues)))
		return nil
	})

	g.Go(func() error {
		projects, err := f.client.FetchProjects(ctx)
		if err != nil {
			f.logger.Error("projects fetch failed", zap.Error(err))
			return nil
		}
		if !f.store.ReplaceProjects(gen, projects) {
			f.logger.Warn("discarding stale projects fetch", zap.Uint64("generation", gen))
			return nil
		}
		f.logger.Info("projects refreshed", zap.Int("count", len(projects)))
		return nil
	})

	// Errors are swallowed per side, so Wait only joins.
	_ = g.Wait()

	f.store.StampUpdated(time.Now())
	f.logger.Debug("fetch cycle complete", zap.Duration("took", time.Since(start)))
}
