package repository

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"mcpscan/internal/logging"
)

// DefaultFetchConcurrency bounds FetchAll when limit is not positive.
const DefaultFetchConcurrency = 4

// FetchAll fetches every source with at most limit fetches in flight. The
// results keep the order of sources. The first failure cancels the rest
// and is returned.
func FetchAll(ctx context.Context, sources []Source, limit int, logger *logging.AppLogger) ([]*RepositoryData, error) {
	start := time.Now()
	if limit <= 0 {
		limit = DefaultFetchConcurrency
	}

	results := make([]*RepositoryData, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, source := range sources {
		g.Go(func() error {
			data, err := source.Fetch(gctx, logger)
			if err != nil {
				return err
			}
			results[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if logger != nil {
		logger.LogPerformance("repository.FetchAll", start)
	}
	return results, nil
}
