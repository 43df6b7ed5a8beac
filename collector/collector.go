// Package collector fetches story details one at a time, in list order,
// skipping stories that fail to fetch.
package collector

import (
	"context"
	"log/slog"

	"github.com/yonasBSD/hacker-news/hn"
)

// Fetcher retrieves a single story by ID.
type Fetcher interface {
	Story(ctx context.Context, id int) (*hn.Story, error)
}

// ProgressFunc is called once per attempted ID. done counts from 1 to total.
type ProgressFunc func(done, total int)

// Collector drives a Fetcher over a bounded slice of story IDs.
type Collector struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// New creates a Collector. A nil logger falls back to slog.Default().
func New(fetcher Fetcher, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Limit returns min(count, available), never below zero.
func Limit(count, available int) int {
	return max(0, min(count, available))
}

// Collect fetches the first Limit(count, len(ids)) stories in order.
// Failed fetches are logged and skipped; the returned slice keeps the relative
// order of the successes. onProgress may be nil.
//
// The only error returned is the context's, when it is cancelled between
// attempts or during a fetch; the stories gathered so far are returned with it.
// A fetch cut short by cancellation is neither logged as a failure nor counted
// as progress.
func (c *Collector) Collect(ctx context.Context, ids []int, count int, onProgress ProgressFunc) ([]hn.Story, error) {
	limit := Limit(count, len(ids))
	stories := make([]hn.Story, 0, limit)
	if limit == 0 {
		return stories, nil
	}

	c.logger.Debug("collecting stories", "requested", count, "available", len(ids), "limit", limit)

	skipped := 0
	for i, id := range ids[:limit] {
		select {
		case <-ctx.Done():
			c.logger.Warn("collection interrupted", "attempted", i, "limit", limit, "fetched", len(stories))
			return stories, ctx.Err()
		default:
		}

		story, err := c.fetcher.Story(ctx, id)
		if err != nil && ctx.Err() != nil {
			c.logger.Debug("fetch aborted", "id", id, "error", err)
			c.logger.Warn("collection interrupted", "attempted", i, "limit", limit, "fetched", len(stories))
			return stories, ctx.Err()
		}
		if err != nil {
			skipped++
			c.logger.Error("failed to fetch story, skipping", "id", id, "error", err)
		} else {
			stories = append(stories, *story)
		}

		if onProgress != nil {
			onProgress(i+1, limit)
		}
	}

	c.logger.Debug("collection finished", "attempted", limit, "fetched", len(stories), "skipped", skipped)
	return stories, nil
}
