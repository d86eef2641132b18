// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package show

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/taibuivan/showcast/pkg/uuid"
)

// ErrSyncInProgress is returned when a [Syncer] is asked to run twice at once.
var ErrSyncInProgress = errors.New("archive sync already in progress")

// PageAggregator produces fully aggregated catalog pages. [Manager] implements it.
type PageAggregator interface {
	GetShows(ctx context.Context, pageID int) ([]Show, error)
}

// Syncer walks the catalog page by page and persists every aggregated page.
type Syncer struct {
	aggregator PageAggregator
	repository Repository
	logger     *slog.Logger
	maxPages   int
	now        func() time.Time
	running    atomic.Bool
}

// NewSyncer creates a [Syncer]. A maxPages of zero walks until the catalog runs out.
func NewSyncer(aggregator PageAggregator, repository Repository, logger *slog.Logger, maxPages int) *Syncer {
	return &Syncer{
		aggregator: aggregator,
		repository: repository,
		logger:     logger,
		maxPages:   maxPages,
		now:        time.Now,
	}
}

/*
Run archives the catalog starting at fromPage.

Description: Pages fromPage, fromPage+1, ... are aggregated and saved until the
catalog reports the page does not exist, or maxPages pages are stored. The run
is recorded before the first page and finished with its outcome, even when ctx
is cancelled.

Parameters:
  - ctx: context.Context
  - fromPage: int (zero-based, non-negative)

Returns:
  - *SyncRun: The recorded run (nil only if it could not be started)
  - error: ErrSyncInProgress, or the failure that stopped the run
*/
func (s *Syncer) Run(ctx context.Context, fromPage int) (*SyncRun, error) {
	if fromPage < 0 {
		return nil, fmt.Errorf("sync: negative start page %d", fromPage)
	}
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrSyncInProgress
	}
	defer s.running.Store(false)

	run := &SyncRun{
		ID:        uuid.New(),
		StartedAt: s.now().UTC(),
		Status:    SyncRunning,
	}
	if err := s.repository.StartRun(ctx, run); err != nil {
		return nil, fmt.Errorf("sync: start run: %w", err)
	}

	logger := s.logger.With(slog.String("run_id", run.ID))
	logger.Info("sync_started", slog.Int("from_page", fromPage), slog.Int("max_pages", s.maxPages))

	walkErr := s.walk(ctx, logger, run, fromPage)

	finishedAt := s.now().UTC()
	run.FinishedAt = &finishedAt
	run.Status = SyncCompleted
	if walkErr != nil {
		run.Status = SyncFailed
		run.Error = walkErr.Error()
	}

	// The outcome is recorded even if the run was cancelled.
	if err := s.repository.FinishRun(context.WithoutCancel(ctx), run); err != nil {
		return run, errors.Join(walkErr, fmt.Errorf("sync: finish run: %w", err))
	}

	if walkErr != nil {
		logger.Error("sync_failed", slog.Int("pages", run.Pages), slog.Any("error", walkErr))
		return run, walkErr
	}

	logger.Info("sync_completed",
		slog.Int("pages", run.Pages),
		slog.Int("shows", run.Shows),
		slog.Duration("duration", finishedAt.Sub(run.StartedAt)),
	)
	return run, nil
}

func (s *Syncer) walk(ctx context.Context, logger *slog.Logger, run *SyncRun, fromPage int) error {
	for page := fromPage; s.maxPages == 0 || run.Pages < s.maxPages; page++ {
		shows, err := s.aggregator.GetShows(ctx, page)
		if errors.Is(err, ErrNotFound) {
			logger.Info("sync_catalog_exhausted", slog.Int("page", page))
			return nil
		}
		if err != nil {
			return fmt.Errorf("sync page %d: %w", page, err)
		}

		if err := s.repository.SavePage(ctx, page, shows); err != nil {
			return fmt.Errorf("sync page %d: save: %w", page, err)
		}

		run.Pages++
		run.Shows += len(shows)
		logger.Debug("sync_page_saved", slog.Int("page", page), slog.Int("shows", len(shows)))
	}

	return nil
}
