// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package show

import "context"

// Repository is the durable archive of aggregated pages.
//
// Lookups that find nothing return an apperr NOT_FOUND error.
type Repository interface {

	// SavePage upserts shows seen on page and replaces their cast, keeping
	// cast order. It is atomic per page.
	SavePage(ctx context.Context, page int, shows []Show) error

	// List returns archived shows ordered by ID, plus the total count.
	List(ctx context.Context, limit, offset int) ([]ArchivedShow, int, error)

	FindByID(ctx context.Context, id int) (*ArchivedShow, error)
	FindBySlug(ctx context.Context, slug string) (*ArchivedShow, error)

	// StartRun persists a new run in [SyncRunning] state.
	StartRun(ctx context.Context, run *SyncRun) error

	// FinishRun stores the final counters, status and error of run.
	FinishRun(ctx context.Context, run *SyncRun) error

	// LatestRun returns the most recently started run.
	LatestRun(ctx context.Context) (*SyncRun, error)
}
