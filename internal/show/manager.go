// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package show

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

// # Aggregation Manager

// Manager aggregates shows and their sorted cast from a [Source].
//
// It is stateless between calls: every aggregation pass owns its own
// [Cooldown], so concurrent requests never share timers.
type Manager struct {
	source      Source
	logger      *slog.Logger
	cooldown    time.Duration
	maxRetries  int
	concurrency int
}

// Option configures a [Manager].
type Option func(*Manager)

// WithCooldown overrides the [DefaultCooldown] window.
func WithCooldown(window time.Duration) Option {
	return func(manager *Manager) {
		if window > 0 {
			manager.cooldown = window
		}
	}
}

// WithMaxRetries bounds the overload retries per fetch. Zero means unlimited.
func WithMaxRetries(retries int) Option {
	return func(manager *Manager) {
		if retries >= 0 {
			manager.maxRetries = retries
		}
	}
}

// WithConcurrency fetches the cast of up to n shows of a page in parallel.
// All workers of a pass share one [Cooldown].
func WithConcurrency(n int) Option {
	return func(manager *Manager) {
		if n > 0 {
			manager.concurrency = n
		}
	}
}

// NewManager constructs a [Manager] reading from source.
func NewManager(source Source, logger *slog.Logger, opts ...Option) *Manager {
	manager := &Manager{
		source:      source,
		logger:      logger,
		cooldown:    DefaultCooldown,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(manager)
	}
	return manager
}

// # Public Operations

/*
GetShows returns a page of shows, each with its cast sorted by birth date.

Description: Shows are returned in the order the source listed them. An
overloaded source is waited out and the same fetch retried, so the page
always completes in full. This may block for several cooldown windows.

Parameters:
  - ctx: context.Context (cancellation aborts a pending cooldown)
  - pageID: int (zero-based, non-negative)

Returns:
  - []Show: The aggregated page
  - error: ErrPageNotFound past the last page, or an unexpected failure
*/
func (m *Manager) GetShows(ctx context.Context, pageID int) ([]Show, error) {
	cooldown := NewCooldown(m.cooldown)

	page, err := retry(ctx, m, cooldown, fmt.Sprintf("page %d", pageID), func() ([]Show, error) {
		return m.source.Shows(ctx, pageID)
	})
	if err != nil {
		return nil, fmt.Errorf("get shows of page %d: %w", pageID, err)
	}

	shows := slices.Clone(page)
	if err := m.attachCasts(ctx, shows, cooldown); err != nil {
		return nil, fmt.Errorf("get shows of page %d: %w", pageID, err)
	}

	m.logger.Debug("show_page_aggregated",
		slog.Int("page", pageID),
		slog.Int("shows", len(shows)),
	)

	return shows, nil
}

/*
GetShow returns one show with its cast sorted by birth date.

Returns:
  - *Show: The aggregated show
  - error: ErrNotFound when the show does not exist, or an unexpected failure
*/
func (m *Manager) GetShow(ctx context.Context, showID int) (*Show, error) {
	cooldown := NewCooldown(m.cooldown)

	details, err := retry(ctx, m, cooldown, fmt.Sprintf("show %d", showID), func() (*Show, error) {
		return m.source.Show(ctx, showID)
	})
	if err != nil {
		return nil, fmt.Errorf("get show %d: %w", showID, err)
	}
	if details == nil {
		return nil, fmt.Errorf("get show %d: %w", showID, ErrNotFound)
	}

	result := *details
	if err := m.attachCast(ctx, &result, cooldown); err != nil {
		return nil, fmt.Errorf("get show %d: %w", showID, err)
	}

	return &result, nil
}

/*
GetCastMembers returns the cast of one show in source order, unsorted.

Returns:
  - []CastMember: The raw cast
  - error: ErrNotFound when the show does not exist, or an unexpected failure
*/
func (m *Manager) GetCastMembers(ctx context.Context, showID int) ([]CastMember, error) {
	members, err := m.castMembers(ctx, showID, NewCooldown(m.cooldown))
	if err != nil {
		return nil, fmt.Errorf("get cast members of show %d: %w", showID, err)
	}
	return members, nil
}

// # Aggregation Internals

func (m *Manager) castMembers(ctx context.Context, showID int, cooldown *Cooldown) ([]CastMember, error) {
	return retry(ctx, m, cooldown, fmt.Sprintf("cast of show %d", showID), func() ([]CastMember, error) {
		return m.source.CastMembers(ctx, showID)
	})
}

// attachCasts populates the cast of every show, sequentially or with a bounded
// worker group. Each worker writes only to its own element.
func (m *Manager) attachCasts(ctx context.Context, shows []Show, cooldown *Cooldown) error {
	if m.concurrency <= 1 {
		for i := range shows {
			if err := m.attachCast(ctx, &shows[i], cooldown); err != nil {
				return err
			}
		}
		return nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(m.concurrency)

	for i := range shows {
		target := &shows[i]
		group.Go(func() error {
			return m.attachCast(groupCtx, target, cooldown)
		})
	}

	return group.Wait()
}

// attachCast fetches, sorts and assigns the cast in one step so a show is
// never left with a partial list.
func (m *Manager) attachCast(ctx context.Context, target *Show, cooldown *Cooldown) error {
	members, err := m.castMembers(ctx, target.ID, cooldown)
	if errors.Is(err, ErrNotFound) {
		// The show is listed but its cast is gone upstream.
		m.logger.Warn("show_cast_missing", slog.Int("show_id", target.ID))
		members, err = nil, nil
	}
	if err != nil {
		return fmt.Errorf("cast of show %d: %w", target.ID, err)
	}

	target.Cast = SortCast(members)
	return nil
}

// retry calls fetch until it reports anything other than [ErrOverloaded],
// waiting out the rest of the cooldown window before each new attempt.
func retry[T any](ctx context.Context, m *Manager, cooldown *Cooldown, subject string, fetch func() (T, error)) (T, error) {
	var zero T

	for attempt := 1; ; attempt++ {
		result, err := fetch()
		if err == nil {
			cooldown.Touch()
			return result, nil
		}
		if !errors.Is(err, ErrOverloaded) {
			return zero, err
		}

		if m.maxRetries > 0 && attempt > m.maxRetries {
			return zero, fmt.Errorf("%s: catalog still rate limiting after %d retries", subject, m.maxRetries)
		}

		m.logger.Warn("catalog_source_overloaded",
			slog.String("subject", subject),
			slog.Int("attempt", attempt),
			slog.Duration("wait", cooldown.Remaining()),
		)

		if _, err := cooldown.Wait(ctx); err != nil {
			return zero, fmt.Errorf("%s: cooldown aborted: %w", subject, err)
		}
	}
}
