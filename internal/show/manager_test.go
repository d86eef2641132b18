// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package show_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/showcast/internal/show"
)

// testCooldown keeps overload tests fast while staying well above scheduler noise.
const testCooldown = 150 * time.Millisecond

func castNames(members []show.CastMember) []string {
	names := make([]string, 0, len(members))
	for _, member := range members {
		names = append(names, member.Name)
	}
	return names
}

/*
TestManager_GetShows_SortsCast verifies the aggregated page and the cast order.
*/
func TestManager_GetShows_SortsCast(t *testing.T) {
	source := newMockedSource()
	manager := show.NewManager(source, discardLogger())

	shows, err := manager.GetShows(context.Background(), 0)

	require.NoError(t, err)
	require.Len(t, shows, 2)

	// 1. Source order is preserved
	assert.Equal(t, 1, shows[0].ID)
	assert.Equal(t, "The Foobar Show", shows[0].Name)
	assert.Equal(t, 2, shows[1].ID)

	// 2. Cast is sorted oldest first
	assert.Equal(t, []string{"Lorem Ipsum", "Foo Bar"}, castNames(shows[0].Cast))
	assert.Equal(t, []string{"Sit Amet", "Dolor Sit"}, castNames(shows[1].Cast))

	source.AssertExpectations(t)
}

/*
TestManager_GetShows_WaitsOutOverload verifies that a single overload costs one
cooldown window and loses nothing.
*/
func TestManager_GetShows_WaitsOutOverload(t *testing.T) {
	source := &mockSource{}
	source.On("Shows", 0).Return(mockedShows(), nil)
	source.On("CastMembers", 1).Return(nil, show.ErrOverloaded).Once()
	source.On("CastMembers", 1).Return(mockedCastMembers(1), nil)
	source.On("CastMembers", 2).Return(mockedCastMembers(2), nil)

	manager := show.NewManager(source, discardLogger(), show.WithCooldown(testCooldown))

	start := time.Now()
	shows, err := manager.GetShows(context.Background(), 0)
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.Len(t, shows, 2)
	assert.GreaterOrEqual(t, elapsed, testCooldown)

	assert.Equal(t, []string{"Lorem Ipsum", "Foo Bar"}, castNames(shows[0].Cast))
	assert.Equal(t, []string{"Sit Amet", "Dolor Sit"}, castNames(shows[1].Cast))

	source.AssertNumberOfCalls(t, "CastMembers", 3)
}

/*
TestManager_GetShows_RetriesOverloadedPage verifies that the page fetch itself
is retried rather than surfaced.
*/
func TestManager_GetShows_RetriesOverloadedPage(t *testing.T) {
	source := &mockSource{}
	source.On("Shows", 0).Return(nil, show.ErrOverloaded).Once()
	source.On("Shows", 0).Return(mockedShows(), nil)
	source.On("CastMembers", 1).Return(mockedCastMembers(1), nil)
	source.On("CastMembers", 2).Return(mockedCastMembers(2), nil)

	manager := show.NewManager(source, discardLogger(), show.WithCooldown(testCooldown))

	shows, err := manager.GetShows(context.Background(), 0)

	require.NoError(t, err)
	assert.Len(t, shows, 2)
	assert.NotErrorIs(t, err, show.ErrOverloaded)
	source.AssertNumberOfCalls(t, "Shows", 2)
}

/*
TestManager_GetShows_PageNotFound verifies that a missing page is propagated untouched.
*/
func TestManager_GetShows_PageNotFound(t *testing.T) {
	source := &mockSource{}
	source.On("Shows", 9000).Return(nil, show.ErrPageNotFound)

	manager := show.NewManager(source, discardLogger())

	shows, err := manager.GetShows(context.Background(), 9000)

	require.Error(t, err)
	assert.Nil(t, shows)
	assert.ErrorIs(t, err, show.ErrNotFound)
	assert.ErrorIs(t, err, show.ErrPageNotFound)
	assert.NotErrorIs(t, err, show.ErrOverloaded)

	source.AssertNumberOfCalls(t, "Shows", 1)
	source.AssertNotCalled(t, "CastMembers", 1)
}

/*
TestManager_GetShows_UnexpectedError verifies that other failures are not retried.
*/
func TestManager_GetShows_UnexpectedError(t *testing.T) {
	boom := errors.New("connection reset by peer")

	source := &mockSource{}
	source.On("Shows", 0).Return(mockedShows(), nil)
	source.On("CastMembers", 1).Return(nil, boom)

	manager := show.NewManager(source, discardLogger())

	_, err := manager.GetShows(context.Background(), 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, show.ErrNotFound)
	source.AssertNumberOfCalls(t, "CastMembers", 1)
}

/*
TestManager_GetShows_MissingCast verifies that a listed show without a cast
comes back with an empty list instead of failing the page.
*/
func TestManager_GetShows_MissingCast(t *testing.T) {
	source := &mockSource{}
	source.On("Shows", 0).Return(mockedShows(), nil)
	source.On("CastMembers", 1).Return(nil, show.ErrNotFound)
	source.On("CastMembers", 2).Return(mockedCastMembers(2), nil)

	manager := show.NewManager(source, discardLogger())

	shows, err := manager.GetShows(context.Background(), 0)

	require.NoError(t, err)
	require.Len(t, shows, 2)
	assert.NotNil(t, shows[0].Cast)
	assert.Empty(t, shows[0].Cast)
	assert.Len(t, shows[1].Cast, 2)
}

/*
TestManager_GetShows_CancelDuringCooldown verifies that cancellation aborts the wait.
*/
func TestManager_GetShows_CancelDuringCooldown(t *testing.T) {
	source := &mockSource{}
	source.On("Shows", 0).Return(mockedShows(), nil)
	source.On("CastMembers", 1).Return(nil, show.ErrOverloaded)

	manager := show.NewManager(source, discardLogger(), show.WithCooldown(time.Minute))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := manager.GetShows(ctx, 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, show.ErrOverloaded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

/*
TestManager_GetShows_MaxRetries verifies that exhausted retries become an
unexpected error rather than an overload.
*/
func TestManager_GetShows_MaxRetries(t *testing.T) {
	source := &mockSource{}
	source.On("Shows", 0).Return(mockedShows(), nil)
	source.On("CastMembers", 1).Return(nil, show.ErrOverloaded)

	manager := show.NewManager(source, discardLogger(),
		show.WithCooldown(10*time.Millisecond),
		show.WithMaxRetries(2),
	)

	_, err := manager.GetShows(context.Background(), 0)

	require.Error(t, err)
	assert.NotErrorIs(t, err, show.ErrOverloaded)
	assert.Contains(t, err.Error(), "after 2 retries")
	source.AssertNumberOfCalls(t, "CastMembers", 3)
}

/*
TestManager_GetShows_Concurrent verifies that parallel workers share one
cooldown window and still return the page in source order.
*/
func TestManager_GetShows_Concurrent(t *testing.T) {
	source := &mockSource{}
	source.On("Shows", 0).Return(mockedShows(), nil)
	source.On("CastMembers", 1).Return(nil, show.ErrOverloaded).Once()
	source.On("CastMembers", 1).Return(mockedCastMembers(1), nil)
	source.On("CastMembers", 2).Return(nil, show.ErrOverloaded).Once()
	source.On("CastMembers", 2).Return(mockedCastMembers(2), nil)

	manager := show.NewManager(source, discardLogger(),
		show.WithCooldown(testCooldown),
		show.WithConcurrency(4),
	)

	start := time.Now()
	shows, err := manager.GetShows(context.Background(), 0)
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.Len(t, shows, 2)
	assert.Equal(t, 1, shows[0].ID)
	assert.Equal(t, 2, shows[1].ID)
	assert.Equal(t, []string{"Lorem Ipsum", "Foo Bar"}, castNames(shows[0].Cast))
	assert.Equal(t, []string{"Sit Amet", "Dolor Sit"}, castNames(shows[1].Cast))

	// Both overloads fall in the same window, so only one window is waited.
	assert.GreaterOrEqual(t, elapsed, testCooldown)
	assert.Less(t, elapsed, 2*testCooldown)
}

/*
TestManager_GetShows_DoesNotMutateSource verifies that aggregated shows are
owned by the caller.
*/
func TestManager_GetShows_DoesNotMutateSource(t *testing.T) {
	page := mockedShows()

	source := &mockSource{}
	source.On("Shows", 0).Return(page, nil)
	source.On("CastMembers", 1).Return(mockedCastMembers(1), nil)
	source.On("CastMembers", 2).Return(mockedCastMembers(2), nil)

	manager := show.NewManager(source, discardLogger())

	_, err := manager.GetShows(context.Background(), 0)

	require.NoError(t, err)
	assert.Nil(t, page[0].Cast)
	assert.Nil(t, page[1].Cast)
}

/*
TestManager_GetShow verifies details plus sorted cast, and idempotence.
*/
func TestManager_GetShow(t *testing.T) {
	source := &mockSource{}
	source.On("Show", 1).Return(&show.Show{ID: 1, Name: "The Foobar Show"}, nil)
	source.On("CastMembers", 1).Return(mockedCastMembers(1), nil)

	manager := show.NewManager(source, discardLogger())

	first, err := manager.GetShow(context.Background(), 1)
	require.NoError(t, err)

	second, err := manager.GetShow(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "The Foobar Show", first.Name)
	assert.Equal(t, []string{"Lorem Ipsum", "Foo Bar"}, castNames(first.Cast))
	assert.Equal(t, first, second)
}

/*
TestManager_GetShow_NotFound verifies that absence is reported without retry.
*/
func TestManager_GetShow_NotFound(t *testing.T) {
	source := &mockSource{}
	source.On("Show", 404).Return(nil, show.ErrNotFound)

	manager := show.NewManager(source, discardLogger())

	result, err := manager.GetShow(context.Background(), 404)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, show.ErrNotFound)
	source.AssertNumberOfCalls(t, "Show", 1)
	source.AssertNotCalled(t, "CastMembers", 404)
}

/*
TestManager_GetShow_NilWithoutError verifies that a source reporting neither
a show nor an error is treated as absence.
*/
func TestManager_GetShow_NilWithoutError(t *testing.T) {
	source := &mockSource{}
	source.On("Show", 7).Return(nil, nil)

	manager := show.NewManager(source, discardLogger())

	_, err := manager.GetShow(context.Background(), 7)

	assert.ErrorIs(t, err, show.ErrNotFound)
}

/*
TestManager_GetCastMembers verifies the raw passthrough keeps source order.
*/
func TestManager_GetCastMembers(t *testing.T) {
	source := &mockSource{}
	source.On("CastMembers", 1).Return(nil, show.ErrOverloaded).Once()
	source.On("CastMembers", 1).Return(mockedCastMembers(1), nil)
	source.On("CastMembers", 3).Return(nil, show.ErrNotFound)

	manager := show.NewManager(source, discardLogger(), show.WithCooldown(10*time.Millisecond))

	members, err := manager.GetCastMembers(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Foo Bar", "Lorem Ipsum"}, castNames(members))

	_, err = manager.GetCastMembers(context.Background(), 3)
	assert.ErrorIs(t, err, show.ErrNotFound)
}
