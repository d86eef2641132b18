// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package show_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/taibuivan/showcast/internal/show"
)

// mockSource is the testify double for [show.Source].
type mockSource struct {
	mock.Mock
}

func (m *mockSource) Shows(ctx context.Context, page int) ([]show.Show, error) {
	args := m.Called(page)
	shows, _ := args.Get(0).([]show.Show)
	return shows, args.Error(1)
}

func (m *mockSource) Show(ctx context.Context, id int) (*show.Show, error) {
	args := m.Called(id)
	result, _ := args.Get(0).(*show.Show)
	return result, args.Error(1)
}

func (m *mockSource) CastMembers(ctx context.Context, id int) ([]show.CastMember, error) {
	args := m.Called(id)
	members, _ := args.Get(0).([]show.CastMember)
	return members, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func date(year int, month time.Month, day int) *time.Time {
	value := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &value
}

func mockedShows() []show.Show {
	return []show.Show{
		{ID: 1, Name: "The Foobar Show"},
		{ID: 2, Name: "The Baz Show"},
	}
}

func mockedCastMembers(showID int) []show.CastMember {
	if showID == 1 {
		return []show.CastMember{
			{ID: 1, Name: "Foo Bar", BirthDate: date(1967, time.April, 12)},
			{ID: 2, Name: "Lorem Ipsum", BirthDate: date(1948, time.August, 21)},
		}
	}

	return []show.CastMember{
		{ID: 1, Name: "Sit Amet", BirthDate: date(1984, time.December, 9)},
		{ID: 2, Name: "Dolor Sit", BirthDate: date(1993, time.June, 5)},
	}
}

// newMockedSource wires page 0 with the two mocked shows and their casts.
func newMockedSource() *mockSource {
	source := &mockSource{}
	source.On("Shows", 0).Return(mockedShows(), nil)
	source.On("CastMembers", 1).Return(mockedCastMembers(1), nil)
	source.On("CastMembers", 2).Return(mockedCastMembers(2), nil)
	return source
}
