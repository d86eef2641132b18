// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tvmaze

import (
	"time"

	"github.com/taibuivan/showcast/internal/show"
)

// birthdayLayout is the date format TVMaze uses for person birthdays.
const birthdayLayout = "2006-01-02"

// showResponse matches the subset of /shows and /shows/{id} we read.
type showResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// castResponse matches one entry of /shows/{id}/cast.
type castResponse struct {
	Person personResponse `json:"person"`
}

type personResponse struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Birthday *string `json:"birthday"`
}

func (s showResponse) toShow() show.Show {
	return show.Show{
		ID:   s.ID,
		Name: s.Name,
		Cast: []show.CastMember{},
	}
}

func (p personResponse) toCastMember() show.CastMember {
	return show.CastMember{
		ID:        p.ID,
		Name:      p.Name,
		BirthDate: parseBirthday(p.Birthday),
	}
}

// parseBirthday returns nil for missing or malformed dates.
func parseBirthday(raw *string) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}

	parsed, err := time.Parse(birthdayLayout, *raw)
	if err != nil {
		return nil
	}
	return &parsed
}
