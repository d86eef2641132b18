// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package show

import (
	"fmt"
	"net/http"
	"time"

	"github.com/taibuivan/showcast/pkg/slice"
)

// # Presentation Resources

// BirthdayLayout is the calendar-date format of birthdays on the wire.
const BirthdayLayout = time.DateOnly

// Link is hypermedia metadata pointing at a related resource.
type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

// CastMemberResource is the API representation of a [CastMember].
type CastMemberResource struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Birthday *string `json:"birthday"`
}

// ShowResource is the API representation of a [Show] with its links.
type ShowResource struct {
	ID    int                  `json:"id"`
	Name  string               `json:"name"`
	Cast  []CastMemberResource `json:"cast"`
	Links []Link               `json:"links"`
}

// ArchivedShowResource is the API representation of an [ArchivedShow].
type ArchivedShowResource struct {
	ShowResource
	Slug     string    `json:"slug"`
	Page     int       `json:"page"`
	SyncedAt time.Time `json:"synced_at"`
}

// NewCastMemberResource formats a cast member for the API.
func NewCastMemberResource(member CastMember) CastMemberResource {
	resource := CastMemberResource{ID: member.ID, Name: member.Name}
	if member.BirthDate != nil {
		birthday := member.BirthDate.Format(BirthdayLayout)
		resource.Birthday = &birthday
	}
	return resource
}

// NewShowResource formats a show for the API and decorates it with its links.
func NewShowResource(basePath string, item Show) ShowResource {
	return ShowResource{
		ID:    item.ID,
		Name:  item.Name,
		Cast:  slice.Map(item.Cast, NewCastMemberResource),
		Links: ShowLinks(basePath, item.ID),
	}
}

// NewArchivedShowResource formats an archived show for the API.
func NewArchivedShowResource(basePath string, item ArchivedShow) ArchivedShowResource {
	return ArchivedShowResource{
		ShowResource: NewShowResource(basePath, item.Show),
		Slug:         item.Slug,
		Page:         item.Page,
		SyncedAt:     item.SyncedAt,
	}
}

// # Links

// ShowLinks returns the self and castmembers links of one show.
func ShowLinks(basePath string, showID int) []Link {
	self := fmt.Sprintf("%s/shows/%d", basePath, showID)
	return []Link{
		{Href: self, Rel: "self", Method: http.MethodGet},
		{Href: self + "/castmembers", Rel: "castmembers", Method: http.MethodGet},
	}
}

// PageLinks returns the navigation links of a catalog page.
//
// The catalog does not announce its last page, so next is always present and
// leads to a 404 once the catalog runs out.
func PageLinks(basePath string, page int) []Link {
	links := []Link{
		{Href: pageHref(basePath, page), Rel: "self", Method: http.MethodGet},
		{Href: pageHref(basePath, page+1), Rel: "next", Method: http.MethodGet},
	}
	if page > 0 {
		links = append(links, Link{Href: pageHref(basePath, page-1), Rel: "prev", Method: http.MethodGet})
	}
	return links
}

func pageHref(basePath string, page int) string {
	return fmt.Sprintf("%s/shows?page=%d", basePath, page)
}
