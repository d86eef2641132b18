// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package show aggregates shows and their cast members from an external catalog.

The [Manager] is the heart of the package: it pulls a page of shows from a
[Source], attaches each show's cast sorted by birth date, and rides out the
upstream rate limiter with a single rolling [Cooldown] per aggregation pass.

Architecture:

  - Domain: [Show], [CastMember] and the sentinel errors in errors.go.
  - Core: [Manager], [Cooldown] and [SortCast].
  - Adapters: [CachedSource] (Redis) and [PostgresRepository] (archive).
  - Presentation: [Handler] maps manager results to the JSON API.
*/
package show

import (
	"time"

	"github.com/taibuivan/showcast/internal/platform/constants"
)

// # Domain Entities

// PageSize is the upper bound of shows the catalog returns for one page.
const PageSize = constants.CatalogPageSize

// Show is a catalog entry together with its cast.
//
// Cast is empty until the [Manager] populates it. Once populated it is sorted
// by birth date and never mutated again.
type Show struct {
	ID   int          `json:"id"`
	Name string       `json:"name"`
	Cast []CastMember `json:"cast"`
}

// CastMember is a person appearing in a show.
type CastMember struct {
	ID   int    `json:"id"`
	Name string `json:"name"`

	// BirthDate is nil when the catalog does not know it.
	BirthDate *time.Time `json:"birthday"`
}
