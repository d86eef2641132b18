// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package show

import (
	"slices"
)

// SortCast returns a copy of members ordered by birth date, oldest first.
//
// Members without a birth date come first. Members born on the same day keep
// the order the catalog returned them in.
func SortCast(members []CastMember) []CastMember {
	sorted := make([]CastMember, len(members))
	copy(sorted, members)

	slices.SortStableFunc(sorted, compareBirthDate)
	return sorted
}

func compareBirthDate(a, b CastMember) int {
	switch {
	case a.BirthDate == nil && b.BirthDate == nil:
		return 0
	case a.BirthDate == nil:
		return -1
	case b.BirthDate == nil:
		return 1
	default:
		return a.BirthDate.Compare(*b.BirthDate)
	}
}
