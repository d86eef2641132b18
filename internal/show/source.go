// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package show

import "context"

// # Catalog Source Contract

// Source supplies raw show and cast data from the external catalog.
//
// Implementations must keep the three outcomes apart: success, [ErrNotFound]
// and [ErrOverloaded]. An unrelated failure must never wrap [ErrOverloaded],
// otherwise the [Manager] waits for nothing; an overload must never be
// reported as success, otherwise the manager returns incomplete data.
type Source interface {
	/*
		Shows returns one page of shows without cast.

		Returns:
		  - []Show: Up to [PageSize] shows in catalog order
		  - error: [ErrPageNotFound], [ErrOverloaded] or an unexpected failure
	*/
	Shows(ctx context.Context, page int) ([]Show, error)

	/*
		Show returns the details of a single show without cast.

		Returns:
		  - *Show: The show
		  - error: [ErrNotFound] when absent, [ErrOverloaded] or an unexpected failure
	*/
	Show(ctx context.Context, id int) (*Show, error)

	/*
		CastMembers returns the cast of a show in catalog order.

		Returns:
		  - []CastMember: The unsorted cast
		  - error: [ErrNotFound] when absent, [ErrOverloaded] or an unexpected failure
	*/
	CastMembers(ctx context.Context, id int) ([]CastMember, error)
}
