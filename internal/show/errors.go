// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package show

import (
	"errors"
	"fmt"
)

// # Error Taxonomy
//
// Callers of the [Manager] only ever observe success, [ErrNotFound] (possibly
// as [ErrPageNotFound]) or an unexpected error. [ErrOverloaded] is absorbed.

var (
	// ErrNotFound reports that the requested show or page does not exist upstream.
	ErrNotFound = errors.New("not found")

	// ErrPageNotFound reports a page number past the last catalog page.
	// It matches [ErrNotFound] with errors.Is.
	ErrPageNotFound = fmt.Errorf("page %w", ErrNotFound)

	// ErrOverloaded reports that the catalog rate limiter rejected the call.
	ErrOverloaded = errors.New("catalog source overloaded")
)
