// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tvmaze

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is an unexpected TVMaze response. It never matches
// show.ErrOverloaded or show.ErrNotFound.
type APIError struct {
	StatusCode int
	Path       string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("tvmaze API error: GET %s: status %d", e.Path, e.StatusCode)
}

// IsServerError reports whether TVMaze failed on its side.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// AsAPIError extracts an [*APIError] from err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
