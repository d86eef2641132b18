// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction, ensuring
consistent error handling and type safety.
*/
package requestutil

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/showcast/internal/platform/validate"
)

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
ID retrieves a named URL parameter as a non-negative integer identifier.

Returns:
  - int: The parsed identifier
  - error: VALIDATION_ERROR if the parameter is not a non-negative integer
*/
func ID(request *http.Request, name string) (int, error) {
	var id int

	v := &validate.Validator{}
	v.Integer(name, chi.URLParam(request, name), &id)
	if v.HasErrors() {
		return 0, v.Err()
	}

	return id, v.NonNegative(name, id).Err()
}

/*
QueryInt retrieves an optional integer query parameter.

Description: A missing or empty parameter yields fallback. A present value must
parse as an integer, but range checks are left to the caller.

Parameters:
  - request: *http.Request
  - name: string (query parameter name)
  - fallback: int (value used when the parameter is absent)

Returns:
  - int: The parsed value
  - error: VALIDATION_ERROR if the value is not an integer
*/
func QueryInt(request *http.Request, name string, fallback int) (int, error) {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}

	value := fallback
	if err := (&validate.Validator{}).Integer(name, raw, &value).Err(); err != nil {
		return 0, err
	}
	return value, nil
}
