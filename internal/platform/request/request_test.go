// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/showcast/internal/platform/apperr"
	requestutil "github.com/taibuivan/showcast/internal/platform/request"
)

// withParam routes a request through chi so URL parameters resolve.
func withParam(name, value string) *http.Request {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	routeContext := chi.NewRouteContext()
	routeContext.URLParams.Add(name, value)
	return request.WithContext(contextWithRoute(request, routeContext))
}

/*
TestID verifies identifier parsing and validation.
*/
func TestID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{"valid", "42", 42, false},
		{"zero", "0", 0, false},
		{"negative", "-3", 0, true},
		{"not_a_number", "dome", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := requestutil.ID(withParam("id", tt.raw), "id")

			if tt.wantErr {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

/*
TestQueryInt verifies the fallback and the integer check.
*/
func TestQueryInt(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		want    int
		wantErr bool
	}{
		{"missing", "/shows", 0, false},
		{"empty", "/shows?page=", 0, false},
		{"present", "/shows?page=3", 3, false},
		{"negative_is_parsed", "/shows?page=-1", -1, false},
		{"garbage", "/shows?page=three", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, tt.target, nil)

			value, err := requestutil.QueryInt(request, "page", 0)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, value)
		})
	}
}

func contextWithRoute(request *http.Request, routeContext *chi.Context) context.Context {
	return context.WithValue(request.Context(), chi.RouteCtxKey, routeContext)
}
