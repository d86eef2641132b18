// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/showcast/internal/api"
	"github.com/taibuivan/showcast/internal/platform/config"
	"github.com/taibuivan/showcast/internal/platform/constants"
	"github.com/taibuivan/showcast/internal/show"
)

// staticSource serves one page with one show and no cast.
type staticSource struct{}

func (staticSource) Shows(ctx context.Context, page int) ([]show.Show, error) {
	if page > 0 {
		return nil, show.ErrPageNotFound
	}
	return []show.Show{{ID: 1, Name: "Under the Dome"}}, nil
}

func (staticSource) Show(ctx context.Context, id int) (*show.Show, error) {
	if id != 1 {
		return nil, show.ErrNotFound
	}
	return &show.Show{ID: 1, Name: "Under the Dome"}, nil
}

func (staticSource) CastMembers(ctx context.Context, id int) ([]show.CastMember, error) {
	return []show.CastMember{}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, cfg *config.Config, deps api.HealthDependencies) http.Handler {
	t.Helper()

	logger := discardLogger()
	liveness, readiness := api.NewHealthHandlers(deps, logger)

	server := api.NewServer(t.Context(), cfg, logger, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Shows:     show.NewHandler(show.NewManager(staticSource{}, logger)),
	})
	return server.Handler()
}

func get(handler http.Handler, target string, header http.Header) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, target, nil)
	for key, values := range header {
		request.Header[http.CanonicalHeaderKey(key)] = values
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestServer_Routes verifies that the catalog is mounted under the versioned prefix
and that the archive stays unmounted without a database.
*/
func TestServer_Routes(t *testing.T) {
	handler := newTestServer(t, &config.Config{ServerPort: "0", Environment: "production"}, api.HealthDependencies{})

	tests := []struct {
		target string
		status int
	}{
		{"/api/v1/shows", http.StatusOK},
		{"/api/v1/shows?page=1", http.StatusNotFound},
		{"/api/v1/shows/1", http.StatusOK},
		{"/api/v1/shows/1/castmembers", http.StatusOK},
		{"/api/v1/archive/shows", http.StatusNotFound},
		{"/health", http.StatusOK},
		{"/ready", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			recorder := get(handler, tt.target, nil)
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}

/*
TestServer_RequestID verifies that the correlation ID is echoed or generated.
*/
func TestServer_RequestID(t *testing.T) {
	handler := newTestServer(t, &config.Config{ServerPort: "0"}, api.HealthDependencies{})

	recorder := get(handler, "/health", http.Header{constants.HeaderXRequestID: {"req-123"}})
	assert.Equal(t, "req-123", recorder.Header().Get(constants.HeaderXRequestID))

	recorder = get(handler, "/health", nil)
	assert.NotEmpty(t, recorder.Header().Get(constants.HeaderXRequestID))
}

/*
TestServer_CORS verifies the allow list outside development.
*/
func TestServer_CORS(t *testing.T) {
	cfg := &config.Config{ServerPort: "0", Environment: "production", AllowedOrigins: "https://showcast.example"}
	handler := newTestServer(t, cfg, api.HealthDependencies{})

	recorder := get(handler, "/health", http.Header{constants.HeaderOrigin: {"https://showcast.example"}})
	assert.Equal(t, "https://showcast.example", recorder.Header().Get("Access-Control-Allow-Origin"))

	recorder = get(handler, "/health", http.Header{constants.HeaderOrigin: {"https://evil.example"}})
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

/*
TestReadiness verifies the degraded report when a dependency is down.
*/
func TestReadiness(t *testing.T) {
	handler := newTestServer(t, &config.Config{ServerPort: "0"}, api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return nil },
		CheckCache:    func(ctx context.Context) error { return errors.New("connection refused") },
	})

	recorder := get(handler, "/ready", nil)

	require.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"error":"One or more dependencies are unavailable",
		"code":"SERVICE_UNAVAILABLE",
		"details":[{"field":"redis","message":"connection refused"}]
	}`, recorder.Body.String())
}
