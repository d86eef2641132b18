// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package show

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/showcast/internal/platform/apperr"
	"github.com/taibuivan/showcast/internal/platform/constants"
	requestutil "github.com/taibuivan/showcast/internal/platform/request"
	"github.com/taibuivan/showcast/internal/platform/respond"
	"github.com/taibuivan/showcast/internal/platform/validate"
	"github.com/taibuivan/showcast/pkg/pagination"
	"github.com/taibuivan/showcast/pkg/slice"
)

// # Catalog Handler

// Handler serves the live, aggregated catalog.
type Handler struct {
	manager  *Manager
	basePath string
}

// NewHandler creates a [Handler]. Links are rooted at [constants.APIBasePath].
func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager, basePath: constants.APIBasePath}
}

// Routes returns the router for /shows.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listShows)
	router.Get("/{id}", handler.getShow)
	router.Get("/{id}/castmembers", handler.listCastMembers)
	return router
}

/*
listShows handles GET /shows?page=N.

Description: A missing page means page 0. The request may block while the
catalog is rate limiting.
*/
func (handler *Handler) listShows(writer http.ResponseWriter, request *http.Request) {
	page, err := requestutil.QueryInt(request, "page", 0)
	if err == nil {
		err = (&validate.Validator{}).NonNegative("page", page).Err()
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	shows, err := handler.manager.GetShows(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, catalogError(err, "Page"))
		return
	}

	resources := slice.Map(shows, func(item Show) ShowResource {
		return NewShowResource(handler.basePath, item)
	})
	respond.Linked(writer, resources, PageLinks(handler.basePath, page))
}

// getShow handles GET /shows/{id}.
func (handler *Handler) getShow(writer http.ResponseWriter, request *http.Request) {
	showID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.manager.GetShow(request.Context(), showID)
	if err != nil {
		respond.Error(writer, request, catalogError(err, "Show"))
		return
	}

	respond.OK(writer, NewShowResource(handler.basePath, *result))
}

// listCastMembers handles GET /shows/{id}/castmembers. The cast is returned in catalog order.
func (handler *Handler) listCastMembers(writer http.ResponseWriter, request *http.Request) {
	showID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	members, err := handler.manager.GetCastMembers(request.Context(), showID)
	if err != nil {
		respond.Error(writer, request, catalogError(err, "Show"))
		return
	}

	respond.Linked(writer, slice.Map(members, NewCastMemberResource), ShowLinks(handler.basePath, showID))
}

// catalogError maps manager failures onto API errors. Anything but absence is a 500.
func catalogError(err error, resource string) *apperr.AppError {
	if errors.Is(err, ErrNotFound) {
		notFound := apperr.NotFound(resource)
		notFound.Cause = err
		return notFound
	}
	return apperr.Internal(err)
}

// # Archive Handler

// ArchiveHandler serves the persisted snapshot of the catalog.
type ArchiveHandler struct {
	repository Repository
	basePath   string
}

// NewArchiveHandler creates an [ArchiveHandler].
func NewArchiveHandler(repository Repository) *ArchiveHandler {
	return &ArchiveHandler{repository: repository, basePath: constants.APIBasePath}
}

// Routes returns the router for /archive.
func (handler *ArchiveHandler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/shows", handler.listShows)
	router.Get("/shows/{identifier}", handler.getShow)
	router.Get("/runs/latest", handler.latestRun)
	return router
}

// listShows handles GET /archive/shows?page=&limit=.
func (handler *ArchiveHandler) listShows(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	archived, total, err := handler.repository.List(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	resources := slice.Map(archived, func(item ArchivedShow) ArchivedShowResource {
		return NewArchivedShowResource(handler.basePath, item)
	})
	respond.Paginated(writer, resources, pagination.NewMeta(params.Page, params.Limit, total))
}

// getShow handles GET /archive/shows/{identifier}, by numeric ID or slug.
func (handler *ArchiveHandler) getShow(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.Param(request, "identifier")

	var (
		archived *ArchivedShow
		err      error
	)

	if showID, convErr := strconv.Atoi(identifier); convErr == nil {
		err = (&validate.Validator{}).NonNegative("identifier", showID).Err()
		if err == nil {
			archived, err = handler.repository.FindByID(request.Context(), showID)
		}
	} else {
		err = (&validate.Validator{}).Slug("identifier", identifier).Err()
		if err == nil {
			archived, err = handler.repository.FindBySlug(request.Context(), identifier)
		}
	}

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, NewArchivedShowResource(handler.basePath, *archived))
}

// latestRun handles GET /archive/runs/latest.
func (handler *ArchiveHandler) latestRun(writer http.ResponseWriter, request *http.Request) {
	run, err := handler.repository.LatestRun(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, run)
}
