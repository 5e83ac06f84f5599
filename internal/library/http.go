// Copyright (c) 2026 MangaList. All rights reserved.

/*
HTTP interface for reading lists.

# Routing Strategy

  - /library (mounted): the caller's own list requires authentication for
    every operation; another user's list is publicly viewable by user ID.
*/
package library

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mangalist/api/internal/platform/middleware"
	requestutil "github.com/mangalist/api/internal/platform/request"
	"github.com/mangalist/api/internal/platform/respond"
	"github.com/mangalist/api/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for reading lists.
type Handler struct {
	service *Service
}

// NewHandler constructs a new library [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the library's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public View
	// The {id} segment is a user ID on GET and a manga ID on PATCH/DELETE;
	// chi requires a single parameter name per position.
	router.Get("/{id}", handler.listUserLibrary)

	// ## Own Library (Authenticated)
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Get("/", handler.listOwnLibrary)
		authed.Post("/", handler.addEntry)
		authed.Patch("/{id}", handler.updateEntry)
		authed.Delete("/{id}", handler.removeEntry)
	})

	return router
}

// # Library Endpoints

/*
GET /api/v1/library.

Description: Retrieves the caller's library, newest activity first.

Request:
  - status: string (reading, completed, on-hold, dropped, plan-to-read)
  - skip: int
  - limit: int

Response:
  - 200: []Entry: Paginated library entries
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) listOwnLibrary(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.respondList(writer, request, userID)
}

/*
GET /api/v1/library/{userID}.

Description: Retrieves another user's library for public profile pages.

Request:
  - userID: string (UUID)
  - status: string
  - skip: int
  - limit: int

Response:
  - 200: []Entry: Paginated library entries
  - 400: ErrValidation: Invalid user identifier
  - 404: ErrNotFound: User not found
*/
func (handler *Handler) listUserLibrary(writer http.ResponseWriter, request *http.Request) {
	handler.respondList(writer, request, requestutil.Param(request, "id"))
}

// respondList runs the shared list flow for both the caller's own library
// and the public per-user view.
func (handler *Handler) respondList(writer http.ResponseWriter, request *http.Request, userID string) {
	paginationParams := pagination.FromRequest(request)
	status := Status(request.URL.Query().Get("status"))

	entries, total, err := handler.service.ListEntries(request.Context(), userID, status, paginationParams.Limit, paginationParams.Skip)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(paginationParams.Skip, paginationParams.Limit, total))
}

/*
POST /api/v1/library.

Description: Starts tracking a manga in the caller's library. An omitted
status defaults to plan-to-read.

Request (Body):
  - EntryInput: JSON object

Response:
  - 201: Entry: Created entry
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: ErrNotFound: Manga not found
  - 409: ErrConflict: Manga already tracked
*/
func (handler *Handler) addEntry(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input EntryInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.AddEntry(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}

/*
PATCH /api/v1/library/{mangaID}.

Description: Updates the status and/or progress of a tracked manga.

Request:
  - mangaID: string (UUID)
  - Body: EntryPatch: JSON object

Response:
  - 200: Entry: Updated entry
  - 404: ErrNotFound: Manga not tracked
*/
func (handler *Handler) updateEntry(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch EntryPatch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.UpdateEntry(request.Context(), userID, requestutil.Param(request, "id"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

/*
DELETE /api/v1/library/{mangaID}.

Description: Stops tracking a manga.

Request:
  - mangaID: string (UUID)

Response:
  - 204: No Content
  - 404: ErrNotFound: Manga not tracked
*/
func (handler *Handler) removeEntry(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveEntry(request.Context(), userID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
