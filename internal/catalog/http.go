// Copyright (c) 2026 MangaList. All rights reserved.

/*
HTTP interface for catalog discovery and curation.

# Routing Strategy

  - Public (v1): Discovery endpoints accessible to all visitors
    (GET /manga, GET /manga/tags, GET /manga/{id}).
  - Restricted (v1): Mutative endpoints requiring the Admin role
    (POST, PATCH, DELETE).

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mangalist/api/internal/platform/middleware"
	requestutil "github.com/mangalist/api/internal/platform/request"
	"github.com/mangalist/api/internal/platform/respond"
	"github.com/mangalist/api/internal/platform/sec"
	"github.com/mangalist/api/pkg/convert"
	"github.com/mangalist/api/pkg/pagination"
	"github.com/mangalist/api/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for catalog discovery and curation.
// It translates web requests into domain service calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalog [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the catalog's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listManga)
	router.Get("/tags", handler.listTags)
	router.Get("/{id}", handler.getManga)

	// ## Catalog Curation (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createManga)
		admin.Patch("/{id}", handler.updateManga)
		admin.Delete("/{id}", handler.deleteManga)
	})

	return router
}

// # Discovery Endpoints

/*
GET /api/v1/manga.

Description: Retrieves a paginated list of manga from the catalog.
Supports filtering by title search, tags, release year, and minimum rating.

Request:
  - search: string (Case-insensitive title substring)
  - tags: []string (Repeated or comma-separated; all must match)
  - year: int (Exact release year)
  - min_rating: float (Inclusive rating floor)
  - sort_by: string (popular, rating, newest, title)
  - skip: int
  - limit: int

Response:
  - 200: []Manga: Paginated list of manga
*/
func (handler *Handler) listManga(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Search: queryParams.Get("search"),
		Tags:   query.StringSlice(queryParams["tags"]),
		Sort:   SortKey(queryParams.Get("sort_by")),
	}

	if year, err := strconv.Atoi(queryParams.Get("year")); err == nil {
		filter.Year = &year
	}

	// A missing or malformed min_rating parses to 0, which disables the filter.
	filter.MinRating = convert.ToFloat(queryParams.Get("min_rating"))

	mangaList, total, err := handler.service.ListManga(request.Context(), filter, paginationParams.Limit, paginationParams.Skip)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, mangaList, pagination.NewMeta(paginationParams.Skip, paginationParams.Limit, total))
}

/*
GET /api/v1/manga/tags.

Description: Returns the catalog's tag vocabulary: every distinct tag in
use, cleaned and deduplicated, in lexicographic order.

Response:
  - 200: []string: Sorted tag vocabulary
*/
func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.TagVocabulary(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tags)
}

/*
GET /api/v1/manga/{id}.

Description: Retrieves detailed metadata for a single manga by UUID.

Request:
  - id: string (UUID)

Response:
  - 200: Manga: Success
  - 400: ErrValidation: Invalid identifier format
  - 404: ErrNotFound: Manga not found
*/
func (handler *Handler) getManga(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	manga, err := handler.service.GetManga(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, manga)
}

// # Curation Endpoints

/*
POST /api/v1/manga.

Description: Creates a new manga entry in the catalog. The rating always
starts at 0.0 regardless of input.

Request (Body):
  - MangaInput: JSON object

Response:
  - 201: Manga: Created manga object
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: ErrForbidden: Insufficient permissions
  - 409: ErrConflict: Title already in use
*/
func (handler *Handler) createManga(writer http.ResponseWriter, request *http.Request) {
	var input MangaInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	manga, err := handler.service.CreateManga(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, manga)
}

/*
PATCH /api/v1/manga/{id}.

Description: Applies a partial metadata update. Absent fields are left
untouched; the derived rating cannot be written through this endpoint.

Request:
  - id: string (UUID)
  - Body: MangaPatch: JSON object

Response:
  - 200: Manga: Updated manga object
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: ErrNotFound: Manga not found
  - 409: ErrConflict: Title already in use
*/
func (handler *Handler) updateManga(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	var patch MangaPatch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	manga, err := handler.service.UpdateManga(request.Context(), id, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, manga)
}

/*
DELETE /api/v1/manga/{id}.

Description: Removes a manga and all dependent reviews, likes, and library
entries.

Request:
  - id: string (UUID)

Response:
  - 204: No Content
  - 404: ErrNotFound: Manga not found
*/
func (handler *Handler) deleteManga(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	if err := handler.service.DeleteManga(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
