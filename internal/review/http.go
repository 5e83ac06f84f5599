// Copyright (c) 2026 MangaList. All rights reserved.

/*
HTTP interface for reviews and reactions.

# Routing Strategy

  - Manga-scoped (mounted at /manga/{mangaID}/reviews): listing is public,
    creation requires authentication.
  - Review-scoped (mounted at /reviews): all endpoints require
    authentication; mutation is restricted to the author or an admin.

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mangalist/api/internal/platform/middleware"
	requestutil "github.com/mangalist/api/internal/platform/request"
	"github.com/mangalist/api/internal/platform/respond"
	"github.com/mangalist/api/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for reviews and reactions.
type Handler struct {
	service *Service
}

// NewHandler constructs a new review [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// MangaRoutes returns the router for a manga's review collection. It is
// mounted under /manga/{mangaID}/reviews and reads the manga identifier
// from the parent route.
func (handler *Handler) MangaRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listReviews)

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Post("/", handler.createReview)
	})

	return router
}

// Routes returns the router for operations on individual reviews.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	router.Patch("/{id}", handler.updateReview)
	router.Delete("/{id}", handler.deleteReview)
	router.Post("/{id}/like", handler.toggleLike)

	return router
}

// # Collection Endpoints

/*
GET /api/v1/manga/{mangaID}/reviews.

Description: Retrieves a paginated list of a manga's reviews with author
usernames.

Request:
  - mangaID: string (UUID)
  - sort_by: string (likes, newest)
  - skip: int
  - limit: int

Response:
  - 200: []Review: Paginated review list
  - 400: ErrValidation: Invalid manga identifier
  - 404: ErrNotFound: Manga not found
*/
func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	mangaID := requestutil.Param(request, "mangaID")
	sort := SortKey(request.URL.Query().Get("sort_by"))

	reviews, total, err := handler.service.ListByManga(request.Context(), mangaID, sort, paginationParams.Limit, paginationParams.Skip)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(paginationParams.Skip, paginationParams.Limit, total))
}

/*
POST /api/v1/manga/{mangaID}/reviews.

Description: Records the caller's review for a manga and refreshes the
manga's aggregated rating. One review per user per manga.

Request:
  - mangaID: string (UUID)
  - Body: ReviewInput: JSON object

Response:
  - 201: Review: Created review
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Missing or invalid token
  - 404: ErrNotFound: Manga not found
  - 409: ErrConflict: Caller already reviewed this manga
*/
func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ReviewInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	mangaID := requestutil.Param(request, "mangaID")

	created, err := handler.service.CreateReview(request.Context(), userID, mangaID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

// # Item Endpoints

/*
PATCH /api/v1/reviews/{id}.

Description: Applies a partial update to the caller's review. A changed
rating refreshes the manga's aggregated score.

Request:
  - id: string (UUID)
  - Body: ReviewPatch: JSON object

Response:
  - 200: Review: Updated review
  - 403: ErrForbidden: Not the author and not an admin
  - 404: ErrNotFound: Review not found
*/
func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch ReviewPatch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.UpdateReview(request.Context(), claims, requestutil.Param(request, "id"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
DELETE /api/v1/reviews/{id}.

Description: Removes the caller's review and refreshes the manga's
aggregated rating.

Request:
  - id: string (UUID)

Response:
  - 204: No Content
  - 403: ErrForbidden: Not the author and not an admin
  - 404: ErrNotFound: Review not found
*/
func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteReview(request.Context(), claims, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// likeResponse carries the updated review along with the caller's like state.
type likeResponse struct {
	Liked  bool    `json:"liked"`
	Review *Review `json:"review"`
}

/*
POST /api/v1/reviews/{id}/like.

Description: Toggles the caller's like on a review and returns the review
with its updated counter.

Request:
  - id: string (UUID)

Response:
  - 200: likeResponse: Updated review and like state
  - 401: ErrUnauthorized: Missing or invalid token
  - 404: ErrNotFound: Review not found
*/
func (handler *Handler) toggleLike(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, liked, err := handler.service.ToggleLike(request.Context(), userID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, likeResponse{Liked: liked, Review: review})
}
