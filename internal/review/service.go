// Copyright (c) 2026 MangaList. All rights reserved.

package review

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mangalist/api/internal/platform/apperr"
	"github.com/mangalist/api/internal/platform/sec"
	"github.com/mangalist/api/internal/platform/validate"
	"github.com/mangalist/api/pkg/uuid"
)

// # Service Layer

// Service orchestrates the business logic for reviews and reactions.
//
// Every mutation that changes a manga's review set (create, rating change,
// delete) notifies the recomputer so the catalog's stored rating stays the
// rounded mean of the live reviews. The notification happens after the
// review write commits; the recomputation itself reads the review set
// transactionally.
type Service struct {
	repo       Repository
	recomputer RatingRecomputer
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its repository and the catalog
// rating recomputer.
func NewService(repo Repository, recomputer RatingRecomputer, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		recomputer: recomputer,
		logger:     logger,
	}
}

// # Review Lookups

/*
ListByManga retrieves a manga's reviews, sorted and paginated.

Description: An unknown manga yields NotFound rather than an empty list, so
clients can tell "no reviews yet" from "no such manga".

Parameters:
  - context: context.Context
  - mangaID: string (UUID)
  - sort: SortKey (likes, newest)
  - limit: int
  - skip: int

Returns:
  - []*Review: Slice of reviews with author usernames
  - int: Total review count for the manga
  - error: Validation, not-found, or repository errors
*/
func (service *Service) ListByManga(context context.Context, mangaID string, sort SortKey, limit, skip int) ([]*Review, int, error) {
	validator := &validate.Validator{}
	validator.UUID(FieldMangaID, mangaID)
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	exists, err := service.repo.MangaExists(context, mangaID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, apperr.NotFound("Manga")
	}

	return service.repo.ListByManga(context, mangaID, sort.Normalize(), limit, skip)
}

// # Review Management

// ReviewInput carries the client-supplied fields of a review.
type ReviewInput struct {
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

// ReviewPatch carries a partial review update; nil fields are left untouched.
type ReviewPatch struct {
	Content *string `json:"content"`
	Rating  *int    `json:"rating"`
}

/*
CreateReview records a user's review for a manga and refreshes the manga's
aggregated rating.

Description: Enforces the one-review-per-user rule via the storage
constraint. The rating recomputation fires after the review is persisted.

Parameters:
  - context: context.Context
  - userID: string (Author, from the access token)
  - mangaID: string (UUID)
  - input: ReviewInput

Returns:
  - *Review: The persisted review
  - error: Validation, conflict, not-found, or persistence errors
*/
func (service *Service) CreateReview(context context.Context, userID, mangaID string, input ReviewInput) (*Review, error) {

	input.Content = strings.TrimSpace(input.Content)

	validator := &validate.Validator{}
	validator.UUID(FieldMangaID, mangaID)
	validator.Range(FieldRating, input.Rating, 1, 5)
	validator.MaxLen(FieldContent, input.Content, 5000)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	review := &Review{
		ID:        uuid.New(),
		UserID:    userID,
		MangaID:   mangaID,
		Content:   input.Content,
		Rating:    input.Rating,
		CreatedAt: time.Now().UTC(),
	}

	if err := service.repo.Create(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.String("review_id", review.ID),
		slog.String("manga_id", mangaID),
		slog.String("user_id", userID),
	)

	if err := service.recomputer.RecomputeRating(context, mangaID); err != nil {
		return nil, err
	}

	return review, nil
}

/*
UpdateReview applies a partial update to a review owned by the actor.

Description: Only the review's author or an admin may modify it. The
aggregated rating is refreshed only when the star rating actually changed;
content-only edits skip the recomputation.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims (Caller identity and role)
  - reviewID: string (UUID)
  - patch: ReviewPatch

Returns:
  - *Review: The updated review
  - error: Validation, forbidden, not-found, or persistence errors
*/
func (service *Service) UpdateReview(context context.Context, actor *sec.AuthClaims, reviewID string, patch ReviewPatch) (*Review, error) {

	review, err := service.repo.FindByID(context, reviewID)
	if err != nil {
		return nil, err
	}

	if err := authorize(actor, review.UserID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}

	ratingChanged := false
	if patch.Rating != nil {
		validator.Range(FieldRating, *patch.Rating, 1, 5)
		ratingChanged = *patch.Rating != review.Rating
		review.Rating = *patch.Rating
	}

	if patch.Content != nil {
		content := strings.TrimSpace(*patch.Content)
		validator.MaxLen(FieldContent, content, 5000)
		review.Content = content
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_updated", slog.String("review_id", review.ID))

	if ratingChanged {
		if err := service.recomputer.RecomputeRating(context, review.MangaID); err != nil {
			return nil, err
		}
	}

	return review, nil
}

/*
DeleteReview removes a review owned by the actor and refreshes the manga's
aggregated rating.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims
  - reviewID: string (UUID)

Returns:
  - error: Forbidden, not-found, or persistence errors
*/
func (service *Service) DeleteReview(context context.Context, actor *sec.AuthClaims, reviewID string) error {

	review, err := service.repo.FindByID(context, reviewID)
	if err != nil {
		return err
	}

	if err := authorize(actor, review.UserID); err != nil {
		return err
	}

	if err := service.repo.Delete(context, reviewID); err != nil {
		return err
	}

	service.logger.Warn("review_deleted",
		slog.String("review_id", reviewID),
		slog.String("deleted_by", actor.UserID),
	)

	return service.recomputer.RecomputeRating(context, review.MangaID)
}

// # Reactions

/*
ToggleLike flips the calling user's like on a review and returns the
review with its updated counter.

Parameters:
  - context: context.Context
  - userID: string
  - reviewID: string (UUID)

Returns:
  - *Review: The review after the toggle
  - bool: Whether the user likes the review after the toggle
  - error: Validation, not-found, or persistence errors
*/
func (service *Service) ToggleLike(context context.Context, userID, reviewID string) (*Review, bool, error) {
	validator := &validate.Validator{}
	validator.UUID("id", reviewID)
	if err := validator.Err(); err != nil {
		return nil, false, err
	}

	liked, likes, err := service.repo.ToggleLike(context, userID, reviewID)
	if err != nil {
		return nil, false, err
	}

	review, err := service.repo.FindByID(context, reviewID)
	if err != nil {
		return nil, false, err
	}
	review.Likes = likes

	service.logger.Debug("review_like_toggled",
		slog.String("review_id", reviewID),
		slog.String("user_id", userID),
		slog.Bool("liked", liked),
	)

	return review, liked, nil
}

// # Internal Helpers

// authorize permits the review's owner and admins; everyone else is rejected.
func authorize(actor *sec.AuthClaims, ownerID string) error {
	if actor.UserID == ownerID || sec.UserRole(actor.Role).AtLeast(sec.RoleAdmin) {
		return nil
	}
	return apperr.Forbidden("You may only modify your own reviews")
}
