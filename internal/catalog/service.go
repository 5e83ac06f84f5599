// Copyright (c) 2026 MangaList. All rights reserved.

package catalog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mangalist/api/internal/platform/apperr"
	"github.com/mangalist/api/internal/platform/validate"
	"github.com/mangalist/api/pkg/uuid"
)

// # Service Layer

// Service orchestrates the business logic for the manga catalog.
// It acts as the primary entry point for catalog discovery and curation.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Discovery

/*
ListManga retrieves a paginated and filtered collection of manga.

Description: This method orchestrates the discovery phase of the catalog.
Criteria are normalized here (search term trimmed, tag filters cleaned) so
the repository always receives canonical input, then passed down for
database-level filtering and sorting.

Parameters:
  - context: context.Context
  - filter: Filter (Criteria for search, tags, year, rating, sort)
  - limit: int (Max records to return)
  - skip: int (Pagination cursor)

Returns:
  - []*Manga: Slice of matching catalog records
  - int: Total count of records matching the filter (for pagination metadata)
  - error: System or repository level errors
*/
func (service *Service) ListManga(context context.Context, filter Filter, limit, skip int) ([]*Manga, int, error) {

	// Criteria normalization
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Tags = NormalizeTagList(filter.Tags)
	filter.Sort = filter.Sort.Normalize()

	return service.repo.List(context, filter, limit, skip)
}

/*
GetManga fetches a single manga record by UUID.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Manga: The hydrated domain entity
  - error: apperr.NotFound if no match is found
*/
func (service *Service) GetManga(context context.Context, id string) (*Manga, error) {
	validator := &validate.Validator{}
	validator.UUID("id", id)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.FindByID(context, id)
}

/*
TagVocabulary returns the sorted, deduplicated set of tags in use across
the catalog.

Description: Raw distinct values come from storage; cleaning (bracket and
quote stripping, whitespace trimming) and case-insensitive deduplication
happen in [TagVocabulary] so the vocabulary reflects how tags are matched,
not how they were stored.

Parameters:
  - context: context.Context

Returns:
  - []string: Clean tag vocabulary in lexicographic order
  - error: Repository errors
*/
func (service *Service) TagVocabulary(context context.Context) ([]string, error) {
	raw, err := service.repo.DistinctTags(context)
	if err != nil {
		return nil, err
	}
	return TagVocabulary(raw), nil
}

// # Curation

// MangaInput carries client-supplied catalog metadata. The rating is
// deliberately absent: it is derived state and never accepted from input.
type MangaInput struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Year        *int     `json:"year"`
	Tags        []string `json:"tags"`
	CoverURL    *string  `json:"cover"`
}

// MangaPatch carries a partial update; nil fields are left untouched.
type MangaPatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Year        *int      `json:"year"`
	Tags        *[]string `json:"tags"`
	CoverURL    *string   `json:"cover"`
}

/*
CreateManga initialises a new catalog record.

Description: Performs business validation on the metadata, enforces title
uniqueness, generates a stable UUID v7 identity, and normalizes the tag
list before persisting. The stored rating starts at 0.0.

Parameters:
  - context: context.Context
  - input: MangaInput

Returns:
  - *Manga: The persisted entity
  - error: Validation, conflict, or persistence errors
*/
func (service *Service) CreateManga(context context.Context, input MangaInput) (*Manga, error) {

	input.Title = strings.TrimSpace(input.Title)

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 500)
	if input.Year != nil {
		validator.Range(FieldYear, *input.Year, 1000, 9999)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Title uniqueness check
	if _, err := service.repo.FindByTitle(context, input.Title); err == nil {
		return nil, apperr.Conflict("Manga with this title already exists")
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	now := time.Now().UTC()
	manga := &Manga{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Year:        input.Year,
		Tags:        NormalizeTagList(input.Tags),
		CoverURL:    input.CoverURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.repo.Create(context, manga); err != nil {
		return nil, err
	}

	service.logger.Info("manga_created",
		slog.String("manga_id", manga.ID),
		slog.String("title", manga.Title),
	)

	return manga, nil
}

/*
UpdateManga applies a partial update to an existing catalog record.

Description: Nil patch fields are left untouched. A changed title is
re-checked for uniqueness. The derived rating is never writable through
this path.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - patch: MangaPatch

Returns:
  - *Manga: The updated entity
  - error: Validation, not-found, conflict, or persistence errors
*/
func (service *Service) UpdateManga(context context.Context, id string, patch MangaPatch) (*Manga, error) {

	manga, err := service.GetManga(context, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, 500)

		// Re-check uniqueness only when the title actually changes.
		if title != manga.Title && !validator.HasErrors() {
			if _, err := service.repo.FindByTitle(context, title); err == nil {
				return nil, apperr.Conflict("Manga with this title already exists")
			} else if !apperr.IsNotFound(err) {
				return nil, err
			}
		}
		manga.Title = title
	}

	if patch.Year != nil {
		validator.Range(FieldYear, *patch.Year, 1000, 9999)
		manga.Year = patch.Year
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if patch.Description != nil {
		manga.Description = patch.Description
	}
	if patch.Tags != nil {
		manga.Tags = NormalizeTagList(*patch.Tags)
	}
	if patch.CoverURL != nil {
		manga.CoverURL = patch.CoverURL
	}
	manga.UpdatedAt = time.Now().UTC()

	if err := service.repo.Update(context, manga); err != nil {
		return nil, err
	}

	service.logger.Info("manga_updated", slog.String("manga_id", manga.ID))

	return manga, nil
}

/*
DeleteManga removes a manga and, via cascading constraints, its reviews,
likes, and library entries.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: apperr.NotFound or persistence errors
*/
func (service *Service) DeleteManga(context context.Context, id string) error {
	validator := &validate.Validator{}
	validator.UUID("id", id)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("manga_deleted", slog.String("manga_id", id))

	return nil
}

// # Rating Aggregation

/*
RecomputeRating re-derives a manga's stored rating from its current reviews.

Description: Called by the review workflow after any mutation that changes
the review set. A manga that no longer exists is a normal race (the review
cascade fired after a catalog delete), so NotFound is logged and swallowed
rather than propagated.

Parameters:
  - context: context.Context
  - mangaID: string (UUID)

Returns:
  - error: Persistence errors only; a missing manga is not an error here
*/
func (service *Service) RecomputeRating(context context.Context, mangaID string) error {
	err := service.repo.RecomputeRating(context, mangaID)
	if err != nil {
		if apperr.IsNotFound(err) {
			service.logger.Debug("rating_recompute_skipped_missing_manga",
				slog.String("manga_id", mangaID))
			return nil
		}
		return err
	}

	service.logger.Debug("rating_recomputed", slog.String("manga_id", mangaID))

	return nil
}
