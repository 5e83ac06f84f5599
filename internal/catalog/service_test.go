// Copyright (c) 2026 MangaList. All rights reserved.

package catalog_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangalist/api/internal/catalog"
	"github.com/mangalist/api/internal/platform/apperr"
)

// fakeRepository is an in-memory [catalog.Repository] that records the
// arguments it receives.
type fakeRepository struct {
	byID    map[string]*catalog.Manga
	byTitle map[string]*catalog.Manga

	lastFilter     catalog.Filter
	recomputedIDs  []string
	recomputeError error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byID:    make(map[string]*catalog.Manga),
		byTitle: make(map[string]*catalog.Manga),
	}
}

func (f *fakeRepository) List(_ context.Context, filter catalog.Filter, _, _ int) ([]*catalog.Manga, int, error) {
	f.lastFilter = filter
	return []*catalog.Manga{}, 0, nil
}

func (f *fakeRepository) DistinctTags(_ context.Context) ([]string, error) {
	return []string{"Action", " action ", "[Drama]"}, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*catalog.Manga, error) {
	if manga, ok := f.byID[id]; ok {
		return manga, nil
	}
	return nil, apperr.NotFound("Manga")
}

func (f *fakeRepository) FindByTitle(_ context.Context, title string) (*catalog.Manga, error) {
	if manga, ok := f.byTitle[title]; ok {
		return manga, nil
	}
	return nil, apperr.NotFound("Manga")
}

func (f *fakeRepository) Create(_ context.Context, manga *catalog.Manga) error {
	f.byID[manga.ID] = manga
	f.byTitle[manga.Title] = manga
	return nil
}

func (f *fakeRepository) Update(_ context.Context, manga *catalog.Manga) error {
	f.byID[manga.ID] = manga
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return apperr.NotFound("Manga")
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeRepository) RecomputeRating(_ context.Context, mangaID string) error {
	if f.recomputeError != nil {
		return f.recomputeError
	}
	f.recomputedIDs = append(f.recomputedIDs, mangaID)
	return nil
}

func newTestService(repo catalog.Repository) *catalog.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return catalog.NewService(repo, logger)
}

/*
TestListManga_NormalizesCriteria verifies the service hands the repository
canonical input: trimmed search, cleaned tags, and a recognized sort key.
*/
func TestListManga_NormalizesCriteria(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	filter := catalog.Filter{
		Search: "  berserk  ",
		Tags:   []string{" Action ", "", "[Drama]"},
		Sort:   catalog.SortKey("trending"),
	}

	_, _, err := service.ListManga(context.Background(), filter, 20, 0)
	require.NoError(t, err)

	assert.Equal(t, "berserk", repo.lastFilter.Search)
	assert.Equal(t, []string{"Action", "Drama"}, repo.lastFilter.Tags)
	assert.Equal(t, catalog.SortPopular, repo.lastFilter.Sort)
}

/*
TestCreateManga verifies identity generation, tag cleaning, and that a new
entry always starts with a zero rating.
*/
func TestCreateManga(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	description := "A dark fantasy epic."
	manga, err := service.CreateManga(context.Background(), catalog.MangaInput{
		Title:       "  Berserk  ",
		Description: &description,
		Tags:        []string{"'Action'", " Drama "},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, manga.ID)
	assert.Equal(t, "Berserk", manga.Title)
	assert.Equal(t, []string{"Action", "Drama"}, manga.Tags)
	assert.Zero(t, manga.Rating)
	assert.False(t, manga.CreatedAt.IsZero())
}

/*
TestCreateManga_Validation verifies an empty title is rejected before any
persistence happens.
*/
func TestCreateManga_Validation(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	_, err := service.CreateManga(context.Background(), catalog.MangaInput{Title: "   "})

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Empty(t, repo.byID)
}

/*
TestCreateManga_DuplicateTitle verifies title uniqueness surfaces as a
conflict.
*/
func TestCreateManga_DuplicateTitle(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	_, err := service.CreateManga(context.Background(), catalog.MangaInput{Title: "Berserk"})
	require.NoError(t, err)

	_, err = service.CreateManga(context.Background(), catalog.MangaInput{Title: "Berserk"})

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

/*
TestUpdateManga verifies partial-update semantics: nil fields untouched,
provided fields applied, the derived rating left alone.
*/
func TestUpdateManga(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, err := service.CreateManga(context.Background(), catalog.MangaInput{Title: "Berserk"})
	require.NoError(t, err)
	created.Rating = 4.5 // simulate an aggregated rating already in place

	newYear := 1989
	updated, err := service.UpdateManga(context.Background(), created.ID, catalog.MangaPatch{Year: &newYear})
	require.NoError(t, err)

	assert.Equal(t, "Berserk", updated.Title)
	assert.Equal(t, 1989, *updated.Year)
	assert.Equal(t, 4.5, updated.Rating)
}

/*
TestUpdateManga_NotFound verifies a missing manga surfaces as NOT_FOUND.
*/
func TestUpdateManga_NotFound(t *testing.T) {
	service := newTestService(newFakeRepository())

	title := "Ghost"
	_, err := service.UpdateManga(context.Background(),
		"0190b7c4-0000-7000-8000-000000000000", catalog.MangaPatch{Title: &title})

	assert.True(t, apperr.IsNotFound(err))
}

/*
TestTagVocabulary_Service verifies raw storage values are cleaned and
deduplicated on the way out.
*/
func TestTagVocabulary_Service(t *testing.T) {
	service := newTestService(newFakeRepository())

	vocabulary, err := service.TagVocabulary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Action", "Drama"}, vocabulary)
}

/*
TestRecomputeRating_SwallowsNotFound verifies that recomputing for a manga
deleted mid-flight is treated as a no-op, not an error.
*/
func TestRecomputeRating_SwallowsNotFound(t *testing.T) {
	repo := newFakeRepository()
	repo.recomputeError = apperr.NotFound("Manga")
	service := newTestService(repo)

	err := service.RecomputeRating(context.Background(), "0190b7c4-0000-7000-8000-000000000000")

	assert.NoError(t, err)
}

/*
TestRecomputeRating_PropagatesFailures verifies non-NotFound errors still
reach the caller.
*/
func TestRecomputeRating_PropagatesFailures(t *testing.T) {
	repo := newFakeRepository()
	repo.recomputeError = apperr.Internal(assert.AnError)
	service := newTestService(repo)

	err := service.RecomputeRating(context.Background(), "0190b7c4-0000-7000-8000-000000000000")

	assert.Error(t, err)
}
