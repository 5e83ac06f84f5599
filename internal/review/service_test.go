// Copyright (c) 2026 MangaList. All rights reserved.

package review_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangalist/api/internal/platform/apperr"
	"github.com/mangalist/api/internal/platform/sec"
	"github.com/mangalist/api/internal/review"
)

const (
	testMangaID  = "0190b7c4-1111-7000-8000-000000000001"
	testReviewID = "0190b7c4-2222-7000-8000-000000000002"
)

// fakeRepository is an in-memory [review.Repository].
type fakeRepository struct {
	reviews       map[string]*review.Review
	knownMangaIDs map[string]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		reviews:       make(map[string]*review.Review),
		knownMangaIDs: map[string]bool{testMangaID: true},
	}
}

func (f *fakeRepository) MangaExists(_ context.Context, mangaID string) (bool, error) {
	return f.knownMangaIDs[mangaID], nil
}

func (f *fakeRepository) ListByManga(_ context.Context, mangaID string, _ review.SortKey, _, _ int) ([]*review.Review, int, error) {
	matches := make([]*review.Review, 0)
	for _, r := range f.reviews {
		if r.MangaID == mangaID {
			matches = append(matches, r)
		}
	}
	return matches, len(matches), nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*review.Review, error) {
	if r, ok := f.reviews[id]; ok {
		return r, nil
	}
	return nil, apperr.NotFound("Review")
}

func (f *fakeRepository) Create(_ context.Context, r *review.Review) error {
	for _, existing := range f.reviews {
		if existing.UserID == r.UserID && existing.MangaID == r.MangaID {
			return apperr.Conflict("You have already reviewed this manga")
		}
	}
	f.reviews[r.ID] = r
	return nil
}

func (f *fakeRepository) Update(_ context.Context, r *review.Review) error {
	if _, ok := f.reviews[r.ID]; !ok {
		return apperr.NotFound("Review")
	}
	f.reviews[r.ID] = r
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.reviews[id]; !ok {
		return apperr.NotFound("Review")
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeRepository) ToggleLike(_ context.Context, _, reviewID string) (bool, int, error) {
	r, ok := f.reviews[reviewID]
	if !ok {
		return false, 0, apperr.NotFound("Review")
	}
	r.Likes++
	return true, r.Likes, nil
}

// recomputerSpy records every rating recomputation request.
type recomputerSpy struct {
	mangaIDs []string
}

func (s *recomputerSpy) RecomputeRating(_ context.Context, mangaID string) error {
	s.mangaIDs = append(s.mangaIDs, mangaID)
	return nil
}

func newTestService() (*review.Service, *fakeRepository, *recomputerSpy) {
	repo := newFakeRepository()
	spy := &recomputerSpy{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return review.NewService(repo, spy, logger), repo, spy
}

func memberClaims(userID string) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: userID, Role: string(sec.RoleMember)}
}

/*
TestCreateReview verifies persistence and that the manga's rating is
recomputed after the review lands.
*/
func TestCreateReview(t *testing.T) {
	service, repo, spy := newTestService()

	created, err := service.CreateReview(context.Background(), "user-1", testMangaID,
		review.ReviewInput{Content: "  A masterpiece.  ", Rating: 5})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "A masterpiece.", created.Content)
	assert.Equal(t, 5, created.Rating)
	assert.Len(t, repo.reviews, 1)
	assert.Equal(t, []string{testMangaID}, spy.mangaIDs)
}

/*
TestCreateReview_RatingBounds verifies star ratings outside 1-5 are
rejected before any write or recomputation.
*/
func TestCreateReview_RatingBounds(t *testing.T) {
	service, repo, spy := newTestService()

	for _, rating := range []int{0, 6, -1} {
		_, err := service.CreateReview(context.Background(), "user-1", testMangaID,
			review.ReviewInput{Rating: rating})
		assert.Error(t, err)
	}

	assert.Empty(t, repo.reviews)
	assert.Empty(t, spy.mangaIDs)
}

/*
TestCreateReview_Duplicate verifies the one-review-per-user rule surfaces
as a conflict.
*/
func TestCreateReview_Duplicate(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.CreateReview(context.Background(), "user-1", testMangaID, review.ReviewInput{Rating: 4})
	require.NoError(t, err)

	_, err = service.CreateReview(context.Background(), "user-1", testMangaID, review.ReviewInput{Rating: 2})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

/*
TestUpdateReview_RatingChangeRecomputes verifies a rating change triggers
recomputation while a content-only edit does not.
*/
func TestUpdateReview_RatingChangeRecomputes(t *testing.T) {
	service, _, spy := newTestService()

	created, err := service.CreateReview(context.Background(), "user-1", testMangaID, review.ReviewInput{Rating: 4})
	require.NoError(t, err)
	spy.mangaIDs = nil

	// Content-only edit: no recomputation.
	content := "Updated thoughts."
	_, err = service.UpdateReview(context.Background(), memberClaims("user-1"), created.ID,
		review.ReviewPatch{Content: &content})
	require.NoError(t, err)
	assert.Empty(t, spy.mangaIDs)

	// Same rating value: still no recomputation.
	sameRating := 4
	_, err = service.UpdateReview(context.Background(), memberClaims("user-1"), created.ID,
		review.ReviewPatch{Rating: &sameRating})
	require.NoError(t, err)
	assert.Empty(t, spy.mangaIDs)

	// Actual rating change: recompute fires.
	newRating := 2
	updated, err := service.UpdateReview(context.Background(), memberClaims("user-1"), created.ID,
		review.ReviewPatch{Rating: &newRating})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Rating)
	assert.Equal(t, []string{testMangaID}, spy.mangaIDs)
}

/*
TestUpdateReview_Authorization verifies only the author or an admin may
modify a review.
*/
func TestUpdateReview_Authorization(t *testing.T) {
	service, _, _ := newTestService()

	created, err := service.CreateReview(context.Background(), "user-1", testMangaID, review.ReviewInput{Rating: 4})
	require.NoError(t, err)

	content := "hijacked"

	// Another member is rejected.
	_, err = service.UpdateReview(context.Background(), memberClaims("user-2"), created.ID,
		review.ReviewPatch{Content: &content})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)

	// An admin is allowed.
	admin := &sec.AuthClaims{UserID: "admin-1", Role: string(sec.RoleAdmin)}
	_, err = service.UpdateReview(context.Background(), admin, created.ID,
		review.ReviewPatch{Content: &content})
	assert.NoError(t, err)
}

/*
TestDeleteReview verifies removal triggers a rating recomputation for the
affected manga.
*/
func TestDeleteReview(t *testing.T) {
	service, repo, spy := newTestService()

	created, err := service.CreateReview(context.Background(), "user-1", testMangaID, review.ReviewInput{Rating: 4})
	require.NoError(t, err)
	spy.mangaIDs = nil

	err = service.DeleteReview(context.Background(), memberClaims("user-1"), created.ID)
	require.NoError(t, err)

	assert.Empty(t, repo.reviews)
	assert.Equal(t, []string{testMangaID}, spy.mangaIDs)
}

/*
TestToggleLike verifies the updated review is returned and invalid
identifiers are rejected.
*/
func TestToggleLike(t *testing.T) {
	service, _, _ := newTestService()

	created, err := service.CreateReview(context.Background(), "user-1", testMangaID, review.ReviewInput{Rating: 4})
	require.NoError(t, err)

	updated, liked, err := service.ToggleLike(context.Background(), "user-2", created.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, updated.Likes)

	_, _, err = service.ToggleLike(context.Background(), "user-2", "not-a-uuid")
	assert.Error(t, err)
}

/*
TestListByManga_UnknownManga verifies an absent manga yields NOT_FOUND
rather than an empty list.
*/
func TestListByManga_UnknownManga(t *testing.T) {
	service, _, _ := newTestService()

	_, _, err := service.ListByManga(context.Background(),
		"0190b7c4-ffff-7000-8000-00000000000f", review.SortLikes, 20, 0)

	assert.True(t, apperr.IsNotFound(err))
}
