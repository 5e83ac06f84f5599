// Copyright (c) 2026 MangaList. All rights reserved.

package library_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangalist/api/internal/library"
	"github.com/mangalist/api/internal/platform/apperr"
)

const (
	testUserID  = "0190b7c4-aaaa-7000-8000-000000000001"
	testMangaID = "0190b7c4-bbbb-7000-8000-000000000002"
)

// fakeRepository is an in-memory [library.Repository] keyed by
// (user, manga).
type fakeRepository struct {
	entries map[string]*library.Entry
}

func key(userID, mangaID string) string { return userID + "/" + mangaID }

func newFakeRepository() *fakeRepository {
	return &fakeRepository{entries: make(map[string]*library.Entry)}
}

func (f *fakeRepository) ListByUser(_ context.Context, userID string, status library.Status, _, _ int) ([]*library.Entry, int, error) {
	matches := make([]*library.Entry, 0)
	for _, entry := range f.entries {
		if entry.UserID != userID {
			continue
		}
		if status != "" && entry.Status != status {
			continue
		}
		matches = append(matches, entry)
	}
	return matches, len(matches), nil
}

func (f *fakeRepository) Find(_ context.Context, userID, mangaID string) (*library.Entry, error) {
	if entry, ok := f.entries[key(userID, mangaID)]; ok {
		return entry, nil
	}
	return nil, apperr.NotFound("Library entry")
}

func (f *fakeRepository) Create(_ context.Context, entry *library.Entry) error {
	k := key(entry.UserID, entry.MangaID)
	if _, ok := f.entries[k]; ok {
		return apperr.Conflict("Manga is already in your library")
	}
	f.entries[k] = entry
	return nil
}

func (f *fakeRepository) Update(_ context.Context, entry *library.Entry) error {
	k := key(entry.UserID, entry.MangaID)
	if _, ok := f.entries[k]; !ok {
		return apperr.NotFound("Library entry")
	}
	f.entries[k] = entry
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, userID, mangaID string) error {
	k := key(userID, mangaID)
	if _, ok := f.entries[k]; !ok {
		return apperr.NotFound("Library entry")
	}
	delete(f.entries, k)
	return nil
}

// fakeUserChecker knows a fixed set of user IDs.
type fakeUserChecker struct {
	knownUserIDs map[string]bool
}

func (f *fakeUserChecker) UserExists(_ context.Context, userID string) (bool, error) {
	return f.knownUserIDs[userID], nil
}

func newTestService() (*library.Service, *fakeRepository) {
	repo := newFakeRepository()
	users := &fakeUserChecker{knownUserIDs: map[string]bool{testUserID: true}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return library.NewService(repo, users, logger), repo
}

/*
TestAddEntry_DefaultStatus verifies an omitted status defaults to
plan-to-read.
*/
func TestAddEntry_DefaultStatus(t *testing.T) {
	service, _ := newTestService()

	entry, err := service.AddEntry(context.Background(), testUserID,
		library.EntryInput{MangaID: testMangaID})
	require.NoError(t, err)

	assert.Equal(t, library.StatusPlanToRead, entry.Status)
	assert.Zero(t, entry.Progress)
}

/*
TestAddEntry_UnknownStatus verifies statuses outside the fixed vocabulary
are rejected.
*/
func TestAddEntry_UnknownStatus(t *testing.T) {
	service, repo := newTestService()

	_, err := service.AddEntry(context.Background(), testUserID,
		library.EntryInput{MangaID: testMangaID, Status: "binging"})

	require.Error(t, err)
	assert.Empty(t, repo.entries)
}

/*
TestAddEntry_Duplicate verifies tracking the same manga twice surfaces as
a conflict.
*/
func TestAddEntry_Duplicate(t *testing.T) {
	service, _ := newTestService()

	_, err := service.AddEntry(context.Background(), testUserID,
		library.EntryInput{MangaID: testMangaID, Status: library.StatusReading})
	require.NoError(t, err)

	_, err = service.AddEntry(context.Background(), testUserID,
		library.EntryInput{MangaID: testMangaID})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

/*
TestUpdateEntry verifies partial updates to status and progress.
*/
func TestUpdateEntry(t *testing.T) {
	service, _ := newTestService()

	_, err := service.AddEntry(context.Background(), testUserID,
		library.EntryInput{MangaID: testMangaID, Status: library.StatusReading})
	require.NoError(t, err)

	progress := 42
	entry, err := service.UpdateEntry(context.Background(), testUserID, testMangaID,
		library.EntryPatch{Progress: &progress})
	require.NoError(t, err)

	assert.Equal(t, library.StatusReading, entry.Status)
	assert.Equal(t, 42, entry.Progress)

	completed := library.StatusCompleted
	entry, err = service.UpdateEntry(context.Background(), testUserID, testMangaID,
		library.EntryPatch{Status: &completed})
	require.NoError(t, err)

	assert.Equal(t, library.StatusCompleted, entry.Status)
	assert.Equal(t, 42, entry.Progress)
}

/*
TestUpdateEntry_NegativeProgress verifies the progress counter cannot go
below zero.
*/
func TestUpdateEntry_NegativeProgress(t *testing.T) {
	service, _ := newTestService()

	_, err := service.AddEntry(context.Background(), testUserID,
		library.EntryInput{MangaID: testMangaID})
	require.NoError(t, err)

	progress := -1
	_, err = service.UpdateEntry(context.Background(), testUserID, testMangaID,
		library.EntryPatch{Progress: &progress})

	assert.Error(t, err)
}

/*
TestListEntries_StatusFilter verifies filtering by reading status and
rejection of unknown filter values.
*/
func TestListEntries_StatusFilter(t *testing.T) {
	service, _ := newTestService()

	_, err := service.AddEntry(context.Background(), testUserID,
		library.EntryInput{MangaID: testMangaID, Status: library.StatusReading})
	require.NoError(t, err)

	entries, total, err := service.ListEntries(context.Background(), testUserID, library.StatusReading, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, entries, 1)

	entries, total, err = service.ListEntries(context.Background(), testUserID, library.StatusDropped, 20, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, entries)

	_, _, err = service.ListEntries(context.Background(), testUserID, "binging", 20, 0)
	assert.Error(t, err)
}

/*
TestListEntries_UnknownUser verifies an unknown user yields NOT_FOUND
rather than an empty library.
*/
func TestListEntries_UnknownUser(t *testing.T) {
	service, _ := newTestService()

	_, _, err := service.ListEntries(context.Background(),
		"0190b7c4-cccc-7000-8000-000000000009", "", 20, 0)

	assert.True(t, apperr.IsNotFound(err))
}

/*
TestAddEntry_WithProgress verifies initial progress is accepted and
negative progress rejected at creation.
*/
func TestAddEntry_WithProgress(t *testing.T) {
	service, _ := newTestService()

	entry, err := service.AddEntry(context.Background(), testUserID,
		library.EntryInput{MangaID: testMangaID, Status: library.StatusReading, Progress: 12})
	require.NoError(t, err)
	assert.Equal(t, 12, entry.Progress)

	_, err = service.AddEntry(context.Background(), testUserID,
		library.EntryInput{MangaID: "0190b7c4-bbbb-7000-8000-000000000003", Progress: -5})
	assert.Error(t, err)
}

/*
TestRemoveEntry verifies removal and the not-found case for untracked
manga.
*/
func TestRemoveEntry(t *testing.T) {
	service, repo := newTestService()

	_, err := service.AddEntry(context.Background(), testUserID,
		library.EntryInput{MangaID: testMangaID})
	require.NoError(t, err)

	require.NoError(t, service.RemoveEntry(context.Background(), testUserID, testMangaID))
	assert.Empty(t, repo.entries)

	err = service.RemoveEntry(context.Background(), testUserID, testMangaID)
	assert.True(t, apperr.IsNotFound(err))
}
