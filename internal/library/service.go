// Copyright (c) 2026 MangaList. All rights reserved.

package library

import (
	"context"
	"log/slog"
	"time"

	"github.com/mangalist/api/internal/platform/apperr"
	"github.com/mangalist/api/internal/platform/validate"
)

// # Collaborator Contracts

// UserChecker reports whether a user account exists and is active.
// Satisfied by the auth user repository.
type UserChecker interface {
	UserExists(ctx context.Context, userID string) (bool, error)
}

// # Service Layer

// Service orchestrates the business logic for reading lists.
type Service struct {
	repo   Repository
	users  UserChecker
	logger *slog.Logger
}

// NewService constructs a new [Service] with its repository and the user
// existence checker.
func NewService(repo Repository, users UserChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		logger: logger,
	}
}

// # Library Lookups

/*
ListEntries retrieves a user's library, optionally filtered by reading
status.

Description: An unknown or deactivated user yields NotFound so public
profile views do not render empty libraries for accounts that never
existed.

Parameters:
  - context: context.Context
  - userID: string (UUID)
  - status: Status (empty means all; unrecognized values are rejected)
  - limit: int
  - skip: int

Returns:
  - []*Entry: Slice of hydrated entries
  - int: Total entry count for the filter
  - error: Validation, not-found, or repository errors
*/
func (service *Service) ListEntries(context context.Context, userID string, status Status, limit, skip int) ([]*Entry, int, error) {
	validator := &validate.Validator{}
	validator.UUID("user_id", userID)
	validator.Custom(FieldStatus, status != "" && !status.IsValid(), "Unknown reading status")
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	exists, err := service.users.UserExists(context, userID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, apperr.NotFound("User")
	}

	return service.repo.ListByUser(context, userID, status, limit, skip)
}

// # Library Management

// EntryInput carries the client-supplied fields for tracking a manga.
type EntryInput struct {
	MangaID  string `json:"manga_id"`
	Status   Status `json:"status"`
	Progress int    `json:"progress"`
}

// EntryPatch carries a partial entry update; nil fields are left untouched.
type EntryPatch struct {
	Status   *Status `json:"status"`
	Progress *int    `json:"progress"`
}

/*
AddEntry starts tracking a manga in the caller's library.

Description: An omitted status defaults to plan-to-read. Tracking the same
manga twice surfaces as a conflict.

Parameters:
  - context: context.Context
  - userID: string (Caller, from the access token)
  - input: EntryInput

Returns:
  - *Entry: The persisted entry
  - error: Validation, conflict, not-found, or persistence errors
*/
func (service *Service) AddEntry(context context.Context, userID string, input EntryInput) (*Entry, error) {

	if input.Status == "" {
		input.Status = StatusPlanToRead
	}

	validator := &validate.Validator{}
	validator.UUID(FieldMangaID, input.MangaID)
	validator.Custom(FieldStatus, !input.Status.IsValid(), "Unknown reading status")
	validator.Min(FieldProgress, input.Progress, 0)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	entry := &Entry{
		UserID:    userID,
		MangaID:   input.MangaID,
		Status:    input.Status,
		Progress:  input.Progress,
		UpdatedAt: time.Now().UTC(),
	}

	if err := service.repo.Create(context, entry); err != nil {
		return nil, err
	}

	service.logger.Info("library_entry_added",
		slog.String("user_id", userID),
		slog.String("manga_id", input.MangaID),
		slog.String("status", string(input.Status)),
	)

	return entry, nil
}

/*
UpdateEntry applies status and progress changes to a tracked manga.

Parameters:
  - context: context.Context
  - userID: string (Caller)
  - mangaID: string (UUID)
  - patch: EntryPatch

Returns:
  - *Entry: The updated entry
  - error: Validation, not-found, or persistence errors
*/
func (service *Service) UpdateEntry(context context.Context, userID, mangaID string, patch EntryPatch) (*Entry, error) {

	entry, err := service.repo.Find(context, userID, mangaID)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}

	if patch.Status != nil {
		validator.Custom(FieldStatus, !patch.Status.IsValid(), "Unknown reading status")
		entry.Status = *patch.Status
	}

	if patch.Progress != nil {
		validator.Min(FieldProgress, *patch.Progress, 0)
		entry.Progress = *patch.Progress
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	entry.UpdatedAt = time.Now().UTC()

	if err := service.repo.Update(context, entry); err != nil {
		return nil, err
	}

	service.logger.Info("library_entry_updated",
		slog.String("user_id", userID),
		slog.String("manga_id", mangaID),
	)

	return entry, nil
}

/*
RemoveEntry stops tracking a manga in the caller's library.

Parameters:
  - context: context.Context
  - userID: string (Caller)
  - mangaID: string (UUID)

Returns:
  - error: apperr.NotFound or persistence errors
*/
func (service *Service) RemoveEntry(context context.Context, userID, mangaID string) error {
	if err := service.repo.Delete(context, userID, mangaID); err != nil {
		return err
	}

	service.logger.Info("library_entry_removed",
		slog.String("user_id", userID),
		slog.String("manga_id", mangaID),
	)

	return nil
}
