// Copyright (c) 2026 MangaList. All rights reserved.

package library

import "context"

// Repository defines the data access contract for reading lists.
type Repository interface {

	/*
		ListByUser returns a user's library entries ordered by manga title,
		optionally filtered by status, with the total count ignoring
		pagination. Each entry carries the manga's title and cover.

		Parameters:
		  - context: context.Context
		  - userID: string (UUID)
		  - status: Status (empty means all)
		  - limit: int
		  - skip: int

		Returns:
		  - []*Entry: Slice of hydrated entries
		  - int: Total entry count for the filter
		  - error: Database execution errors
	*/
	ListByUser(context context.Context, userID string, status Status, limit, skip int) ([]*Entry, int, error)

	/*
		Find returns the entry for one (user, manga) pair.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - mangaID: string

		Returns:
		  - *Entry: Hydrated entry
		  - error: apperr.NotFound or database errors
	*/
	Find(context context.Context, userID, mangaID string) (*Entry, error)

	/*
		Create persists a new entry. A second entry for the same manga
		surfaces as apperr.Conflict; a missing manga as apperr.NotFound.

		Parameters:
		  - context: context.Context
		  - entry: *Entry

		Returns:
		  - error: apperr.Conflict, apperr.NotFound, or connectivity errors
	*/
	Create(context context.Context, entry *Entry) error

	/*
		Update persists status and progress changes for an entry.

		Parameters:
		  - context: context.Context
		  - entry: *Entry

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Update(context context.Context, entry *Entry) error

	/*
		Delete removes an entry from the user's library.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - mangaID: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Delete(context context.Context, userID, mangaID string) error
}
