// Copyright (c) 2026 MangaList. All rights reserved.

package review

import "context"

// Repository defines the data access contract for reviews and reactions.
type Repository interface {

	/*
		ListByManga returns a manga's reviews, sorted and paginated, with
		the total count ignoring pagination. Each review carries the
		author's username.

		Parameters:
		  - context: context.Context
		  - mangaID: string (UUID)
		  - sort: SortKey (pre-normalized)
		  - limit: int
		  - skip: int

		Returns:
		  - []*Review: Slice of hydrated reviews
		  - int: Total review count for the manga
		  - error: Database execution errors
	*/
	ListByManga(context context.Context, mangaID string, sort SortKey, limit, skip int) ([]*Review, int, error)

	/*
		MangaExists reports whether a manga is present in the catalog.
		Used to distinguish "no reviews yet" from "no such manga".

		Parameters:
		  - context: context.Context
		  - mangaID: string (UUID)

		Returns:
		  - bool: Presence of the manga
		  - error: Database execution errors
	*/
	MangaExists(context context.Context, mangaID string) (bool, error)

	/*
		FindByID returns the review with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Review: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id string) (*Review, error)

	/*
		Create persists a new review. Each user may hold at most one review
		per manga; a second attempt surfaces as apperr.Conflict.

		Parameters:
		  - context: context.Context
		  - review: *Review

		Returns:
		  - error: apperr.Conflict, foreign-key failures, or connectivity errors
	*/
	Create(context context.Context, review *Review) error

	/*
		Update persists changes to content and rating. Likes and identity
		columns are never written here.

		Parameters:
		  - context: context.Context
		  - review: *Review

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Update(context context.Context, review *Review) error

	/*
		Delete removes a review; its like rows go with it via cascade.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		ToggleLike flips the calling user's like on a review and adjusts the
		denormalized counter in the same transaction.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - reviewID: string

		Returns:
		  - bool: Whether the user likes the review after the toggle
		  - int: The review's like count after the toggle
		  - error: apperr.NotFound or persistence failures
	*/
	ToggleLike(context context.Context, userID, reviewID string) (bool, int, error)
}
