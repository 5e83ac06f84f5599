// Copyright (c) 2026 MangaList. All rights reserved.

package catalog

import "context"

// Repository defines the data access contract for the manga catalog.
type Repository interface {

	/*
		List returns a filtered, sorted, paginated slice of manga and the
		total count of matches ignoring pagination.

		Parameters:
		  - context: context.Context
		  - filter: Filter (pre-normalized criteria)
		  - limit: int
		  - skip: int

		Returns:
		  - []*Manga: Slice of hydrated catalog entities
		  - int: Total count matching the filter
		  - error: Database execution errors
	*/
	List(context context.Context, filter Filter, limit, skip int) ([]*Manga, int, error)

	/*
		DistinctTags returns every distinct raw tag value across the catalog,
		unflattened and uncleaned. Normalization is the service's concern.

		Parameters:
		  - context: context.Context

		Returns:
		  - []string: Raw distinct tag values
		  - error: Database execution errors
	*/
	DistinctTags(context context.Context) ([]string, error)

	/*
		FindByID returns the manga with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Manga: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id string) (*Manga, error)

	/*
		FindByTitle returns the manga with the given exact title.

		Parameters:
		  - context: context.Context
		  - title: string

		Returns:
		  - *Manga: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByTitle(context context.Context, title string) (*Manga, error)

	/*
		Create persists a new manga record. The rating column always starts
		at its 0.0 default regardless of input.

		Parameters:
		  - context: context.Context
		  - manga: *Manga

		Returns:
		  - error: Constraint violations or connectivity errors
	*/
	Create(context context.Context, manga *Manga) error

	/*
		Update persists changes to the mutable metadata fields. It never
		touches the rating column.

		Parameters:
		  - context: context.Context
		  - manga: *Manga

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, manga *Manga) error

	/*
		Delete removes a manga. Dependent reviews, likes, and library entries
		are removed by the schema's cascading foreign keys.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		RecomputeRating re-derives and persists the manga's rating from its
		current review set, atomically. A missing manga yields
		apperr.NotFound and no write.

		Parameters:
		  - context: context.Context
		  - mangaID: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	RecomputeRating(context context.Context, mangaID string) error
}
