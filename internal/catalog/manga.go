// Copyright (c) 2026 MangaList. All rights reserved.

/*
Package catalog defines the manga catalog domain: the Manga entity, the
search/filter/ranking query over it, and the derived-rating rule.

Core Responsibility:

  - Catalog: Manga metadata (title, description, year, tags, cover).
  - Discovery: Filtered, sorted, paginated search plus the distinct tag vocabulary.
  - Derived State: The stored rating is always the rounded mean of the
    manga's current reviews and is written only by [Service.RecomputeRating].

This package acts as the source of truth for all catalog-related data models.
*/
package catalog

import "time"

// # Sort Keys

// SortKey selects the ordering of search results.
type SortKey string

const (
	// SortPopular orders by rating descending with title ascending as tie-break.
	// It is the default and the fallback for any unrecognized key.
	SortPopular SortKey = "popular"

	// SortRating orders by rating descending.
	SortRating SortKey = "rating"

	// SortNewest orders by release year descending, unknown years last.
	SortNewest SortKey = "newest"

	// SortTitle orders by title ascending.
	SortTitle SortKey = "title"
)

// Normalize maps any unrecognized sort key to [SortPopular].
func (k SortKey) Normalize() SortKey {
	switch k {
	case SortRating, SortNewest, SortTitle, SortPopular:
		return k
	}
	return SortPopular
}

// # Core Entities

// Manga is the central aggregate of the MangaList catalog.
type Manga struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Year        *int     `json:"year,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	CoverURL    *string  `json:"cover,omitempty"`

	// Rating is derived from reviews (mean, one decimal place; 0.0 with no
	// reviews). It is never accepted from client input.
	Rating float64 `json:"rating"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// Filter holds the search criteria for the catalog query.
//
// Zero values mean "no filter": an empty Search applies no title match, an
// empty Tags slice applies no tag match, a nil Year matches any year, and a
// MinRating of 0 admits every manga including unrated ones.
type Filter struct {
	// Search matches the title as a case-insensitive substring.
	Search string

	// Tags are AND-composed: every entry must match the manga's tag list,
	// rendered as one comma-delimited string, as a case-insensitive
	// substring. A filter of "Action" therefore also matches a manga tagged
	// "Actionable" — this looseness is intentional, observed behavior.
	Tags []string

	// Year filters by exact release year; manga with no year never match.
	Year *int

	// MinRating admits manga with rating >= MinRating when positive.
	MinRating float64

	// Sort selects the result ordering; see [SortKey].
	Sort SortKey
}

// # Field Identifiers

// Global field names for validation in the catalog domain.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldYear        = "year"
	FieldTags        = "tags"
	FieldCover       = "cover"
)
