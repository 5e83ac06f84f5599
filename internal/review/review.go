// Copyright (c) 2026 MangaList. All rights reserved.

/*
Package review implements the social layer of MangaList: per-user manga
reviews with a 1-5 star rating, and like/unlike reactions on reviews.

Core Responsibility:

  - Reviews: One review per (user, manga) pair, carrying the rating that
    feeds the catalog's aggregated score.
  - Reactions: Toggleable likes with a denormalized per-review counter.
  - Aggregation Trigger: Every mutation that changes a manga's review set
    notifies the injected [RatingRecomputer] so the stored catalog rating
    tracks the review data.
*/
package review

import (
	"context"
	"time"
)

// # Sort Keys

// SortKey selects the ordering of a manga's review list.
type SortKey string

const (
	// SortLikes orders by like count descending, newest first as tie-break.
	// It is the default and the fallback for any unrecognized key.
	SortLikes SortKey = "likes"

	// SortNewest orders by creation time descending.
	SortNewest SortKey = "newest"
)

// Normalize maps any unrecognized sort key to [SortLikes].
func (k SortKey) Normalize() SortKey {
	if k == SortNewest {
		return k
	}
	return SortLikes
}

// # Core Entities

// Review is a user's written opinion and star rating for one manga.
type Review struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	MangaID string `json:"manga_id"`

	// Username is denormalized from the account at read time for display.
	Username string `json:"username,omitempty"`

	Content string `json:"content"`

	// Rating is the 1-5 star score. It is the sole input to the manga's
	// aggregated catalog rating.
	Rating int `json:"rating"`

	// Likes mirrors the count of reviewlike rows; it is maintained
	// transactionally with the toggle.
	Likes int `json:"likes"`

	CreatedAt time.Time `json:"created_at"`
}

// # Rating Aggregation Contract

// RatingRecomputer re-derives a manga's stored rating from its current
// review set. Satisfied by the catalog service.
type RatingRecomputer interface {
	RecomputeRating(ctx context.Context, mangaID string) error
}

// # Field Identifiers

// Global field names for validation in the review domain.
const (
	FieldContent = "content"
	FieldRating  = "rating"
	FieldMangaID = "manga_id"
)
