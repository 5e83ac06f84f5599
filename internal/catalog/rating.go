// Copyright (c) 2026 MangaList. All rights reserved.

package catalog

import "math"

// AverageRating computes the stored rating for a manga from its current
// review ratings: the arithmetic mean rounded to one decimal place, or 0.0
// when no reviews exist.
//
// This is the single definition of the derived-rating rule. The aggregator
// always recomputes from the full review set — never incrementally — so the
// result is idempotent for a fixed set of reviews.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0.0
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}

	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*10) / 10
}
