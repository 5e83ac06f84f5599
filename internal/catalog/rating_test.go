// Copyright (c) 2026 MangaList. All rights reserved.

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mangalist/api/internal/catalog"
)

/*
TestAverageRating verifies the derived rating rule: arithmetic mean of the
review ratings, rounded to one decimal place, 0.0 with no reviews.
*/
func TestAverageRating(t *testing.T) {
	testCases := []struct {
		name     string
		ratings  []int
		expected float64
	}{
		{"no_reviews", nil, 0.0},
		{"empty_slice", []int{}, 0.0},
		{"single_review", []int{4}, 4.0},
		{"exact_mean", []int{4, 5, 3}, 4.0},
		{"rounds_up", []int{5, 5, 4}, 4.7},
		{"rounds_down", []int{4, 4, 5}, 4.3},
		{"rounds_half_away_from_zero", []int{1, 2}, 1.5},
		{"all_minimum", []int{1, 1, 1}, 1.0},
		{"all_maximum", []int{5, 5, 5, 5}, 5.0},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, catalog.AverageRating(testCase.ratings))
		})
	}
}

/*
TestAverageRating_Idempotent verifies that recomputing over an unchanged
review set yields the identical value.
*/
func TestAverageRating_Idempotent(t *testing.T) {
	ratings := []int{3, 4, 4, 5, 2}

	first := catalog.AverageRating(ratings)
	second := catalog.AverageRating(ratings)

	assert.Equal(t, first, second)
}
