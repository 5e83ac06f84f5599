// Copyright (c) 2026 MangaList. All rights reserved.

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestBuildListQuery_NoFilters verifies the bare statement: window-function
total, default popular ordering, and pagination as the only arguments.
*/
func TestBuildListQuery_NoFilters(t *testing.T) {
	query, args := buildListQuery(Filter{}, 20, 0)

	assert.Contains(t, query, "COUNT(*) OVER() AS total_count")
	assert.Contains(t, query, "ORDER BY m.rating DESC, m.title ASC")
	assert.Contains(t, query, "LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{20, 0}, args)
}

/*
TestBuildListQuery_AllFilters verifies placeholder numbering stays aligned
with the argument slice when every filter is present.
*/
func TestBuildListQuery_AllFilters(t *testing.T) {
	year := 2015
	filter := Filter{
		Search:    "berserk",
		Tags:      []string{"Action", "Drama"},
		Year:      &year,
		MinRating: 3.5,
		Sort:      SortRating,
	}

	query, args := buildListQuery(filter, 10, 30)

	assert.Contains(t, query, "m.title ILIKE $1")
	assert.Contains(t, query, "array_to_string(m.tags, ',') ILIKE $2")
	assert.Contains(t, query, "array_to_string(m.tags, ',') ILIKE $3")
	assert.Contains(t, query, "m.year = $4")
	assert.Contains(t, query, "m.rating >= $5")
	assert.Contains(t, query, "LIMIT $6 OFFSET $7")

	assert.Equal(t, []any{"%berserk%", "%Action%", "%Drama%", 2015, 3.5, 10, 30}, args)
}

/*
TestBuildListQuery_Sorting verifies each sort key's ORDER BY clause,
including the popular fallback for unrecognized keys.
*/
func TestBuildListQuery_Sorting(t *testing.T) {
	testCases := []struct {
		name     string
		sort     SortKey
		expected string
	}{
		{"rating", SortRating, "ORDER BY m.rating DESC LIMIT"},
		{"newest_unknown_years_last", SortNewest, "ORDER BY m.year DESC NULLS LAST"},
		{"title", SortTitle, "ORDER BY m.title ASC"},
		{"popular_default", SortPopular, "ORDER BY m.rating DESC, m.title ASC"},
		{"unrecognized_falls_back", SortKey("bogus"), "ORDER BY m.rating DESC, m.title ASC"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			query, _ := buildListQuery(Filter{Sort: testCase.sort}, 20, 0)
			assert.Contains(t, query, testCase.expected)
		})
	}
}

/*
TestBuildListQuery_ZeroMinRating verifies that a zero rating floor adds no
clause, so unrated manga stay visible.
*/
func TestBuildListQuery_ZeroMinRating(t *testing.T) {
	query, args := buildListQuery(Filter{MinRating: 0}, 20, 0)

	assert.NotContains(t, query, "m.rating >=")
	assert.Equal(t, []any{20, 0}, args)
}
