// Copyright (c) 2026 MangaList. All rights reserved.

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mangalist/api/internal/catalog"
)

/*
TestNormalizeTag verifies tag cleaning: whitespace trimming and stripping
of bracket and quote characters.
*/
func TestNormalizeTag(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Action", "Action"},
		{"surrounding_whitespace", "  action  ", "action"},
		{"square_brackets", "[Drama]", "Drama"},
		{"single_quotes", "'Comedy'", "Comedy"},
		{"double_quotes", `"Horror"`, "Horror"},
		{"mixed_noise", ` ['Sci-Fi'] `, "Sci-Fi"},
		{"only_noise", `[""]`, ""},
		{"empty", "", ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, catalog.NormalizeTag(testCase.input))
		})
	}
}

/*
TestNormalizeTagList verifies that cleaning drops entries that reduce to
empty strings and preserves the remaining order.
*/
func TestNormalizeTagList(t *testing.T) {
	input := []string{" Action ", "", "[Drama]", "  ", "'Comedy'"}

	assert.Equal(t, []string{"Action", "Drama", "Comedy"}, catalog.NormalizeTagList(input))
}

/*
TestTagVocabulary verifies the vocabulary build: cleaning, case-insensitive
deduplication keeping the first-seen spelling, and lexicographic order.
*/
func TestTagVocabulary(t *testing.T) {
	raw := []string{"Action", " action ", "[Drama]", "'Comedy'"}

	assert.Equal(t, []string{"Action", "Comedy", "Drama"}, catalog.TagVocabulary(raw))
}

/*
TestTagVocabulary_Empty verifies an empty catalog yields an empty, non-nil
vocabulary.
*/
func TestTagVocabulary_Empty(t *testing.T) {
	vocabulary := catalog.TagVocabulary(nil)

	assert.NotNil(t, vocabulary)
	assert.Empty(t, vocabulary)
}
