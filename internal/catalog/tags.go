// Copyright (c) 2026 MangaList. All rights reserved.

package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// tagStripSet are the stray characters occasionally left behind by loose
// upstream ingestion (CSV cells holding a serialized list).
const tagStripSet = "[]'\""

// NormalizeTag cleans a single raw tag value: Unicode NFC normalization,
// whitespace trimming, and removal of stray bracket/quote characters.
// It returns an empty string when nothing usable remains.
//
// Tag ingestion is not strictly validated upstream, so stored values may
// carry serialized-list artifacts.
func NormalizeTag(raw string) string {
	cleaned := norm.NFC.String(raw)
	cleaned = strings.TrimSpace(cleaned)

	cleaned = strings.Map(func(r rune) rune {
		if strings.ContainsRune(tagStripSet, r) {
			return -1
		}
		return r
	}, cleaned)

	return strings.TrimSpace(cleaned)
}

// NormalizeTagList cleans every entry of a raw tag list and discards
// the ones that are empty after cleaning. Order is preserved.
func NormalizeTagList(raw []string) []string {
	cleaned := make([]string, 0, len(raw))
	for _, tag := range raw {
		if t := NormalizeTag(tag); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return cleaned
}

// TagVocabulary turns raw distinct tag values into the canonical vocabulary:
// normalized, deduplicated case-insensitively (first-seen casing wins), and
// sorted ascending.
func TagVocabulary(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	vocabulary := make([]string, 0, len(raw))

	for _, tag := range raw {
		cleaned := NormalizeTag(tag)
		if cleaned == "" {
			continue
		}

		key := strings.ToLower(cleaned)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		vocabulary = append(vocabulary, cleaned)
	}

	sort.Strings(vocabulary)
	return vocabulary
}
