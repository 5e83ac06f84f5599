// Copyright (c) 2026 MangaList. All rights reserved.

package query

import (
	"strings"
)

// StringSlice parses repeated or comma-separated query values into a trimmed
// slice of strings. Empty entries are discarded.
func StringSlice(vals []string) []string {
	var res []string
	for _, raw := range vals {
		for _, v := range strings.Split(raw, ",") {
			clean := strings.TrimSpace(v)
			if clean != "" {
				res = append(res, clean)
			}
		}
	}
	return res
}
