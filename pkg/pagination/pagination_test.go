// Copyright (c) 2026 MangaList. All rights reserved.

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mangalist/api/pkg/pagination"
)

/*
TestClamp verifies the documented clamping policy: negative skip becomes 0,
non-positive or excessive limit falls back to the default.
*/
func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		skip      int
		limit     int
		wantSkip  int
		wantLimit int
	}{
		{"valid_values", 40, 25, 40, 25},
		{"negative_skip", -5, 20, 0, 20},
		{"zero_limit", 0, 0, 0, pagination.DefaultLimit},
		{"negative_limit", 10, -1, 10, pagination.DefaultLimit},
		{"excessive_limit", 0, 5000, 0, pagination.DefaultLimit},
		{"max_limit_allowed", 0, pagination.MaxLimit, 0, pagination.MaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := pagination.Clamp(tt.skip, tt.limit)
			assert.Equal(t, tt.wantSkip, params.Skip)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

/*
TestFromRequest checks query-string parsing with defaults and malformed input.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantSkip  int
		wantLimit int
	}{
		{"no_params", "", 0, pagination.DefaultLimit},
		{"both_params", "skip=20&limit=50", 20, 50},
		{"malformed_skip", "skip=abc&limit=10", 0, 10},
		{"negative_skip", "skip=-3", 0, pagination.DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/api/v1/manga?"+tt.query, nil)
			params := pagination.FromRequest(request)
			assert.Equal(t, tt.wantSkip, params.Skip)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}
