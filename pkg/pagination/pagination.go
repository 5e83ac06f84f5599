// Copyright (c) 2026 MangaList. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how offset-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
//
// # Clamping Policy
//
// Out-of-range inputs are never rejected: a negative skip is treated as 0 and
// a non-positive (or excessive) limit falls back to [DefaultLimit]. This is
// applied uniformly across every list endpoint.
package pagination

import (
	"net/http"

	"github.com/mangalist/api/pkg/convert"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
)

// Params holds the parsed skip and limit from a request's query string.
type Params struct {
	Skip  int
	Limit int
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// NewMeta constructs pagination metadata for a response.
func NewMeta(skip, limit, total int) Meta {
	return Meta{
		Skip:  skip,
		Limit: limit,
		Total: total,
	}
}

// FromRequest parses "skip" and "limit" query parameters from an HTTP request,
// applying the package clamping policy.
func FromRequest(r *http.Request) Params {
	skip := parseIntParam(r, "skip", 0)
	limit := parseIntParam(r, "limit", DefaultLimit)
	return Clamp(skip, limit)
}

// Clamp normalizes raw skip/limit values according to the package policy.
func Clamp(skip, limit int) Params {
	if skip < 0 {
		skip = 0
	}

	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Skip: skip, Limit: limit}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	return convert.ToIntD(r.URL.Query().Get(key), defaultVal)
}
