// Copyright (c) 2026 MangaList. All rights reserved.

// Package schema centralizes table and column identifiers for the
// PostgreSQL schema. Repositories reference these constants instead of
// embedding raw strings, so a rename touches exactly one file.
package schema

// CatalogMangaTable represents the 'catalog.manga' table
type CatalogMangaTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	Rating      string
	Year        string
	Tags        string
	CoverURL    string
	CreatedAt   string
	UpdatedAt   string
}

// CatalogManga is the schema definition for catalog.manga
var CatalogManga = CatalogMangaTable{
	Table:       "catalog.manga",
	ID:          "id",
	Title:       "title",
	Description: "description",
	Rating:      "rating",
	Year:        "year",
	Tags:        "tags",
	CoverURL:    "coverurl",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CatalogMangaTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.Rating, t.Year, t.Tags, t.CoverURL,
		t.CreatedAt, t.UpdatedAt,
	}
}
