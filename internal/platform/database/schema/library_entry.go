// Copyright (c) 2026 MangaList. All rights reserved.

package schema

// LibraryEntryTable represents the 'library.entry' table
type LibraryEntryTable struct {
	Table     string
	UserID    string
	MangaID   string
	Status    string
	Progress  string
	UpdatedAt string
}

// LibraryEntry is the schema definition for library.entry
var LibraryEntry = LibraryEntryTable{
	Table:     "library.entry",
	UserID:    "userid",
	MangaID:   "mangaid",
	Status:    "status",
	Progress:  "progress",
	UpdatedAt: "updatedat",
}

func (t LibraryEntryTable) Columns() []string {
	return []string{t.UserID, t.MangaID, t.Status, t.Progress, t.UpdatedAt}
}
