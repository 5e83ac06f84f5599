// Copyright (c) 2026 MangaList. All rights reserved.

/*
Package library implements per-user reading lists: which manga a user
tracks, their reading status, and chapter progress.

Core Responsibility:

  - Tracking: One entry per (user, manga) pair.
  - Status Lifecycle: A fixed vocabulary of reading states with
    plan-to-read as the default for new entries.
  - Progress: A free non-negative chapter counter.
*/
package library

import "time"

// # Reading Status

// Status is a manga's reading state within a user's library.
type Status string

const (
	StatusReading    Status = "reading"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on-hold"
	StatusDropped    Status = "dropped"
	StatusPlanToRead Status = "plan-to-read"
)

// AllStatuses lists every valid reading state, for validation messages.
var AllStatuses = []Status{
	StatusReading,
	StatusCompleted,
	StatusOnHold,
	StatusDropped,
	StatusPlanToRead,
}

// IsValid reports whether the status is part of the fixed vocabulary.
func (s Status) IsValid() bool {
	for _, valid := range AllStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// # Core Entities

// Entry is one tracked manga in a user's library.
type Entry struct {
	UserID  string `json:"user_id"`
	MangaID string `json:"manga_id"`

	// MangaTitle and MangaCover are denormalized from the catalog at read
	// time for display.
	MangaTitle string  `json:"manga_title,omitempty"`
	MangaCover *string `json:"manga_cover,omitempty"`

	Status   Status `json:"status"`
	Progress int    `json:"progress"`

	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation in the library domain.
const (
	FieldStatus   = "status"
	FieldProgress = "progress"
	FieldMangaID  = "manga_id"
)
