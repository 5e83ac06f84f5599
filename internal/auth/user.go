// Copyright (c) 2026 MangaList. All rights reserved.

package auth

import (
	"time"

	"github.com/mangalist/api/internal/platform/sec"
)

// # Core Entities

// User is a registered MangaList account.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`

	// PasswordHash never leaves the server.
	PasswordHash string `json:"-"`

	Bio       *string      `json:"bio,omitempty"`
	AvatarURL *string      `json:"avatar,omitempty"`
	Role      sec.UserRole `json:"role"`

	// IsActive is flipped off on soft delete; inactive accounts cannot
	// authenticate and are invisible to lookups.
	IsActive bool `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// Session is one refresh-token session, stored in Redis keyed by the
// token's SHA-256 hash and expired by Redis TTL.
type Session struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// # Field Identifiers

// Global field names for validation in the auth domain.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldLogin    = "login"
	FieldBio      = "bio"
	FieldAvatar   = "avatar"
)
