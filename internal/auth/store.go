// Copyright (c) 2026 MangaList. All rights reserved.

package auth

import "context"

// UserRepository defines the data access contract for user accounts.
//
// All lookups exclude soft-deleted and deactivated accounts.
type UserRepository interface {

	/*
		FindByID returns the active account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername returns the active account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the active account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a new account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict on duplicate identity, or connectivity errors
	*/
	Create(context context.Context, user *User) error

	/*
		UpdateProfile persists bio and avatar changes.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	UpdateProfile(context context.Context, user *User) error

	/*
		UserExists reports whether an active account with the given ID
		exists. Used by collaborating domains for cheap presence checks.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - bool: Presence of the account
		  - error: Database execution errors
	*/
	UserExists(context context.Context, userID string) (bool, error)
}

// SessionRepository defines the contract for refresh-token sessions.
//
// Sessions live in volatile storage with a TTL matching the refresh token
// lifetime; an expired session simply disappears.
type SessionRepository interface {

	/*
		Create stores a session keyed by the refresh token's hash.

		Parameters:
		  - context: context.Context
		  - tokenHash: string (SHA-256 hex)
		  - session: *Session

		Returns:
		  - error: Storage failures
	*/
	Create(context context.Context, tokenHash string, session *Session) error

	/*
		FindByTokenHash returns the session for a refresh token hash.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - *Session: The live session
		  - error: apperr.NotFound when absent, expired, or revoked
	*/
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	/*
		Revoke removes a session so its refresh token can never be used
		again.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - error: Deletion failures
	*/
	Revoke(context context.Context, tokenHash string) error
}
