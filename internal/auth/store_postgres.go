// Copyright (c) 2026 MangaList. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mangalist/api/internal/platform/apperr"
	"github.com/mangalist/api/internal/platform/database/schema"
	"github.com/mangalist/api/internal/platform/dberr"
)

// # PostgreSQL Repository

// PostgresUserRepository implements the [UserRepository] interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository constructs a PostgreSQL backed account store.
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// activeFilter excludes soft-deleted and deactivated accounts from lookups.
func activeFilter() string {
	return fmt.Sprintf("%s IS NULL AND %s = TRUE",
		schema.UsersAccount.DeletedAt, schema.UsersAccount.IsActive)
}

// findBy runs a single-row account lookup with the given column predicate.
func (repository *PostgresUserRepository) findBy(context context.Context, column string, value any) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s`,
		schema.UsersAccount.ID,
		schema.UsersAccount.Username,
		schema.UsersAccount.Email,
		schema.UsersAccount.PasswordHash,
		schema.UsersAccount.Bio,
		schema.UsersAccount.AvatarURL,
		schema.UsersAccount.Role,
		schema.UsersAccount.IsActive,
		schema.UsersAccount.CreatedAt,
		schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.Table,
		column,
		activeFilter(),
	)

	user := &User{}
	err := repository.pool.QueryRow(context, query, value).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Bio,
		&user.AvatarURL,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_find_failed: %w", err)
	}

	return user, nil
}

// FindByID returns the active account with the given ID.
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findBy(context, schema.UsersAccount.ID, id)
}

// FindByUsername returns the active account with the given username.
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findBy(context, schema.UsersAccount.Username, username)
}

// FindByEmail returns the active account with the given email.
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findBy(context, schema.UsersAccount.Email, email)
}

/*
Create persists a new account.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: apperr.Conflict when the username or email is taken, or
    connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		schema.UsersAccount.Table,
		schema.UsersAccount.ID,
		schema.UsersAccount.Username,
		schema.UsersAccount.Email,
		schema.UsersAccount.PasswordHash,
		schema.UsersAccount.Bio,
		schema.UsersAccount.AvatarURL,
		schema.UsersAccount.Role,
		schema.UsersAccount.IsActive,
		schema.UsersAccount.CreatedAt,
		schema.UsersAccount.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Bio,
		user.AvatarURL,
		string(user.Role),
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Username or email is already registered")
		}
		return fmt.Errorf("postgres_user_create_failed: %w", err)
	}

	return nil
}

/*
UpdateProfile persists bio and avatar changes.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: apperr.NotFound or connectivity errors
*/
func (repository *PostgresUserRepository) UpdateProfile(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1 AND %s`,
		schema.UsersAccount.Table,
		schema.UsersAccount.Bio,
		schema.UsersAccount.AvatarURL,
		schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.ID,
		activeFilter(),
	)

	tag, err := repository.pool.Exec(context, query, user.ID, user.Bio, user.AvatarURL, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres_user_update_profile_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
UserExists reports whether an active account with the given ID exists.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - bool: Presence of the account
  - error: Database execution errors
*/
func (repository *PostgresUserRepository) UserExists(context context.Context, userID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s)`,
		schema.UsersAccount.Table, schema.UsersAccount.ID, activeFilter())

	var exists bool
	if err := repository.pool.QueryRow(context, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_user_exists_failed: %w", err)
	}

	return exists, nil
}
