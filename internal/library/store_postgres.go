// Copyright (c) 2026 MangaList. All rights reserved.

package library

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

// PostgresRepository implements the [Repository] interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed library store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
ListByUser returns a user's library entries with catalog display fields.

Description: Joins the catalog for title and cover, orders alphabetically
by manga title, and rides the total count along via a window function. The
status filter is appended only when present.

Parameters:
  - context: context.Context
  - userID: string
  - status: Status (empty means all)
  - limit: int
  - skip: int

Returns:
  - []*Entry: Slice of hydrated entries
  - int: Total entry count for the filter
  - error: Database execution errors
*/
func (repository *PostgresRepository) ListByUser(context context.Context, userID string, status Status, limit, skip int) ([]*Entry, int, error) {
	query := fmt.Sprintf(`
		SELECT e.%s, e.%s, m.%s, m.%s, e.%s, e.%s, e.%s,
			COUNT(*) OVER() AS total_count
		FROM %s e
		JOIN %s m ON m.%s = e.%s
		WHERE e.%s = $1`,
		schema.LibraryEntry.UserID,
		schema.LibraryEntry.MangaID,
		schema.CatalogManga.Title,
		schema.CatalogManga.CoverURL,
		schema.LibraryEntry.Status,
		schema.LibraryEntry.Progress,
		schema.LibraryEntry.UpdatedAt,
		schema.LibraryEntry.Table,
		schema.CatalogManga.Table,
		schema.CatalogManga.ID,
		schema.LibraryEntry.MangaID,
		schema.LibraryEntry.UserID,
	)

	args := []any{userID}
	if status != "" {
		query += fmt.Sprintf(" AND e.%s = $2", schema.LibraryEntry.Status)
		args = append(args, string(status))
	}

	query += fmt.Sprintf(" ORDER BY m.%s ASC LIMIT $%d OFFSET $%d",
		schema.CatalogManga.Title, len(args)+1, len(args)+2)
	args = append(args, limit, skip)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_library")
	}
	defer rows.Close()

	entries := make([]*Entry, 0)
	totalCount := 0

	for rows.Next() {
		entry := &Entry{}
		if err := rows.Scan(
			&entry.UserID,
			&entry.MangaID,
			&entry.MangaTitle,
			&entry.MangaCover,
			&entry.Status,
			&entry.Progress,
			&entry.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_library_entry")
		}
		entries = append(entries, entry)
	}

	return entries, totalCount, rows.Err()
}

/*
Find returns the entry for one (user, manga) pair.

Parameters:
  - context: context.Context
  - userID: string
  - mangaID: string

Returns:
  - *Entry: Hydrated entry
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) Find(context context.Context, userID, mangaID string) (*Entry, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s WHERE %s = $1 AND %s = $2`,
		schema.LibraryEntry.UserID,
		schema.LibraryEntry.MangaID,
		schema.LibraryEntry.Status,
		schema.LibraryEntry.Progress,
		schema.LibraryEntry.UpdatedAt,
		schema.LibraryEntry.Table,
		schema.LibraryEntry.UserID,
		schema.LibraryEntry.MangaID,
	)

	entry := &Entry{}
	err := repository.pool.QueryRow(context, query, userID, mangaID).Scan(
		&entry.UserID,
		&entry.MangaID,
		&entry.Status,
		&entry.Progress,
		&entry.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Library entry")
		}
		return nil, fmt.Errorf("postgres_library_find_failed: %w", err)
	}

	return entry, nil
}

/*
Create persists a new library entry.

Parameters:
  - context: context.Context
  - entry: *Entry

Returns:
  - error: apperr.Conflict when the manga is already tracked,
    apperr.NotFound when the manga does not exist, or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, entry *Entry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)`,
		schema.LibraryEntry.Table,
		schema.LibraryEntry.UserID,
		schema.LibraryEntry.MangaID,
		schema.LibraryEntry.Status,
		schema.LibraryEntry.Progress,
		schema.LibraryEntry.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		entry.UserID,
		entry.MangaID,
		string(entry.Status),
		entry.Progress,
		entry.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Manga is already in your library")
		}
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("Manga")
		}
		return fmt.Errorf("postgres_library_create_failed: %w", err)
	}

	return nil
}

/*
Update persists status and progress changes for an existing entry.

Parameters:
  - context: context.Context
  - entry: *Entry

Returns:
  - error: apperr.NotFound or connectivity errors
*/
func (repository *PostgresRepository) Update(context context.Context, entry *Entry) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $3, %s = $4, %s = $5
		WHERE %s = $1 AND %s = $2`,
		schema.LibraryEntry.Table,
		schema.LibraryEntry.Status,
		schema.LibraryEntry.Progress,
		schema.LibraryEntry.UpdatedAt,
		schema.LibraryEntry.UserID,
		schema.LibraryEntry.MangaID,
	)

	tag, err := repository.pool.Exec(context, query,
		entry.UserID,
		entry.MangaID,
		string(entry.Status),
		entry.Progress,
		entry.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_library_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Library entry")
	}

	return nil
}

/*
Delete removes an entry from a user's library.

Parameters:
  - context: context.Context
  - userID: string
  - mangaID: string

Returns:
  - error: apperr.NotFound or connectivity errors
*/
func (repository *PostgresRepository) Delete(context context.Context, userID, mangaID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.LibraryEntry.Table, schema.LibraryEntry.UserID, schema.LibraryEntry.MangaID)

	tag, err := repository.pool.Exec(context, query, userID, mangaID)
	if err != nil {
		return fmt.Errorf("postgres_library_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Library entry")
	}

	return nil
}
