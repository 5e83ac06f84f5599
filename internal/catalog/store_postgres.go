// Copyright (c) 2026 MangaList. All rights reserved.

/*
Package catalog provides the PostgreSQL implementation for the catalog's data access.

It utilizes a few Postgres features to keep discovery a single round-trip:
  - Window Functions: COUNT(*) OVER() yields the total match count without a
    second query.
  - Array Rendering: tag filters match against array_to_string(tags, ','),
    preserving the documented substring semantics.
  - Row Locking: rating recomputation locks the target manga row so a racing
    recompute cannot produce a lost update.
*/
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

// NewPostgresRepository constructs a PostgreSQL backed catalog store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Search Query Construction

/*
buildListQuery assembles the dynamic search statement and its arguments.

Description: Filters are appended as numbered-placeholder WHERE clauses in a
fixed order (search, tags, year, rating), so the same Filter always produces
the same SQL. The total match count rides along on every row via a window
function, and pagination is applied last.

Parameters:
  - filter: Filter (pre-normalized criteria)
  - limit: int
  - skip: int

Returns:
  - string: Complete SQL statement
  - []any: Positional arguments matching the placeholders
*/
func buildListQuery(filter Filter, limit, skip int) (string, []any) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT m.%s, m.%s, m.%s, m.%s, m.%s, m.%s, m.%s, m.%s, m.%s,
			COUNT(*) OVER() AS total_count
		FROM %s m
		WHERE 1=1`,
		schema.CatalogManga.ID,
		schema.CatalogManga.Title,
		schema.CatalogManga.Description,
		schema.CatalogManga.Rating,
		schema.CatalogManga.Year,
		schema.CatalogManga.Tags,
		schema.CatalogManga.CoverURL,
		schema.CatalogManga.CreatedAt,
		schema.CatalogManga.UpdatedAt,
		schema.CatalogManga.Table,
	))

	// Title substring search (unanchored, case-insensitive)
	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND m.%s ILIKE $%d", schema.CatalogManga.Title, argID))
		args = append(args, "%"+filter.Search+"%")
		argID++
	}

	// Tag filtering: every requested tag must match the flattened tag list
	// as a substring (AND semantics). See [Filter.Tags] for the matching
	// looseness this implies.
	for _, tag := range filter.Tags {
		queryBuilder.WriteString(fmt.Sprintf(" AND array_to_string(m.%s, ',') ILIKE $%d", schema.CatalogManga.Tags, argID))
		args = append(args, "%"+tag+"%")
		argID++
	}

	// Exact year equality; NULL years are excluded by SQL comparison semantics.
	if filter.Year != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND m.%s = $%d", schema.CatalogManga.Year, argID))
		args = append(args, *filter.Year)
		argID++
	}

	// Rating floor. Zero means no filter, so 0.0-rated manga still qualify.
	if filter.MinRating > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND m.%s >= $%d", schema.CatalogManga.Rating, argID))
		args = append(args, filter.MinRating)
		argID++
	}

	// Apply Sorting Logic
	switch filter.Sort.Normalize() {
	case SortRating:
		queryBuilder.WriteString(fmt.Sprintf(" ORDER BY m.%s DESC", schema.CatalogManga.Rating))
	case SortNewest:
		queryBuilder.WriteString(fmt.Sprintf(" ORDER BY m.%s DESC NULLS LAST", schema.CatalogManga.Year))
	case SortTitle:
		queryBuilder.WriteString(fmt.Sprintf(" ORDER BY m.%s ASC", schema.CatalogManga.Title))
	default: // popular
		queryBuilder.WriteString(fmt.Sprintf(" ORDER BY m.%s DESC, m.%s ASC", schema.CatalogManga.Rating, schema.CatalogManga.Title))
	}

	// Pagination injection
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, skip)

	return queryBuilder.String(), args
}

// # Repository Implementation

/*
List returns a filtered, paginated slice of manga and the total match count.

Description: Executes the statement produced by buildListQuery. The window
function total is scanned from every row; with zero matching rows the total
is zero by construction.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - skip: int

Returns:
  - []*Manga: Slice of hydrated catalog entities
  - int: Total count matching the filter
  - error: Database execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, skip int) ([]*Manga, int, error) {
	query, args := buildListQuery(filter, limit, skip)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_manga")
	}
	defer rows.Close()

	mangaList := make([]*Manga, 0)
	totalCount := 0

	for rows.Next() {
		manga := &Manga{}
		if err := rows.Scan(
			&manga.ID,
			&manga.Title,
			&manga.Description,
			&manga.Rating,
			&manga.Year,
			&manga.Tags,
			&manga.CoverURL,
			&manga.CreatedAt,
			&manga.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_manga")
		}
		mangaList = append(mangaList, manga)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate_manga")
	}

	return mangaList, totalCount, nil
}

/*
DistinctTags returns every distinct raw tag value across all manga.

Description: Unnests the tags array server-side. Values come back exactly as
stored — cleaning and deduplication beyond SQL DISTINCT are the service's
concern.

Parameters:
  - context: context.Context

Returns:
  - []string: Raw distinct tag values
  - error: Database execution errors
*/
func (repository *PostgresRepository) DistinctTags(context context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT unnest(%s) FROM %s WHERE %s IS NOT NULL`,
		schema.CatalogManga.Tags, schema.CatalogManga.Table, schema.CatalogManga.Tags)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "distinct_tags")
	}
	defer rows.Close()

	tags := make([]string, 0)
	for rows.Next() {
		var tag *string
		if err := rows.Scan(&tag); err != nil {
			return nil, dberr.Wrap(err, "scan_tag")
		}
		if tag != nil {
			tags = append(tags, *tag)
		}
	}

	return tags, rows.Err()
}

/*
FindByID returns the manga with the given ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Manga: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Manga, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.CatalogManga.Columns(), ", "), schema.CatalogManga.Table, schema.CatalogManga.ID)

	manga := &Manga{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&manga.ID,
		&manga.Title,
		&manga.Description,
		&manga.Rating,
		&manga.Year,
		&manga.Tags,
		&manga.CoverURL,
		&manga.CreatedAt,
		&manga.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Manga")
		}
		return nil, fmt.Errorf("postgres_manga_find_by_id_failed: %w", err)
	}

	return manga, nil
}

/*
FindByTitle returns the manga with the given exact title.

Description: Used for uniqueness checks before create/update; titles carry a
unique constraint.

Parameters:
  - context: context.Context
  - title: string

Returns:
  - *Manga: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByTitle(context context.Context, title string) (*Manga, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.CatalogManga.Columns(), ", "), schema.CatalogManga.Table, schema.CatalogManga.Title)

	manga := &Manga{}
	err := repository.pool.QueryRow(context, query, title).Scan(
		&manga.ID,
		&manga.Title,
		&manga.Description,
		&manga.Rating,
		&manga.Year,
		&manga.Tags,
		&manga.CoverURL,
		&manga.CreatedAt,
		&manga.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Manga")
		}
		return nil, fmt.Errorf("postgres_manga_find_by_title_failed: %w", err)
	}

	return manga, nil
}

/*
Create persists a new manga record.

Description: The rating column is deliberately absent from the statement —
it starts at its schema default of 0 and is only ever written by
RecomputeRating.

Parameters:
  - context: context.Context
  - manga: *Manga

Returns:
  - error: apperr.Conflict on a duplicate title, or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, manga *Manga) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		schema.CatalogManga.Table,
		schema.CatalogManga.ID,
		schema.CatalogManga.Title,
		schema.CatalogManga.Description,
		schema.CatalogManga.Year,
		schema.CatalogManga.Tags,
		schema.CatalogManga.CoverURL,
		schema.CatalogManga.CreatedAt,
		schema.CatalogManga.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		manga.ID,
		manga.Title,
		manga.Description,
		manga.Year,
		manga.Tags,
		manga.CoverURL,
		manga.CreatedAt,
		manga.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Manga with this title already exists")
		}
		return fmt.Errorf("postgres_manga_create_failed: %w", err)
	}

	return nil
}

/*
Update persists changes to the mutable metadata fields.

Description: The rating column is intentionally excluded; catalog updates can
never overwrite the derived value.

Parameters:
  - context: context.Context
  - manga: *Manga

Returns:
  - error: apperr.NotFound, apperr.Conflict, or connectivity errors
*/
func (repository *PostgresRepository) Update(context context.Context, manga *Manga) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $1`,
		schema.CatalogManga.Table,
		schema.CatalogManga.Title,
		schema.CatalogManga.Description,
		schema.CatalogManga.Year,
		schema.CatalogManga.Tags,
		schema.CatalogManga.CoverURL,
		schema.CatalogManga.UpdatedAt,
		schema.CatalogManga.ID,
	)

	tag, err := repository.pool.Exec(context, query,
		manga.ID,
		manga.Title,
		manga.Description,
		manga.Year,
		manga.Tags,
		manga.CoverURL,
		manga.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Manga with this title already exists")
		}
		return fmt.Errorf("postgres_manga_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Manga")
	}

	return nil
}

/*
Delete removes a manga row.

Description: Reviews, likes, and library entries referencing the manga are
removed by ON DELETE CASCADE constraints.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or connectivity errors
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogManga.Table, schema.CatalogManga.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_manga_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Manga")
	}

	return nil
}

// # Rating Aggregation

/*
RecomputeRating re-derives and persists a manga's rating from its current
review set.

Description: Runs inside a single transaction. The manga row is locked first
(SELECT ... FOR UPDATE) so two concurrent recomputations for the same manga
serialize instead of racing read-then-write; a review mutation committed
between the read and the write can therefore never be silently lost. The
mean itself is computed by [AverageRating] over the ratings read inside the
same transaction.

Parameters:
  - context: context.Context
  - mangaID: string

Returns:
  - error: apperr.NotFound when the manga is absent (no write happens),
    otherwise transaction or connectivity errors
*/
func (repository *PostgresRepository) RecomputeRating(context context.Context, mangaID string) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_rating_begin_failed: %w", err)
	}
	// Rollback is a no-op after a successful commit.
	defer func() { _ = tx.Rollback(context) }()

	// Lock the target row. A concurrently deleted manga surfaces here as
	// NotFound, which callers treat as a normal outcome.
	lockQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`,
		schema.CatalogManga.ID, schema.CatalogManga.Table, schema.CatalogManga.ID)

	var lockedID string
	if err := tx.QueryRow(context, lockQuery, mangaID).Scan(&lockedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Manga")
		}
		return fmt.Errorf("postgres_rating_lock_failed: %w", err)
	}

	// Full recomputation: read every current review rating for the manga.
	ratingsQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.SocialReview.Rating, schema.SocialReview.Table, schema.SocialReview.MangaID)

	rows, err := tx.Query(context, ratingsQuery, mangaID)
	if err != nil {
		return fmt.Errorf("postgres_rating_read_failed: %w", err)
	}

	var ratings []int
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			rows.Close()
			return fmt.Errorf("postgres_rating_scan_failed: %w", err)
		}
		ratings = append(ratings, rating)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("postgres_rating_iterate_failed: %w", err)
	}

	updateQuery := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.CatalogManga.Table, schema.CatalogManga.Rating, schema.CatalogManga.ID)

	if _, err := tx.Exec(context, updateQuery, mangaID, AverageRating(ratings)); err != nil {
		return fmt.Errorf("postgres_rating_write_failed: %w", err)
	}

	if err := tx.Commit(context); err != nil {
		return fmt.Errorf("postgres_rating_commit_failed: %w", err)
	}

	return nil
}
