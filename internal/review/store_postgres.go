// Copyright (c) 2026 MangaList. All rights reserved.

package review

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

// NewPostgresRepository constructs a PostgreSQL backed review store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
ListByManga returns a manga's reviews with author usernames, sorted and
paginated.

Description: Joins the account table for display names and rides the total
count along on every row via a window function.

Parameters:
  - context: context.Context
  - mangaID: string
  - sort: SortKey
  - limit: int
  - skip: int

Returns:
  - []*Review: Slice of hydrated reviews
  - int: Total review count for the manga
  - error: Database execution errors
*/
func (repository *PostgresRepository) ListByManga(context context.Context, mangaID string, sort SortKey, limit, skip int) ([]*Review, int, error) {
	orderBy := fmt.Sprintf("r.%s DESC, r.%s DESC", schema.SocialReview.Likes, schema.SocialReview.CreatedAt)
	if sort.Normalize() == SortNewest {
		orderBy = fmt.Sprintf("r.%s DESC", schema.SocialReview.CreatedAt)
	}

	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, a.%s, r.%s, r.%s, r.%s, r.%s,
			COUNT(*) OVER() AS total_count
		FROM %s r
		JOIN %s a ON a.%s = r.%s
		WHERE r.%s = $1
		ORDER BY %s
		LIMIT $2 OFFSET $3`,
		schema.SocialReview.ID,
		schema.SocialReview.UserID,
		schema.SocialReview.MangaID,
		schema.UsersAccount.Username,
		schema.SocialReview.Content,
		schema.SocialReview.Rating,
		schema.SocialReview.Likes,
		schema.SocialReview.CreatedAt,
		schema.SocialReview.Table,
		schema.UsersAccount.Table,
		schema.UsersAccount.ID,
		schema.SocialReview.UserID,
		schema.SocialReview.MangaID,
		orderBy,
	)

	rows, err := repository.pool.Query(context, query, mangaID, limit, skip)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	totalCount := 0

	for rows.Next() {
		review := &Review{}
		if err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.MangaID,
			&review.Username,
			&review.Content,
			&review.Rating,
			&review.Likes,
			&review.CreatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, review)
	}

	return reviews, totalCount, rows.Err()
}

/*
MangaExists reports whether a manga is present in the catalog.

Parameters:
  - context: context.Context
  - mangaID: string

Returns:
  - bool: Presence of the manga
  - error: Database execution errors
*/
func (repository *PostgresRepository) MangaExists(context context.Context, mangaID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CatalogManga.Table, schema.CatalogManga.ID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, mangaID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_manga_exists_failed: %w", err)
	}

	return exists, nil
}

/*
FindByID returns a single review by UUID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Review: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Review, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s WHERE %s = $1`,
		schema.SocialReview.ID,
		schema.SocialReview.UserID,
		schema.SocialReview.MangaID,
		schema.SocialReview.Content,
		schema.SocialReview.Rating,
		schema.SocialReview.Likes,
		schema.SocialReview.CreatedAt,
		schema.SocialReview.Table,
		schema.SocialReview.ID,
	)

	review := &Review{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&review.ID,
		&review.UserID,
		&review.MangaID,
		&review.Content,
		&review.Rating,
		&review.Likes,
		&review.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Review")
		}
		return nil, fmt.Errorf("postgres_review_find_by_id_failed: %w", err)
	}

	return review, nil
}

/*
Create persists a new review.

Description: The (userid, mangaid) unique constraint enforces the
one-review-per-user rule; a violation surfaces as apperr.Conflict. A
foreign-key failure on the manga reference surfaces as apperr.NotFound.

Parameters:
  - context: context.Context
  - review: *Review

Returns:
  - error: apperr.Conflict, apperr.NotFound, or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.SocialReview.Table,
		schema.SocialReview.ID,
		schema.SocialReview.UserID,
		schema.SocialReview.MangaID,
		schema.SocialReview.Content,
		schema.SocialReview.Rating,
		schema.SocialReview.Likes,
		schema.SocialReview.CreatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		review.ID,
		review.UserID,
		review.MangaID,
		review.Content,
		review.Rating,
		review.Likes,
		review.CreatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("You have already reviewed this manga")
		}
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("Manga")
		}
		return fmt.Errorf("postgres_review_create_failed: %w", err)
	}

	return nil
}

/*
Update persists content and rating changes for an existing review.

Parameters:
  - context: context.Context
  - review: *Review

Returns:
  - error: apperr.NotFound or connectivity errors
*/
func (repository *PostgresRepository) Update(context context.Context, review *Review) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.SocialReview.Table,
		schema.SocialReview.Content,
		schema.SocialReview.Rating,
		schema.SocialReview.ID,
	)

	tag, err := repository.pool.Exec(context, query, review.ID, review.Content, review.Rating)
	if err != nil {
		return fmt.Errorf("postgres_review_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	return nil
}

/*
Delete removes a review row; like rows cascade.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or connectivity errors
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.SocialReview.Table, schema.SocialReview.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_review_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	return nil
}

// # Like Toggling

/*
ToggleLike flips a user's like on a review.

Description: Runs inside a single transaction. The review row is locked
first so concurrent toggles serialize, then the like row is inserted or
deleted and the denormalized counter adjusted to match.

Parameters:
  - context: context.Context
  - userID: string
  - reviewID: string

Returns:
  - bool: Whether the user likes the review after the toggle
  - int: The review's like count after the toggle
  - error: apperr.NotFound when the review is absent, or transaction errors
*/
func (repository *PostgresRepository) ToggleLike(context context.Context, userID, reviewID string) (bool, int, error) {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return false, 0, fmt.Errorf("postgres_like_begin_failed: %w", err)
	}
	defer func() { _ = tx.Rollback(context) }()

	// Lock the review so the counter and the like rows cannot drift.
	lockQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`,
		schema.SocialReview.Likes, schema.SocialReview.Table, schema.SocialReview.ID)

	var likes int
	if err := tx.QueryRow(context, lockQuery, reviewID).Scan(&likes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, 0, apperr.NotFound("Review")
		}
		return false, 0, fmt.Errorf("postgres_like_lock_failed: %w", err)
	}

	existsQuery := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.SocialReviewLike.Table, schema.SocialReviewLike.UserID, schema.SocialReviewLike.ReviewID)

	var liked bool
	if err := tx.QueryRow(context, existsQuery, userID, reviewID).Scan(&liked); err != nil {
		return false, 0, fmt.Errorf("postgres_like_exists_failed: %w", err)
	}

	if liked {
		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
			schema.SocialReviewLike.Table, schema.SocialReviewLike.UserID, schema.SocialReviewLike.ReviewID)
		if _, err := tx.Exec(context, deleteQuery, userID, reviewID); err != nil {
			return false, 0, fmt.Errorf("postgres_like_delete_failed: %w", err)
		}
		likes--
	} else {
		insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
			schema.SocialReviewLike.Table, schema.SocialReviewLike.UserID, schema.SocialReviewLike.ReviewID)
		if _, err := tx.Exec(context, insertQuery, userID, reviewID); err != nil {
			return false, 0, fmt.Errorf("postgres_like_insert_failed: %w", err)
		}
		likes++
	}

	counterQuery := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.SocialReview.Table, schema.SocialReview.Likes, schema.SocialReview.ID)

	if _, err := tx.Exec(context, counterQuery, reviewID, likes); err != nil {
		return false, 0, fmt.Errorf("postgres_like_counter_failed: %w", err)
	}

	if err := tx.Commit(context); err != nil {
		return false, 0, fmt.Errorf("postgres_like_commit_failed: %w", err)
	}

	return !liked, likes, nil
}
