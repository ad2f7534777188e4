package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/courserank/backend/internal/app/models"
	"github.com/courserank/backend/internal/db"
)

// RatingUpdateFn computes new rating records from the current ones. Either
// input may be nil when the offering has never been compared in the category;
// the function is expected to resolve defaults itself.
type RatingUpdateFn func(winner, loser *models.OfferingRating) (*models.OfferingRating, *models.OfferingRating)

// RatingRepository handles database operations for offering ratings
type RatingRepository struct {
	db *db.PostgresDB
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(database *db.PostgresDB) *RatingRepository {
	return &RatingRepository{
		db: database,
	}
}

// Get retrieves the stored rating for an offering in a category, or nil when
// no row exists.
func (r *RatingRepository) Get(ctx context.Context, offeringID int64, category models.Category) (*models.OfferingRating, error) {
	query := `
		SELECT offering_id, category, rating, comparison_count, updated_at
		FROM offering_ratings
		WHERE offering_id = $1 AND category = $2
	`

	var rating models.OfferingRating
	err := r.db.Pool.QueryRow(ctx, query, offeringID, category).Scan(
		&rating.OfferingID,
		&rating.Category,
		&rating.Rating,
		&rating.ComparisonCount,
		&rating.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving rating: %w", err)
	}

	return &rating, nil
}

// ForOfferings retrieves every stored rating for the given offerings, keyed
// by offering id and category. Offerings without a row in a category are
// simply absent.
func (r *RatingRepository) ForOfferings(ctx context.Context, offeringIDs []int64) (map[int64]map[models.Category]*models.OfferingRating, error) {
	result := make(map[int64]map[models.Category]*models.OfferingRating)
	if len(offeringIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT offering_id, category, rating, comparison_count, updated_at
		FROM offering_ratings
		WHERE offering_id = ANY($1)
	`

	rows, err := r.db.Pool.Query(ctx, query, offeringIDs)
	if err != nil {
		return nil, fmt.Errorf("error retrieving ratings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rating models.OfferingRating
		if err := rows.Scan(
			&rating.OfferingID,
			&rating.Category,
			&rating.Rating,
			&rating.ComparisonCount,
			&rating.UpdatedAt,
		); err != nil {
			return nil, err
		}
		byCategory, ok := result[rating.OfferingID]
		if !ok {
			byCategory = make(map[models.Category]*models.OfferingRating)
			result[rating.OfferingID] = byCategory
		}
		byCategory[rating.Category] = &rating
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// UpdatePair applies fn to the winner and loser ratings atomically. Both rows
// are locked with SELECT ... FOR UPDATE inside one transaction so concurrent
// comparisons on the same offerings serialize instead of losing updates. Rows
// are locked in ascending offering id order to avoid deadlocks.
func (r *RatingRepository) UpdatePair(ctx context.Context, winnerID, loserID int64, category models.Category, fn RatingUpdateFn) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		firstID, secondID := models.NormalizePair(winnerID, loserID)

		first, err := lockRating(ctx, tx, firstID, category)
		if err != nil {
			return err
		}
		second, err := lockRating(ctx, tx, secondID, category)
		if err != nil {
			return err
		}

		winner, loser := first, second
		if firstID != winnerID {
			winner, loser = second, first
		}

		newWinner, newLoser := fn(winner, loser)

		if err := upsertRating(ctx, tx, newWinner); err != nil {
			return err
		}
		return upsertRating(ctx, tx, newLoser)
	})
}

// ResetAll deletes every rating row. Offerings fall back to the implicit
// default rating afterwards.
func (r *RatingRepository) ResetAll(ctx context.Context) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM offering_ratings`)
	if err != nil {
		return fmt.Errorf("error resetting ratings: %w", err)
	}
	return nil
}

func lockRating(ctx context.Context, tx pgx.Tx, offeringID int64, category models.Category) (*models.OfferingRating, error) {
	query := `
		SELECT offering_id, category, rating, comparison_count, updated_at
		FROM offering_ratings
		WHERE offering_id = $1 AND category = $2
		FOR UPDATE
	`

	var rating models.OfferingRating
	err := tx.QueryRow(ctx, query, offeringID, category).Scan(
		&rating.OfferingID,
		&rating.Category,
		&rating.Rating,
		&rating.ComparisonCount,
		&rating.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error locking rating row: %w", err)
	}

	return &rating, nil
}

func upsertRating(ctx context.Context, tx pgx.Tx, rating *models.OfferingRating) error {
	query := `
		INSERT INTO offering_ratings (offering_id, category, rating, comparison_count, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (offering_id, category)
		DO UPDATE SET rating = EXCLUDED.rating,
		              comparison_count = EXCLUDED.comparison_count,
		              updated_at = EXCLUDED.updated_at
	`

	_, err := tx.Exec(ctx, query,
		rating.OfferingID,
		rating.Category,
		rating.Rating,
		rating.ComparisonCount,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("error upserting rating: %w", err)
	}
	return nil
}
