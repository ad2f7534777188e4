package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courserank/backend/internal/app/models"
	"github.com/courserank/backend/internal/pkg/apperrors"
	"github.com/courserank/backend/internal/pkg/dberrors"
)

// ComparisonRepository handles database operations for comparisons
type ComparisonRepository struct {
	db *pgxpool.Pool
}

// NewComparisonRepository creates a new comparison repository
func NewComparisonRepository(db *pgxpool.Pool) *ComparisonRepository {
	return &ComparisonRepository{
		db: db,
	}
}

// Create inserts a comparison. The pair must already be normalized with
// OfferingAID < OfferingBID.
func (r *ComparisonRepository) Create(ctx context.Context, comparison *models.Comparison) error {
	query := `
		INSERT INTO comparisons (user_id, offering_a_id, offering_b_id, winner_id, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		comparison.UserID,
		comparison.OfferingAID,
		comparison.OfferingBID,
		comparison.WinnerID,
		comparison.Category,
	).Scan(&comparison.ID, &comparison.CreatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "comparisons_user_pair_category_key") {
			return apperrors.ErrDuplicateComparison
		}
		return fmt.Errorf("error creating comparison: %w", err)
	}

	return nil
}

// ListByUser retrieves all of a user's comparisons, most recent first
func (r *ComparisonRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Comparison, error) {
	query := `
		SELECT id, user_id, offering_a_id, offering_b_id, winner_id, category, created_at
		FROM comparisons
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing comparisons: %w", err)
	}
	defer rows.Close()

	return scanComparisons(rows)
}

// LatestByUser retrieves the user's most recent comparison, or nil when the
// user has none.
func (r *ComparisonRepository) LatestByUser(ctx context.Context, userID int64) (*models.Comparison, error) {
	query := `
		SELECT id, user_id, offering_a_id, offering_b_id, winner_id, category, created_at
		FROM comparisons
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var comparison models.Comparison
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&comparison.ID,
		&comparison.UserID,
		&comparison.OfferingAID,
		&comparison.OfferingBID,
		&comparison.WinnerID,
		&comparison.Category,
		&comparison.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving latest comparison: %w", err)
	}

	return &comparison, nil
}

// ListAll retrieves every comparison in submission order. Used to replay the
// ledger when rebuilding ratings from scratch.
func (r *ComparisonRepository) ListAll(ctx context.Context) ([]*models.Comparison, error) {
	query := `
		SELECT id, user_id, offering_a_id, offering_b_id, winner_id, category, created_at
		FROM comparisons
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing comparisons: %w", err)
	}
	defer rows.Close()

	return scanComparisons(rows)
}

// Delete removes a comparison by id
func (r *ComparisonRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM comparisons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting comparison: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// CountByUser returns how many comparisons the user has recorded
func (r *ComparisonRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM comparisons WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting comparisons: %w", err)
	}
	return count, nil
}

// SeenPairs returns the (pair, category) combinations the user has already
// judged.
func (r *ComparisonRepository) SeenPairs(ctx context.Context, userID int64) (map[models.PairKey]struct{}, error) {
	query := `
		SELECT offering_a_id, offering_b_id, category
		FROM comparisons
		WHERE user_id = $1
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving seen pairs: %w", err)
	}
	defer rows.Close()

	seen := make(map[models.PairKey]struct{})
	for rows.Next() {
		var key models.PairKey
		if err := rows.Scan(&key.OfferingAID, &key.OfferingBID, &key.Category); err != nil {
			return nil, err
		}
		seen[key] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seen, nil
}

func scanComparisons(rows pgx.Rows) ([]*models.Comparison, error) {
	var comparisons []*models.Comparison
	for rows.Next() {
		var comparison models.Comparison
		if err := rows.Scan(
			&comparison.ID,
			&comparison.UserID,
			&comparison.OfferingAID,
			&comparison.OfferingBID,
			&comparison.WinnerID,
			&comparison.Category,
			&comparison.CreatedAt,
		); err != nil {
			return nil, err
		}
		comparisons = append(comparisons, &comparison)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comparisons, nil
}
