package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/courserank/backend/internal/app/models"
	"github.com/courserank/backend/internal/db"
	"github.com/courserank/backend/internal/pkg/apperrors"
	"github.com/courserank/backend/internal/pkg/dberrors"
)

// UserCourseRepository handles database operations for users' course lists
type UserCourseRepository struct {
	db *db.PostgresDB
}

// NewUserCourseRepository creates a new user course repository
func NewUserCourseRepository(database *db.PostgresDB) *UserCourseRepository {
	return &UserCourseRepository{
		db: database,
	}
}

// ListByUser retrieves the offerings on a user's list with course details
func (r *UserCourseRepository) ListByUser(ctx context.Context, userID int64) ([]*models.UserCourse, error) {
	query := `
		SELECT uc.user_id, uc.offering_id, uc.added_at,
		       o.id, o.course_id, o.instructor, o.year, o.term,
		       c.id, c.code, c.title, c.description, c.department
		FROM user_courses uc
		JOIN course_offerings o ON o.id = uc.offering_id
		JOIN courses c ON c.id = o.course_id
		WHERE uc.user_id = $1
		ORDER BY uc.added_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing user courses: %w", err)
	}
	defer rows.Close()

	var entries []*models.UserCourse
	for rows.Next() {
		var entry models.UserCourse
		var offering models.CourseOffering
		var course models.Course
		if err := rows.Scan(
			&entry.UserID,
			&entry.OfferingID,
			&entry.AddedAt,
			&offering.ID,
			&offering.CourseID,
			&offering.Instructor,
			&offering.Year,
			&offering.Term,
			&course.ID,
			&course.Code,
			&course.Title,
			&course.Description,
			&course.Department,
		); err != nil {
			return nil, err
		}
		offering.Course = &course
		entry.Offering = &offering
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// OfferingIDs returns the ids of the offerings on a user's list
func (r *UserCourseRepository) OfferingIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT offering_id FROM user_courses WHERE user_id = $1 ORDER BY offering_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing user offering ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// Add puts an offering on the user's list
func (r *UserCourseRepository) Add(ctx context.Context, userID, offeringID int64) error {
	query := `
		INSERT INTO user_courses (user_id, offering_id)
		VALUES ($1, $2)
	`

	_, err := r.db.Pool.Exec(ctx, query, userID, offeringID)
	if err != nil {
		// The only unique constraint this insert can hit is the primary key.
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCourseAlreadyAdded
		}
		return fmt.Errorf("error adding user course: %w", err)
	}

	return nil
}

// Remove takes an offering off the user's list and deletes the user's
// comparisons involving it. Global ratings are left untouched.
func (r *UserCourseRepository) Remove(ctx context.Context, userID, offeringID int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx,
			`DELETE FROM user_courses WHERE user_id = $1 AND offering_id = $2`,
			userID, offeringID)
		if err != nil {
			return fmt.Errorf("error removing user course: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrResourceNotFound
		}

		_, err = tx.Exec(ctx,
			`DELETE FROM comparisons
			 WHERE user_id = $1 AND (offering_a_id = $2 OR offering_b_id = $2)`,
			userID, offeringID)
		if err != nil {
			return fmt.Errorf("error removing comparisons for offering: %w", err)
		}

		return nil
	})
}
