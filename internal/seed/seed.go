package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type seedCourse struct {
	code        string
	title       string
	description string
	department  string
	offerings   []seedOffering
}

type seedOffering struct {
	instructor string
	year       int
	term       string
}

var defaultCourses = []seedCourse{
	{
		code:        "CS101",
		title:       "Introduction to Programming",
		description: "Programming fundamentals with an emphasis on problem decomposition.",
		department:  "Computer Science",
		offerings: []seedOffering{
			{instructor: "A. Demir", year: 2025, term: "FALL"},
			{instructor: "L. Chen", year: 2025, term: "SPRING"},
		},
	},
	{
		code:        "CS201",
		title:       "Data Structures",
		description: "Lists, trees, hash tables and the analysis of their operations.",
		department:  "Computer Science",
		offerings: []seedOffering{
			{instructor: "A. Demir", year: 2025, term: "FALL"},
		},
	},
	{
		code:        "CS301",
		title:       "Algorithms",
		description: "Design and analysis of algorithms, greedy methods, dynamic programming.",
		department:  "Computer Science",
		offerings: []seedOffering{
			{instructor: "M. Okafor", year: 2025, term: "FALL"},
		},
	},
	{
		code:        "MATH120",
		title:       "Linear Algebra",
		description: "Vector spaces, linear maps, eigenvalues and applications.",
		department:  "Mathematics",
		offerings: []seedOffering{
			{instructor: "S. Novak", year: 2025, term: "FALL"},
			{instructor: "S. Novak", year: 2025, term: "SPRING"},
		},
	},
	{
		code:        "MATH210",
		title:       "Probability",
		description: "Probability spaces, random variables, limit theorems.",
		department:  "Mathematics",
		offerings: []seedOffering{
			{instructor: "J. Petrov", year: 2025, term: "SPRING"},
		},
	},
	{
		code:        "PHYS101",
		title:       "Mechanics",
		description: "Newtonian mechanics, energy, momentum and rotational motion.",
		department:  "Physics",
		offerings: []seedOffering{
			{instructor: "R. Iyer", year: 2025, term: "FALL"},
		},
	},
}

// CreateDefaultData seeds a small sample catalog when the courses table is
// empty. Embeddings are left null; the suggestion endpoint degrades to its
// popularity fallback until an embedding pipeline fills them in.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	var count int
	if err := dbPool.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count courses: %w", err)
	}
	if count > 0 {
		lgr.Info().Int("courses", count).Msg("Catalog already populated, skipping seed")
		return nil
	}

	lgr.Info().Msg("Seeding sample course catalog...")

	tx, err := dbPool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for _, course := range defaultCourses {
		var courseID int64
		err := tx.QueryRow(ctx,
			`INSERT INTO courses (code, title, description, department)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			course.code, course.title, course.description, course.department,
		).Scan(&courseID)
		if err != nil {
			return fmt.Errorf("failed to seed course %s: %w", course.code, err)
		}

		for _, offering := range course.offerings {
			_, err := tx.Exec(ctx,
				`INSERT INTO course_offerings (course_id, instructor, year, term)
				 VALUES ($1, $2, $3, $4)`,
				courseID, offering.instructor, offering.year, offering.term,
			)
			if err != nil {
				return fmt.Errorf("failed to seed offering for %s: %w", course.code, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	lgr.Info().Int("courses", len(defaultCourses)).Msg("Sample course catalog seeded")
	return nil
}
