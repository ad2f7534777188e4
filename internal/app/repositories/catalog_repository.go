package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courserank/backend/internal/app/models"
	"github.com/courserank/backend/internal/pkg/apperrors"
)

// CatalogRepository handles database operations for courses and offerings,
// including the pgvector similarity queries over course embeddings.
type CatalogRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// vectorLiteral encodes a vector in the pgvector input format "[x,y,...]".
func vectorLiteral(v []float64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	}
	b.WriteByte(']')
	return b.String()
}

// parseVector decodes the pgvector text representation produced by
// embedding::text.
func parseVector(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("malformed vector literal")
	}

	parts := strings.Split(s[1:len(s)-1], ",")
	vector := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("malformed vector component: %w", err)
		}
		vector = append(vector, f)
	}
	return vector, nil
}

// SearchCourses retrieves courses matching an optional text query and
// department filter.
func (r *CatalogRepository) SearchCourses(ctx context.Context, query, department string, limit int) ([]*models.Course, error) {
	builder := r.sb.Select("id", "code", "title", "description", "department").
		From("courses").
		OrderBy("code").
		Limit(uint64(limit))

	if query != "" {
		pattern := "%" + query + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"code": pattern},
			squirrel.ILike{"title": pattern},
		})
	}
	if department != "" {
		builder = builder.Where(squirrel.Eq{"department": department})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course search query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error searching courses: %w", err)
	}
	defer rows.Close()

	return scanCourses(rows)
}

// GetCourseByID retrieves a course by ID
func (r *CatalogRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT id, code, title, description, department
		FROM courses
		WHERE id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Code,
		&course.Title,
		&course.Description,
		&course.Department,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// GetOfferingByID retrieves an offering with its course populated
func (r *CatalogRepository) GetOfferingByID(ctx context.Context, id int64) (*models.CourseOffering, error) {
	query := `
		SELECT o.id, o.course_id, o.instructor, o.year, o.term,
		       c.id, c.code, c.title, c.description, c.department
		FROM course_offerings o
		JOIN courses c ON c.id = o.course_id
		WHERE o.id = $1
	`

	var offering models.CourseOffering
	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
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
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOfferingNotFound
		}
		return nil, fmt.Errorf("error retrieving offering: %w", err)
	}

	offering.Course = &course
	return &offering, nil
}

// OfferingsByCourse retrieves all offerings of a course
func (r *CatalogRepository) OfferingsByCourse(ctx context.Context, courseID int64) ([]*models.CourseOffering, error) {
	query := `
		SELECT id, course_id, instructor, year, term
		FROM course_offerings
		WHERE course_id = $1
		ORDER BY year DESC, term, instructor
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving offerings: %w", err)
	}
	defer rows.Close()

	var offerings []*models.CourseOffering
	for rows.Next() {
		var offering models.CourseOffering
		if err := rows.Scan(
			&offering.ID,
			&offering.CourseID,
			&offering.Instructor,
			&offering.Year,
			&offering.Term,
		); err != nil {
			return nil, err
		}
		offerings = append(offerings, &offering)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return offerings, nil
}

// OfferingsByIDs retrieves offerings with their courses, keyed by offering id
func (r *CatalogRepository) OfferingsByIDs(ctx context.Context, ids []int64) (map[int64]*models.CourseOffering, error) {
	result := make(map[int64]*models.CourseOffering, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `
		SELECT o.id, o.course_id, o.instructor, o.year, o.term,
		       c.id, c.code, c.title, c.description, c.department
		FROM course_offerings o
		JOIN courses c ON c.id = o.course_id
		WHERE o.id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("error retrieving offerings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var offering models.CourseOffering
		var course models.Course
		if err := rows.Scan(
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
		result[offering.ID] = &offering
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// EmbeddingsForUser returns the embeddings of the courses on a user's list,
// skipping courses that have not been embedded.
func (r *CatalogRepository) EmbeddingsForUser(ctx context.Context, userID int64) ([][]float64, error) {
	query := `
		SELECT DISTINCT ON (c.id) c.id, c.embedding::text
		FROM user_courses uc
		JOIN course_offerings o ON o.id = uc.offering_id
		JOIN courses c ON c.id = o.course_id
		WHERE uc.user_id = $1 AND c.embedding IS NOT NULL
		ORDER BY c.id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving user embeddings: %w", err)
	}
	defer rows.Close()

	var embeddings [][]float64
	for rows.Next() {
		var id int64
		var text string
		if err := rows.Scan(&id, &text); err != nil {
			return nil, err
		}
		vector, err := parseVector(text)
		if err != nil {
			return nil, fmt.Errorf("course %d: %w", id, err)
		}
		embeddings = append(embeddings, vector)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return embeddings, nil
}

// NearestCourses returns the courses whose embeddings are closest to the
// given centroid by cosine distance, excluding courses already on the user's
// list.
func (r *CatalogRepository) NearestCourses(ctx context.Context, centroid []float64, limit int, excludeUserID int64) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.code, c.title, c.description, c.department
		FROM courses c
		WHERE c.embedding IS NOT NULL
		  AND c.id NOT IN (
			SELECT o.course_id
			FROM user_courses uc
			JOIN course_offerings o ON o.id = uc.offering_id
			WHERE uc.user_id = $1
		  )
		ORDER BY c.embedding <=> $2::vector
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, excludeUserID, vectorLiteral(centroid), limit)
	if err != nil {
		return nil, fmt.Errorf("error running vector search: %w", err)
	}
	defer rows.Close()

	return scanCourses(rows)
}

// PopularCourses returns courses ordered by total comparison volume across
// their offerings, excluding the user's own courses.
func (r *CatalogRepository) PopularCourses(ctx context.Context, limit int, excludeUserID int64) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.code, c.title, c.description, c.department
		FROM courses c
		LEFT JOIN course_offerings o ON o.course_id = c.id
		LEFT JOIN offering_ratings r ON r.offering_id = o.id
		WHERE c.id NOT IN (
			SELECT o2.course_id
			FROM user_courses uc
			JOIN course_offerings o2 ON o2.id = uc.offering_id
			WHERE uc.user_id = $1
		)
		GROUP BY c.id
		ORDER BY COALESCE(SUM(r.comparison_count), 0) DESC, c.code
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, excludeUserID, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving popular courses: %w", err)
	}
	defer rows.Close()

	return scanCourses(rows)
}

// RandomCourses returns a random sample of courses the user does not have
func (r *CatalogRepository) RandomCourses(ctx context.Context, limit int, excludeUserID int64) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.code, c.title, c.description, c.department
		FROM courses c
		WHERE c.id NOT IN (
			SELECT o.course_id
			FROM user_courses uc
			JOIN course_offerings o ON o.id = uc.offering_id
			WHERE uc.user_id = $1
		)
		ORDER BY RANDOM()
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, excludeUserID, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving random courses: %w", err)
	}
	defer rows.Close()

	return scanCourses(rows)
}

func scanCourses(rows pgx.Rows) ([]*models.Course, error) {
	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.Code,
			&course.Title,
			&course.Description,
			&course.Department,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}
