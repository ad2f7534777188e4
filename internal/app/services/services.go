package services

import (
	"context"
	"time"

	"github.com/courserank/backend/internal/app/models"
	"github.com/courserank/backend/internal/app/repositories"
)

// Store interfaces consumed by the services in this package. The pgx-backed
// repositories satisfy them in production; tests substitute in-memory fakes.

type comparisonStore interface {
	Create(ctx context.Context, comparison *models.Comparison) error
	ListByUser(ctx context.Context, userID int64) ([]*models.Comparison, error)
	LatestByUser(ctx context.Context, userID int64) (*models.Comparison, error)
	Delete(ctx context.Context, id int64) error
	CountByUser(ctx context.Context, userID int64) (int, error)
	SeenPairs(ctx context.Context, userID int64) (map[models.PairKey]struct{}, error)
}

type ratingStore interface {
	Get(ctx context.Context, offeringID int64, category models.Category) (*models.OfferingRating, error)
	ForOfferings(ctx context.Context, offeringIDs []int64) (map[int64]map[models.Category]*models.OfferingRating, error)
	UpdatePair(ctx context.Context, winnerID, loserID int64, category models.Category, fn repositories.RatingUpdateFn) error
}

type offeringStore interface {
	GetOfferingByID(ctx context.Context, id int64) (*models.CourseOffering, error)
	OfferingsByIDs(ctx context.Context, ids []int64) (map[int64]*models.CourseOffering, error)
}

type userCourseStore interface {
	ListByUser(ctx context.Context, userID int64) ([]*models.UserCourse, error)
	OfferingIDs(ctx context.Context, userID int64) ([]int64, error)
	Add(ctx context.Context, userID, offeringID int64) error
	Remove(ctx context.Context, userID, offeringID int64) error
}

type courseSearchStore interface {
	SearchCourses(ctx context.Context, query, department string, limit int) ([]*models.Course, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	OfferingsByCourse(ctx context.Context, courseID int64) ([]*models.CourseOffering, error)
}

type suggestionStore interface {
	EmbeddingsForUser(ctx context.Context, userID int64) ([][]float64, error)
	NearestCourses(ctx context.Context, centroid []float64, limit int, excludeUserID int64) ([]*models.Course, error)
	PopularCourses(ctx context.Context, limit int, excludeUserID int64) ([]*models.Course, error)
	RandomCourses(ctx context.Context, limit int, excludeUserID int64) ([]*models.Course, error)
}

type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type tokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error)
	RevokeToken(ctx context.Context, token string) error
}
