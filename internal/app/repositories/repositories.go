package repositories

import (
	"github.com/courserank/backend/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	TokenRepository      *TokenRepository
	CatalogRepository    *CatalogRepository
	UserCourseRepository *UserCourseRepository
	ComparisonRepository *ComparisonRepository
	RatingRepository     *RatingRepository
}

// NewRepositories initializes all repositories over one database handle
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(database.Pool),
		TokenRepository:      NewTokenRepository(database.Pool),
		CatalogRepository:    NewCatalogRepository(database.Pool),
		UserCourseRepository: NewUserCourseRepository(database),
		ComparisonRepository: NewComparisonRepository(database.Pool),
		RatingRepository:     NewRatingRepository(database),
	}
}
