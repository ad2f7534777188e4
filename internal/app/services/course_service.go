package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/courserank/backend/internal/app/models"
	"github.com/courserank/backend/internal/app/models/dto"
)

// MaxCourseSearchLimit caps catalog search page size.
const MaxCourseSearchLimit = 100

// CourseService exposes read access to the course catalog.
type CourseService struct {
	catalog courseSearchStore
	ratings ratingStore
}

// NewCourseService creates a new course service
func NewCourseService(catalog courseSearchStore, ratings ratingStore) *CourseService {
	return &CourseService{
		catalog: catalog,
		ratings: ratings,
	}
}

// Search finds catalog courses by free text and optional department filter
func (s *CourseService) Search(ctx context.Context, query, department string, limit int) ([]dto.CourseResponse, error) {
	if limit <= 0 || limit > MaxCourseSearchLimit {
		limit = MaxCourseSearchLimit
	}

	courses, err := s.catalog.SearchCourses(ctx, strings.TrimSpace(query), strings.TrimSpace(department), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search courses: %w", err)
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, dto.FromCourse(course))
	}
	return responses, nil
}

// GetCourse retrieves a single course
func (s *CourseService) GetCourse(ctx context.Context, id int64) (dto.CourseResponse, error) {
	course, err := s.catalog.GetCourseByID(ctx, id)
	if err != nil {
		return dto.CourseResponse{}, err
	}
	return dto.FromCourse(course), nil
}

// GetOfferings lists a course's offerings with their current ratings. Every
// category is present in the response; categories without any comparisons
// carry the default rating and a zero count.
func (s *CourseService) GetOfferings(ctx context.Context, courseID int64) ([]dto.OfferingResponse, error) {
	course, err := s.catalog.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	offerings, err := s.catalog.OfferingsByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load offerings: %w", err)
	}

	ids := make([]int64, 0, len(offerings))
	for _, offering := range offerings {
		ids = append(ids, offering.ID)
	}

	ratings, err := s.ratings.ForOfferings(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings: %w", err)
	}

	responses := make([]dto.OfferingResponse, 0, len(offerings))
	for _, offering := range offerings {
		offering.Course = course
		resp := dto.FromOffering(offering)
		resp.Ratings = make(map[models.Category]dto.CategoryRating, len(models.Categories()))
		for _, category := range models.Categories() {
			rating := dto.CategoryRating{Rating: models.DefaultRating}
			if byCategory, ok := ratings[offering.ID]; ok {
				if r, ok := byCategory[category]; ok {
					rating = dto.CategoryRating{Rating: r.Rating, ComparisonCount: r.ComparisonCount}
				}
			}
			resp.Ratings[category] = rating
		}
		responses = append(responses, resp)
	}

	return responses, nil
}
