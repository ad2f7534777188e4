package services

import (
	"context"
	"fmt"

	"github.com/courserank/backend/internal/app/models/dto"
)

// UserCourseService manages the offerings on a user's course list.
type UserCourseService struct {
	userCourses userCourseStore
	offerings   offeringStore
}

// NewUserCourseService creates a new user course service
func NewUserCourseService(userCourses userCourseStore, offerings offeringStore) *UserCourseService {
	return &UserCourseService{
		userCourses: userCourses,
		offerings:   offerings,
	}
}

// List returns the offerings on the user's list, most recently added first
func (s *UserCourseService) List(ctx context.Context, userID int64) ([]dto.OfferingResponse, error) {
	entries, err := s.userCourses.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user courses: %w", err)
	}

	responses := make([]dto.OfferingResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.FromOffering(entry.Offering))
	}
	return responses, nil
}

// Add puts an offering on the user's list after checking it exists
func (s *UserCourseService) Add(ctx context.Context, userID, offeringID int64) (dto.OfferingResponse, error) {
	offering, err := s.offerings.GetOfferingByID(ctx, offeringID)
	if err != nil {
		return dto.OfferingResponse{}, err
	}

	if err := s.userCourses.Add(ctx, userID, offeringID); err != nil {
		return dto.OfferingResponse{}, err
	}

	return dto.FromOffering(offering), nil
}

// Remove takes an offering off the user's list. The user's comparisons
// involving the offering are deleted with it; the offering's global ratings
// are not touched.
func (s *UserCourseService) Remove(ctx context.Context, userID, offeringID int64) error {
	return s.userCourses.Remove(ctx, userID, offeringID)
}
