package dto

import "github.com/courserank/backend/internal/app/models"

// CourseResponse is the public view of a catalog course.
type CourseResponse struct {
	ID          int64  `json:"id" example:"42"`
	Code        string `json:"code" example:"CS 2110"`
	Title       string `json:"title" example:"Object-Oriented Programming and Data Structures"`
	Description string `json:"description,omitempty"`
	Department  string `json:"department" example:"CS"`
}

// FromCourse converts a models.Course to a CourseResponse.
func FromCourse(course *models.Course) CourseResponse {
	if course == nil {
		return CourseResponse{}
	}

	resp := CourseResponse{
		ID:         course.ID,
		Code:       course.Code,
		Title:      course.Title,
		Department: course.Department,
	}
	if course.Description != nil {
		resp.Description = *course.Description
	}
	return resp
}

// CategoryRating is the rating state of an offering in one category.
type CategoryRating struct {
	Rating          int `json:"rating" example:"1516"`
	ComparisonCount int `json:"comparisonCount" example:"3"`
}

// OfferingResponse is the public view of a course offering, with its current
// rating in each category. Offerings that were never compared in a category
// show the default rating with a zero count.
type OfferingResponse struct {
	ID          int64                              `json:"id" example:"7"`
	CourseID    int64                              `json:"courseId" example:"42"`
	CourseCode  string                             `json:"courseCode,omitempty" example:"CS 2110"`
	CourseTitle string                             `json:"courseTitle,omitempty"`
	Instructor  string                             `json:"instructor" example:"D. Gries"`
	Term        string                             `json:"term" example:"FALL"`
	Year        int                                `json:"year" example:"2025"`
	Ratings     map[models.Category]CategoryRating `json:"ratings,omitempty"`
}

// FromOffering converts a models.CourseOffering to an OfferingResponse
// without rating data.
func FromOffering(offering *models.CourseOffering) OfferingResponse {
	if offering == nil {
		return OfferingResponse{}
	}

	resp := OfferingResponse{
		ID:         offering.ID,
		CourseID:   offering.CourseID,
		Instructor: offering.Instructor,
		Term:       string(offering.Term),
		Year:       offering.Year,
	}
	if offering.Course != nil {
		resp.CourseCode = offering.Course.Code
		resp.CourseTitle = offering.Course.Title
	}
	return resp
}

// AddUserCourseRequest puts an offering on the authenticated user's list.
type AddUserCourseRequest struct {
	OfferingID int64 `json:"offeringId" binding:"required" example:"7"`
}
