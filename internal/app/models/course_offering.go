package models

// CourseOffering represents a specific offering of a course by an instructor
// in a given year and term. Comparisons and ratings attach to offerings, not
// to catalog courses.
type CourseOffering struct {
	ID         int64  `json:"id" db:"id"`
	CourseID   int64  `json:"courseId" db:"course_id"`
	Instructor string `json:"instructor" db:"instructor"`
	Year       int    `json:"year" db:"year"`
	Term       Term   `json:"term" db:"term"`

	// Relation (populated when needed)
	Course *Course `json:"course,omitempty"`
}
