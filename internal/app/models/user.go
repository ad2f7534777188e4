package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email     string    `json:"email" db:"email" example:"user@school.edu"`               // User's email address
	Password  string    `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	FirstName string    `json:"firstName" db:"first_name" example:"John"`                 // User's first name
	LastName  string    `json:"lastName" db:"last_name" example:"Doe"`                    // User's last name
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
}

// UserCourse links a user to an offering on their course list.
type UserCourse struct {
	UserID     int64     `json:"userId" db:"user_id"`
	OfferingID int64     `json:"offeringId" db:"offering_id"`
	AddedAt    time.Time `json:"addedAt" db:"added_at"`

	// Relation (populated when needed)
	Offering *CourseOffering `json:"offering,omitempty"`
}
