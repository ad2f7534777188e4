package models

import "time"

// Rating defaults. An offering that has never been compared in a category has
// no row at all; readers substitute DefaultRating and a zero count.
const (
	DefaultRating = 1500
)

// OfferingRating is the Elo state of one offering in one category.
type OfferingRating struct {
	OfferingID      int64     `json:"offeringId" db:"offering_id"`
	Category        Category  `json:"category" db:"category"`
	Rating          int       `json:"rating" db:"rating"`
	ComparisonCount int       `json:"comparisonCount" db:"comparison_count"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// NewOfferingRating returns the implicit default record for an offering that
// has no stored rating in the given category.
func NewOfferingRating(offeringID int64, category Category) *OfferingRating {
	return &OfferingRating{
		OfferingID: offeringID,
		Category:   category,
		Rating:     DefaultRating,
	}
}
