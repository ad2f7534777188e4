package models

// Category identifies the dimension a comparison is judged on. Ratings are
// kept separately per category.
type Category string

const (
	CategoryDifficulty Category = "difficulty"
	CategoryEnjoyment  Category = "enjoyment"
	CategoryEngagement Category = "engagement"
)

// Categories returns every valid category in a stable order.
func Categories() []Category {
	return []Category{CategoryDifficulty, CategoryEnjoyment, CategoryEngagement}
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryDifficulty, CategoryEnjoyment, CategoryEngagement:
		return true
	}
	return false
}

// Term represents a semester term
type Term string

// Term constants
const (
	TermFall   Term = "FALL"
	TermSpring Term = "SPRING"
)
