package models

// Course represents a catalog course. Its description embedding lives only in
// the database; queries that need it work on the vector directly.
type Course struct {
	ID          int64   `json:"id" db:"id"`
	Code        string  `json:"code" db:"code"`
	Title       string  `json:"title" db:"title"`
	Description *string `json:"description,omitempty" db:"description"` // Nullable
	Department  string  `json:"department" db:"department"`
}
