package models

import "time"

// Comparison is one recorded pairwise judgement. The pair is stored
// normalized with OfferingAID < OfferingBID so the uniqueness constraint on
// (user, pair, category) is order independent; WinnerID is always one of the
// two.
type Comparison struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"userId" db:"user_id"`
	OfferingAID int64     `json:"offeringAId" db:"offering_a_id"`
	OfferingBID int64     `json:"offeringBId" db:"offering_b_id"`
	WinnerID    int64     `json:"winnerId" db:"winner_id"`
	Category    Category  `json:"category" db:"category"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// LoserID returns the offering that lost the comparison.
func (c *Comparison) LoserID() int64 {
	if c.WinnerID == c.OfferingAID {
		return c.OfferingBID
	}
	return c.OfferingAID
}

// NormalizePair orders two offering ids ascending.
func NormalizePair(x, y int64) (int64, int64) {
	if x > y {
		return y, x
	}
	return x, y
}

// PairKey identifies a normalized (pair, category) combination.
type PairKey struct {
	OfferingAID int64
	OfferingBID int64
	Category    Category
}

// NewPairKey builds a PairKey with the pair normalized ascending.
func NewPairKey(x, y int64, category Category) PairKey {
	a, b := NormalizePair(x, y)
	return PairKey{OfferingAID: a, OfferingBID: b, Category: category}
}
