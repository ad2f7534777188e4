package dto

import (
	"time"

	"github.com/courserank/backend/internal/app/models"
)

// SubmitComparisonRequest records one pairwise judgement. WinnerID must be
// one of the two offerings.
type SubmitComparisonRequest struct {
	OfferingAID int64  `json:"offeringAId" binding:"required" example:"7"`
	OfferingBID int64  `json:"offeringBId" binding:"required" example:"9"`
	WinnerID    int64  `json:"winnerId" binding:"required" example:"7"`
	Category    string `json:"category" binding:"required" example:"difficulty" enums:"difficulty,enjoyment,engagement"`
}

// ComparisonResponse is one recorded comparison with display metadata.
type ComparisonResponse struct {
	ID        int64            `json:"id" example:"101"`
	Category  models.Category  `json:"category" example:"enjoyment"`
	Winner    OfferingResponse `json:"winner"`
	Loser     OfferingResponse `json:"loser"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NextPairResponse is the pair the user should compare next. Completed is
// true once every (pair, category) combination over the user's offerings has
// been judged; the offering fields are empty in that case.
type NextPairResponse struct {
	Completed            bool              `json:"completed" example:"false"`
	Category             models.Category   `json:"category,omitempty" example:"difficulty"`
	OfferingA            *OfferingResponse `json:"offeringA,omitempty"`
	OfferingB            *OfferingResponse `json:"offeringB,omitempty"`
	RemainingComparisons int               `json:"remainingComparisons" example:"12"`
	TotalComparisons     int               `json:"totalComparisons" example:"3"`
	Threshold            int               `json:"threshold" example:"15"`
	ThresholdReached     bool              `json:"thresholdReached" example:"false"`
}

// RankingCategory is one category's standing for an offering, restricted to
// the requesting user's own history for win/loss numbers.
type RankingCategory struct {
	Rating      int     `json:"rating" example:"1531"`
	Comparisons int     `json:"comparisons" example:"2"`
	Wins        int     `json:"wins" example:"2"`
	Losses      int     `json:"losses" example:"0"`
	WinRate     float64 `json:"winRate" example:"1"`
}

// RankingEntry aggregates one offering's standing across all categories.
type RankingEntry struct {
	Offering   OfferingResponse                    `json:"offering"`
	Categories map[models.Category]RankingCategory `json:"categories"`
	Compared   bool                                `json:"compared" example:"true"`
	MeanRating float64                             `json:"meanRating" example:"1510.33"`
}
