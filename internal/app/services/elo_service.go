package services

import (
	"math"

	"github.com/courserank/backend/internal/app/models"
)

// KFactor bounds how far a single comparison can move a rating.
const KFactor = 32

// EloService implements the rating math. Ratings are stored as rounded
// integers; expected scores use the standard logistic curve with a 400 point
// scale.
type EloService struct{}

// NewEloService creates a new Elo service
func NewEloService() *EloService {
	return &EloService{}
}

// ExpectedScore returns the probability that a player rated ratingA beats a
// player rated ratingB.
func (s *EloService) ExpectedScore(ratingA, ratingB int) float64 {
	return 1 / (1 + math.Pow(10, float64(ratingB-ratingA)/400))
}

// ApplyOutcome computes the post-comparison rating records for a winner and
// loser. Nil inputs mean the offering has never been compared in the
// category and resolve to the default rating with a zero count; records are
// created lazily this way rather than pre-seeded. Both comparison counts are
// incremented.
func (s *EloService) ApplyOutcome(winnerID, loserID int64, category models.Category, winner, loser *models.OfferingRating) (*models.OfferingRating, *models.OfferingRating) {
	if winner == nil {
		winner = models.NewOfferingRating(winnerID, category)
	}
	if loser == nil {
		loser = models.NewOfferingRating(loserID, category)
	}

	expectedWinner := s.ExpectedScore(winner.Rating, loser.Rating)
	expectedLoser := s.ExpectedScore(loser.Rating, winner.Rating)

	newWinner := &models.OfferingRating{
		OfferingID:      winner.OfferingID,
		Category:        category,
		Rating:          int(math.Round(float64(winner.Rating) + KFactor*(1-expectedWinner))),
		ComparisonCount: winner.ComparisonCount + 1,
	}
	newLoser := &models.OfferingRating{
		OfferingID:      loser.OfferingID,
		Category:        category,
		Rating:          int(math.Round(float64(loser.Rating) + KFactor*(0-expectedLoser))),
		ComparisonCount: loser.ComparisonCount + 1,
	}

	return newWinner, newLoser
}
