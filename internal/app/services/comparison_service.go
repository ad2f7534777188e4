package services

import (
	"context"
	"fmt"

	"github.com/courserank/backend/internal/app/models"
	"github.com/courserank/backend/internal/app/models/dto"
	"github.com/courserank/backend/internal/pkg/apperrors"
	"github.com/courserank/backend/internal/pkg/logger"
)

// ComparisonService records pairwise judgements and drives the rating
// updates they cause.
type ComparisonService struct {
	comparisons comparisonStore
	ratings     ratingStore
	offerings   offeringStore
	elo         *EloService
}

// NewComparisonService creates a new comparison service
func NewComparisonService(comparisons comparisonStore, ratings ratingStore, offerings offeringStore, elo *EloService) *ComparisonService {
	return &ComparisonService{
		comparisons: comparisons,
		ratings:     ratings,
		offerings:   offerings,
		elo:         elo,
	}
}

// Submit records a comparison between two offerings. The comparison itself
// is authoritative: if it is stored but the rating update fails, the failure
// is logged and the submission still succeeds. Ratings can be rebuilt from
// the comparison history.
func (s *ComparisonService) Submit(ctx context.Context, userID, offeringXID, offeringYID, winnerID int64, category models.Category) (*models.Comparison, error) {
	if offeringXID <= 0 || offeringYID <= 0 || offeringXID == offeringYID {
		return nil, apperrors.ErrInvalidPair
	}
	if winnerID != offeringXID && winnerID != offeringYID {
		return nil, apperrors.ErrInvalidWinner
	}
	if !category.IsValid() {
		return nil, apperrors.ErrInvalidCategory
	}

	found, err := s.offerings.OfferingsByIDs(ctx, []int64{offeringXID, offeringYID})
	if err != nil {
		return nil, fmt.Errorf("failed to look up offerings: %w", err)
	}
	if _, ok := found[offeringXID]; !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrOfferingNotFound,
			fmt.Sprintf("offering %d does not exist", offeringXID))
	}
	if _, ok := found[offeringYID]; !ok {
		return nil, apperrors.NewCustomError(apperrors.ErrOfferingNotFound,
			fmt.Sprintf("offering %d does not exist", offeringYID))
	}

	a, b := models.NormalizePair(offeringXID, offeringYID)
	comparison := &models.Comparison{
		UserID:      userID,
		OfferingAID: a,
		OfferingBID: b,
		WinnerID:    winnerID,
		Category:    category,
	}

	if err := s.comparisons.Create(ctx, comparison); err != nil {
		return nil, err
	}

	loserID := comparison.LoserID()
	err = s.ratings.UpdatePair(ctx, winnerID, loserID, category, func(winner, loser *models.OfferingRating) (*models.OfferingRating, *models.OfferingRating) {
		return s.elo.ApplyOutcome(winnerID, loserID, category, winner, loser)
	})
	if err != nil {
		logger.Error().Err(err).
			Int64("winnerId", winnerID).
			Int64("loserId", loserID).
			Str("category", string(category)).
			Msg("Rating update failed after comparison was recorded")
	}

	return comparison, nil
}

// ListForUser returns the user's comparisons, most recent first, with
// offering display data attached.
func (s *ComparisonService) ListForUser(ctx context.Context, userID int64) ([]dto.ComparisonResponse, error) {
	comparisons, err := s.comparisons.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comparisons: %w", err)
	}

	idSet := make(map[int64]struct{})
	for _, c := range comparisons {
		idSet[c.OfferingAID] = struct{}{}
		idSet[c.OfferingBID] = struct{}{}
	}
	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	offerings, err := s.offerings.OfferingsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load offerings: %w", err)
	}

	responses := make([]dto.ComparisonResponse, 0, len(comparisons))
	for _, c := range comparisons {
		responses = append(responses, dto.ComparisonResponse{
			ID:        c.ID,
			Category:  c.Category,
			Winner:    dto.FromOffering(offerings[c.WinnerID]),
			Loser:     dto.FromOffering(offerings[c.LoserID()]),
			CreatedAt: c.CreatedAt,
		})
	}

	return responses, nil
}

// UndoLast removes the user's most recent comparison and reapplies the
// rating update with winner and loser swapped. Because Elo updates depend on
// the ratings at the time they are applied, the reversal is approximate when
// other comparisons touched the same offerings in between; ratings drift
// slightly rather than being restored exactly, and comparison counts are not
// decremented.
func (s *ComparisonService) UndoLast(ctx context.Context, userID int64) (*models.Comparison, error) {
	latest, err := s.comparisons.LatestByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up latest comparison: %w", err)
	}
	if latest == nil {
		return nil, apperrors.ErrNothingToUndo
	}

	if err := s.comparisons.Delete(ctx, latest.ID); err != nil {
		return nil, fmt.Errorf("failed to delete comparison: %w", err)
	}

	// Compensating update: the original loser is treated as the winner.
	winnerID, loserID := latest.LoserID(), latest.WinnerID
	err = s.ratings.UpdatePair(ctx, winnerID, loserID, latest.Category, func(winner, loser *models.OfferingRating) (*models.OfferingRating, *models.OfferingRating) {
		return s.elo.ApplyOutcome(winnerID, loserID, latest.Category, winner, loser)
	})
	if err != nil {
		logger.Error().Err(err).
			Int64("comparisonId", latest.ID).
			Msg("Compensating rating update failed during undo")
	}

	return latest, nil
}
