package services

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/courserank/backend/internal/app/models"
	"github.com/courserank/backend/internal/app/models/dto"
	"github.com/courserank/backend/internal/pkg/apperrors"
)

// Pair selection constants.
const (
	// MinOfferingsToCompare is the smallest course list that yields a pair.
	MinOfferingsToCompare = 2
	// ContributionThreshold is the comparison count surfaced to clients as a
	// participation goal. It does not gate anything server side.
	ContributionThreshold = 15
	// TopSampleWindow is how many of the highest scored candidates the next
	// pair is sampled from.
	TopSampleWindow = 5

	uncertaintyWeight = 0.7
	diversityWeight   = 0.3
	diversityScale    = 5.0
)

// PairService chooses which pair a user should compare next. Candidates are
// every unseen (pair, category) combination over the user's offerings,
// scored by how informative the comparison would be.
type PairService struct {
	userCourses userCourseStore
	comparisons comparisonStore
	ratings     ratingStore
	offerings   offeringStore
	elo         *EloService
	rng         *rand.Rand
}

// NewPairService creates a new pair service
func NewPairService(userCourses userCourseStore, comparisons comparisonStore, ratings ratingStore, offerings offeringStore, elo *EloService, rng *rand.Rand) *PairService {
	return &PairService{
		userCourses: userCourses,
		comparisons: comparisons,
		ratings:     ratings,
		offerings:   offerings,
		elo:         elo,
		rng:         rng,
	}
}

type pairCandidate struct {
	key   models.PairKey
	score float64
}

// NextPair picks the next comparison for the user. The score blends
// uncertainty (how close the predicted outcome is to a coin flip) with
// diversity (how rarely the offerings have been compared), and the result is
// sampled uniformly from the top scored window so users do not all converge
// on the same pair.
func (s *PairService) NextPair(ctx context.Context, userID int64) (*dto.NextPairResponse, error) {
	offeringIDs, err := s.userCourses.OfferingIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user offerings: %w", err)
	}
	if len(offeringIDs) < MinOfferingsToCompare {
		return nil, apperrors.ErrInsufficientOfferings
	}

	seen, err := s.comparisons.SeenPairs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load seen pairs: %w", err)
	}

	ratings, err := s.ratings.ForOfferings(ctx, offeringIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings: %w", err)
	}

	total, err := s.comparisons.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count comparisons: %w", err)
	}

	candidates := s.scoreCandidates(offeringIDs, seen, ratings)
	response := &dto.NextPairResponse{
		TotalComparisons:     total,
		RemainingComparisons: len(candidates),
		Threshold:            ContributionThreshold,
		ThresholdReached:     total >= ContributionThreshold,
	}

	if len(candidates) == 0 {
		response.Completed = true
		return response, nil
	}

	window := TopSampleWindow
	if len(candidates) < window {
		window = len(candidates)
	}
	picked := candidates[s.rng.Intn(window)]

	offerings, err := s.offerings.OfferingsByIDs(ctx, []int64{picked.key.OfferingAID, picked.key.OfferingBID})
	if err != nil {
		return nil, fmt.Errorf("failed to load pair offerings: %w", err)
	}

	offeringA := dto.FromOffering(offerings[picked.key.OfferingAID])
	offeringB := dto.FromOffering(offerings[picked.key.OfferingBID])
	response.Category = picked.key.Category
	response.OfferingA = &offeringA
	response.OfferingB = &offeringB

	return response, nil
}

// scoreCandidates enumerates unseen (pair, category) combinations and sorts
// them best first with a deterministic tie break.
func (s *PairService) scoreCandidates(offeringIDs []int64, seen map[models.PairKey]struct{}, ratings map[int64]map[models.Category]*models.OfferingRating) []pairCandidate {
	ratingOf := func(id int64, category models.Category) (int, int) {
		if byCategory, ok := ratings[id]; ok {
			if r, ok := byCategory[category]; ok {
				return r.Rating, r.ComparisonCount
			}
		}
		return models.DefaultRating, 0
	}

	var candidates []pairCandidate
	for i := 0; i < len(offeringIDs); i++ {
		for j := i + 1; j < len(offeringIDs); j++ {
			for _, category := range models.Categories() {
				key := models.NewPairKey(offeringIDs[i], offeringIDs[j], category)
				if _, done := seen[key]; done {
					continue
				}

				ratingA, countA := ratingOf(key.OfferingAID, category)
				ratingB, countB := ratingOf(key.OfferingBID, category)

				p := s.elo.ExpectedScore(ratingA, ratingB)
				uncertainty := 1 - 2*math.Abs(p-0.5)

				minCount := countA
				if countB < minCount {
					minCount = countB
				}
				diversity := math.Exp(-float64(minCount) / diversityScale)

				candidates = append(candidates, pairCandidate{
					key:   key,
					score: uncertaintyWeight*uncertainty + diversityWeight*diversity,
				})
			}
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		if candidates[i].key.OfferingAID != candidates[j].key.OfferingAID {
			return candidates[i].key.OfferingAID < candidates[j].key.OfferingAID
		}
		if candidates[i].key.OfferingBID != candidates[j].key.OfferingBID {
			return candidates[i].key.OfferingBID < candidates[j].key.OfferingBID
		}
		return candidates[i].key.Category < candidates[j].key.Category
	})

	return candidates
}
