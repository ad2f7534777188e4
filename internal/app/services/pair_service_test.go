package services

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/courserank/backend/internal/app/models"
	"github.com/courserank/backend/internal/pkg/apperrors"
)

func newPairFixture(t *testing.T, userID int64, offeringIDs ...int64) (*PairService, *fakeComparisonStore, *fakeRatingStore) {
	t.Helper()
	userCourses := newFakeUserCourseStore()
	for _, id := range offeringIDs {
		if err := userCourses.Add(context.Background(), userID, id); err != nil {
			t.Fatalf("seed user course %d: %v", id, err)
		}
	}
	comparisons := &fakeComparisonStore{}
	ratings := newFakeRatingStore()
	svc := NewPairService(userCourses, comparisons, ratings, newFakeOfferingStore(offeringIDs...), NewEloService(), rand.New(rand.NewSource(1)))
	return svc, comparisons, ratings
}

func TestNextPairRequiresTwoOfferings(t *testing.T) {
	svc, _, _ := newPairFixture(t, 1, 42)

	_, err := svc.NextPair(context.Background(), 1)
	if !errors.Is(err, apperrors.ErrInsufficientOfferings) {
		t.Fatalf("NextPair = %v, want ErrInsufficientOfferings", err)
	}
}

func TestNextPairFreshUser(t *testing.T) {
	svc, _, _ := newPairFixture(t, 1, 10, 20)

	resp, err := svc.NextPair(context.Background(), 1)
	if err != nil {
		t.Fatalf("NextPair: %v", err)
	}

	if resp.Completed {
		t.Fatal("Completed = true for a fresh user")
	}
	// Two offerings across three categories leave three candidates.
	if resp.RemainingComparisons != 3 {
		t.Errorf("RemainingComparisons = %d, want 3", resp.RemainingComparisons)
	}
	if resp.TotalComparisons != 0 {
		t.Errorf("TotalComparisons = %d, want 0", resp.TotalComparisons)
	}
	if resp.Threshold != ContributionThreshold || resp.ThresholdReached {
		t.Errorf("threshold = %d reached=%v, want %d and false", resp.Threshold, resp.ThresholdReached, ContributionThreshold)
	}
	if resp.OfferingA == nil || resp.OfferingB == nil {
		t.Fatal("pair offerings missing")
	}
	if resp.OfferingA.ID != 10 || resp.OfferingB.ID != 20 {
		t.Errorf("pair = (%d, %d), want (10, 20)", resp.OfferingA.ID, resp.OfferingB.ID)
	}
	if !resp.Category.IsValid() {
		t.Errorf("invalid category %q", resp.Category)
	}
}

func TestNextPairSkipsSeenAndCompletes(t *testing.T) {
	svc, comparisons, _ := newPairFixture(t, 1, 10, 20)
	ctx := context.Background()

	for _, category := range models.Categories() {
		err := comparisons.Create(ctx, &models.Comparison{
			UserID:      1,
			OfferingAID: 10,
			OfferingBID: 20,
			WinnerID:    10,
			Category:    category,
		})
		if err != nil {
			t.Fatalf("seed comparison: %v", err)
		}
	}

	resp, err := svc.NextPair(ctx, 1)
	if err != nil {
		t.Fatalf("NextPair: %v", err)
	}
	if !resp.Completed {
		t.Fatal("Completed = false after exhausting every pair")
	}
	if resp.RemainingComparisons != 0 {
		t.Errorf("RemainingComparisons = %d, want 0", resp.RemainingComparisons)
	}
	if resp.OfferingA != nil || resp.OfferingB != nil {
		t.Error("completed response still carries a pair")
	}
	if resp.TotalComparisons != 3 {
		t.Errorf("TotalComparisons = %d, want 3", resp.TotalComparisons)
	}
}

func TestNextPairReturnsOnlyUnseenCandidate(t *testing.T) {
	svc, comparisons, _ := newPairFixture(t, 1, 10, 20)
	ctx := context.Background()

	// Leave exactly one candidate so the sampling window has a single entry.
	for _, category := range []models.Category{models.CategoryDifficulty, models.CategoryEnjoyment} {
		err := comparisons.Create(ctx, &models.Comparison{
			UserID:      1,
			OfferingAID: 10,
			OfferingBID: 20,
			WinnerID:    10,
			Category:    category,
		})
		if err != nil {
			t.Fatalf("seed comparison: %v", err)
		}
	}

	resp, err := svc.NextPair(ctx, 1)
	if err != nil {
		t.Fatalf("NextPair: %v", err)
	}
	if resp.Category != models.CategoryEngagement {
		t.Errorf("category = %s, want engagement", resp.Category)
	}
	if resp.RemainingComparisons != 1 {
		t.Errorf("RemainingComparisons = %d, want 1", resp.RemainingComparisons)
	}
}

func TestNextPairThresholdReached(t *testing.T) {
	svc, comparisons, _ := newPairFixture(t, 1, 10, 20, 30, 40, 50, 60)
	ctx := context.Background()

	ids := []int64{10, 20, 30, 40, 50, 60}
	total := 0
	for i := 0; i < len(ids) && total < ContributionThreshold; i++ {
		for j := i + 1; j < len(ids) && total < ContributionThreshold; j++ {
			err := comparisons.Create(ctx, &models.Comparison{
				UserID:      1,
				OfferingAID: ids[i],
				OfferingBID: ids[j],
				WinnerID:    ids[i],
				Category:    models.CategoryDifficulty,
			})
			if err != nil {
				t.Fatalf("seed comparison: %v", err)
			}
			total++
		}
	}

	resp, err := svc.NextPair(ctx, 1)
	if err != nil {
		t.Fatalf("NextPair: %v", err)
	}
	if !resp.ThresholdReached {
		t.Errorf("ThresholdReached = false with %d comparisons", resp.TotalComparisons)
	}
}

func TestScoreCandidatesPrefersUncertainPairs(t *testing.T) {
	svc, _, ratings := newPairFixture(t, 1, 10, 20, 30)

	// 10 and 20 are evenly matched, 30 is far ahead. Counts are equal so
	// diversity does not separate the candidates.
	ratings.set(10, models.CategoryDifficulty, 1500, 1)
	ratings.set(20, models.CategoryDifficulty, 1500, 1)
	ratings.set(30, models.CategoryDifficulty, 1900, 1)

	ratingMap, err := ratings.ForOfferings(context.Background(), []int64{10, 20, 30})
	if err != nil {
		t.Fatalf("ForOfferings: %v", err)
	}

	seen := map[models.PairKey]struct{}{}
	for _, category := range []models.Category{models.CategoryEnjoyment, models.CategoryEngagement} {
		seen[models.NewPairKey(10, 20, category)] = struct{}{}
		seen[models.NewPairKey(10, 30, category)] = struct{}{}
		seen[models.NewPairKey(20, 30, category)] = struct{}{}
	}

	candidates := svc.scoreCandidates([]int64{10, 20, 30}, seen, ratingMap)
	if len(candidates) != 3 {
		t.Fatalf("got %d candidates, want 3", len(candidates))
	}

	best := candidates[0].key
	if best.OfferingAID != 10 || best.OfferingBID != 20 {
		t.Errorf("best candidate = (%d, %d), want the evenly matched (10, 20)", best.OfferingAID, best.OfferingBID)
	}
	if candidates[0].score <= candidates[1].score {
		t.Errorf("best score %v not above runner up %v", candidates[0].score, candidates[1].score)
	}
}

func TestScoreCandidatesDiversityDecay(t *testing.T) {
	svc, _, ratings := newPairFixture(t, 1, 10, 20)

	ratings.set(10, models.CategoryDifficulty, 1500, 5)
	ratings.set(20, models.CategoryDifficulty, 1500, 8)

	ratingMap, err := ratings.ForOfferings(context.Background(), []int64{10, 20})
	if err != nil {
		t.Fatalf("ForOfferings: %v", err)
	}

	seen := map[models.PairKey]struct{}{
		models.NewPairKey(10, 20, models.CategoryEnjoyment):  {},
		models.NewPairKey(10, 20, models.CategoryEngagement): {},
	}

	candidates := svc.scoreCandidates([]int64{10, 20}, seen, ratingMap)
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}

	// Uncertainty is 1 for equal ratings; diversity decays with the smaller
	// count, here min(5, 8) = 5.
	want := uncertaintyWeight + diversityWeight*math.Exp(-1)
	if math.Abs(candidates[0].score-want) > 1e-9 {
		t.Errorf("score = %v, want %v", candidates[0].score, want)
	}
}
