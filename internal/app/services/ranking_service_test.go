package services

import (
	"context"
	"math"
	"testing"

	"github.com/courserank/backend/internal/app/models"
)

func newRankingFixture(t *testing.T, userID int64, offeringIDs ...int64) (*RankingService, *fakeComparisonStore, *fakeRatingStore) {
	t.Helper()
	userCourses := newFakeUserCourseStore()
	for _, id := range offeringIDs {
		if err := userCourses.Add(context.Background(), userID, id); err != nil {
			t.Fatalf("seed user course %d: %v", id, err)
		}
	}
	comparisons := &fakeComparisonStore{}
	ratings := newFakeRatingStore()
	svc := NewRankingService(userCourses, comparisons, ratings, newFakeOfferingStore(offeringIDs...))
	return svc, comparisons, ratings
}

func TestUserRankingsEmptyList(t *testing.T) {
	svc, _, _ := newRankingFixture(t, 1)

	entries, err := svc.UserRankings(context.Background(), 1)
	if err != nil {
		t.Fatalf("UserRankings: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries for an empty list, want 0", len(entries))
	}
}

func TestUserRankingsDefaultsWithoutComparisons(t *testing.T) {
	svc, _, _ := newRankingFixture(t, 1, 10, 20)

	entries, err := svc.UserRankings(context.Background(), 1)
	if err != nil {
		t.Fatalf("UserRankings: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	for _, entry := range entries {
		if entry.Compared {
			t.Errorf("offering %d marked compared without history", entry.Offering.ID)
		}
		if entry.MeanRating != models.DefaultRating {
			t.Errorf("offering %d mean rating = %v, want %d", entry.Offering.ID, entry.MeanRating, models.DefaultRating)
		}
		for _, category := range models.Categories() {
			c := entry.Categories[category]
			if c.Rating != models.DefaultRating || c.Comparisons != 0 || c.WinRate != 0 {
				t.Errorf("offering %d %s = %+v, want untouched defaults", entry.Offering.ID, category, c)
			}
		}
	}

	// Ties fall back to ascending offering id.
	if entries[0].Offering.ID != 10 || entries[1].Offering.ID != 20 {
		t.Errorf("order = %d, %d, want 10, 20", entries[0].Offering.ID, entries[1].Offering.ID)
	}
}

func TestUserRankingsComparedSortBeforeUntouched(t *testing.T) {
	svc, comparisons, ratings := newRankingFixture(t, 1, 10, 20, 30)
	ctx := context.Background()

	err := comparisons.Create(ctx, &models.Comparison{
		UserID:      1,
		OfferingAID: 10,
		OfferingBID: 20,
		WinnerID:    20,
		Category:    models.CategoryDifficulty,
	})
	if err != nil {
		t.Fatalf("seed comparison: %v", err)
	}
	ratings.set(20, models.CategoryDifficulty, 1516, 1)
	ratings.set(10, models.CategoryDifficulty, 1484, 1)

	// 30 has a high global rating but the user never compared it.
	ratings.set(30, models.CategoryDifficulty, 1800, 12)

	entries, err := svc.UserRankings(ctx, 1)
	if err != nil {
		t.Fatalf("UserRankings: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	if entries[0].Offering.ID != 20 || entries[1].Offering.ID != 10 || entries[2].Offering.ID != 30 {
		t.Fatalf("order = %d, %d, %d, want compared 20, 10 then untouched 30",
			entries[0].Offering.ID, entries[1].Offering.ID, entries[2].Offering.ID)
	}

	winner := entries[0]
	if !winner.Compared {
		t.Error("winner not marked compared")
	}
	difficulty := winner.Categories[models.CategoryDifficulty]
	if difficulty.Wins != 1 || difficulty.Losses != 0 || difficulty.WinRate != 1 {
		t.Errorf("winner difficulty stats = %+v, want one win", difficulty)
	}
	wantMean := (1516.0 + 1500 + 1500) / 3
	if math.Abs(winner.MeanRating-wantMean) > 1e-9 {
		t.Errorf("winner mean rating = %v, want %v", winner.MeanRating, wantMean)
	}

	loser := entries[1]
	stats := loser.Categories[models.CategoryDifficulty]
	if stats.Wins != 0 || stats.Losses != 1 || stats.WinRate != 0 {
		t.Errorf("loser difficulty stats = %+v, want one loss", stats)
	}

	untouched := entries[2]
	if untouched.Compared {
		t.Error("untouched offering marked compared")
	}
	if got := untouched.Categories[models.CategoryDifficulty]; got.Rating != 1800 || got.Comparisons != 0 {
		t.Errorf("untouched difficulty = %+v, want global rating 1800 with no personal comparisons", got)
	}
}

func TestUserRankingsOtherUsersHistoryIgnored(t *testing.T) {
	svc, comparisons, _ := newRankingFixture(t, 1, 10, 20)
	ctx := context.Background()

	err := comparisons.Create(ctx, &models.Comparison{
		UserID:      99,
		OfferingAID: 10,
		OfferingBID: 20,
		WinnerID:    10,
		Category:    models.CategoryEnjoyment,
	})
	if err != nil {
		t.Fatalf("seed comparison: %v", err)
	}

	entries, err := svc.UserRankings(ctx, 1)
	if err != nil {
		t.Fatalf("UserRankings: %v", err)
	}
	for _, entry := range entries {
		if entry.Compared {
			t.Errorf("offering %d marked compared from another user's history", entry.Offering.ID)
		}
	}
}
