package services

import (
	"context"
	"errors"
	"testing"

	"github.com/courserank/backend/internal/app/models"
	"github.com/courserank/backend/internal/pkg/apperrors"
)

func newComparisonFixture(offeringIDs ...int64) (*ComparisonService, *fakeComparisonStore, *fakeRatingStore) {
	comparisons := &fakeComparisonStore{}
	ratings := newFakeRatingStore()
	svc := NewComparisonService(comparisons, ratings, newFakeOfferingStore(offeringIDs...), NewEloService())
	return svc, comparisons, ratings
}

func TestSubmitStoresNormalizedPairAndUpdatesRatings(t *testing.T) {
	svc, comparisons, ratings := newComparisonFixture(7, 9)

	comparison, err := svc.Submit(context.Background(), 1, 9, 7, 9, models.CategoryDifficulty)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if comparison.OfferingAID != 7 || comparison.OfferingBID != 9 {
		t.Errorf("stored pair = (%d, %d), want (7, 9)", comparison.OfferingAID, comparison.OfferingBID)
	}
	if comparison.WinnerID != 9 || comparison.LoserID() != 7 {
		t.Errorf("winner/loser = %d/%d, want 9/7", comparison.WinnerID, comparison.LoserID())
	}
	if len(comparisons.items) != 1 {
		t.Fatalf("stored %d comparisons, want 1", len(comparisons.items))
	}

	if got := ratings.ratingOf(9, models.CategoryDifficulty); got != 1516 {
		t.Errorf("winner rating = %d, want 1516", got)
	}
	if got := ratings.ratingOf(7, models.CategoryDifficulty); got != 1484 {
		t.Errorf("loser rating = %d, want 1484", got)
	}
	if ratings.countOf(9, models.CategoryDifficulty) != 1 || ratings.countOf(7, models.CategoryDifficulty) != 1 {
		t.Error("comparison counts not incremented on both sides")
	}
}

func TestSubmitRejectsDuplicatePairRegardlessOfOrder(t *testing.T) {
	svc, _, _ := newComparisonFixture(7, 9)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, 1, 7, 9, 7, models.CategoryDifficulty); err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	// Same pair in reverse order with a different winner is still a repeat.
	_, err := svc.Submit(ctx, 1, 9, 7, 9, models.CategoryDifficulty)
	if !errors.Is(err, apperrors.ErrDuplicateComparison) {
		t.Fatalf("Submit duplicate = %v, want ErrDuplicateComparison", err)
	}
}

func TestSubmitAllowsSamePairInOtherCategory(t *testing.T) {
	svc, _, _ := newComparisonFixture(7, 9)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, 1, 7, 9, 7, models.CategoryDifficulty); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	if _, err := svc.Submit(ctx, 1, 7, 9, 9, models.CategoryEnjoyment); err != nil {
		t.Fatalf("Submit in second category: %v", err)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc, _, _ := newComparisonFixture(7, 9)
	ctx := context.Background()

	cases := []struct {
		name     string
		x, y, w  int64
		category models.Category
		want     error
	}{
		{"same offering", 7, 7, 7, models.CategoryDifficulty, apperrors.ErrInvalidPair},
		{"non positive id", 0, 9, 9, models.CategoryDifficulty, apperrors.ErrInvalidPair},
		{"winner outside pair", 7, 9, 11, models.CategoryDifficulty, apperrors.ErrInvalidWinner},
		{"unknown category", 7, 9, 7, models.Category("clarity"), apperrors.ErrInvalidCategory},
		{"missing offering", 7, 11, 7, models.CategoryDifficulty, apperrors.ErrOfferingNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, 1, tc.x, tc.y, tc.w, tc.category)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Submit = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestSubmitSucceedsWhenRatingUpdateFails(t *testing.T) {
	svc, comparisons, ratings := newComparisonFixture(7, 9)
	ratings.updateErr = errors.New("connection reset")

	comparison, err := svc.Submit(context.Background(), 1, 7, 9, 7, models.CategoryDifficulty)
	if err != nil {
		t.Fatalf("Submit = %v, want success despite rating failure", err)
	}
	if comparison == nil || len(comparisons.items) != 1 {
		t.Fatal("comparison was not recorded")
	}
	if len(ratings.ratings) != 0 {
		t.Error("ratings changed even though the update failed")
	}
}

func TestUndoLastWithoutHistory(t *testing.T) {
	svc, _, _ := newComparisonFixture(7, 9)

	_, err := svc.UndoLast(context.Background(), 1)
	if !errors.Is(err, apperrors.ErrNothingToUndo) {
		t.Fatalf("UndoLast = %v, want ErrNothingToUndo", err)
	}
}

func TestUndoLastDeletesAndCompensates(t *testing.T) {
	svc, comparisons, ratings := newComparisonFixture(7, 9)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, 1, 7, 9, 7, models.CategoryDifficulty); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	undone, err := svc.UndoLast(ctx, 1)
	if err != nil {
		t.Fatalf("UndoLast: %v", err)
	}
	if undone.WinnerID != 7 {
		t.Errorf("undone winner = %d, want 7", undone.WinnerID)
	}
	if len(comparisons.items) != 0 {
		t.Errorf("%d comparisons remain, want 0", len(comparisons.items))
	}

	// The compensating update applies Elo at the post-comparison ratings, so
	// the originals are approximated, not restored: 1516/1484 becomes
	// 1499/1501 and both counts tick up again.
	if got := ratings.ratingOf(7, models.CategoryDifficulty); got != 1499 {
		t.Errorf("original winner rating after undo = %d, want 1499", got)
	}
	if got := ratings.ratingOf(9, models.CategoryDifficulty); got != 1501 {
		t.Errorf("original loser rating after undo = %d, want 1501", got)
	}
	if ratings.countOf(7, models.CategoryDifficulty) != 2 || ratings.countOf(9, models.CategoryDifficulty) != 2 {
		t.Error("comparison counts were not incremented by the compensating update")
	}

	// The pair can be compared again once the comparison is gone.
	if _, err := svc.Submit(ctx, 1, 7, 9, 9, models.CategoryDifficulty); err != nil {
		t.Fatalf("Submit after undo: %v", err)
	}
}

func TestListForUserNewestFirst(t *testing.T) {
	svc, _, _ := newComparisonFixture(1, 2, 3)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, 5, 1, 2, 1, models.CategoryDifficulty); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := svc.Submit(ctx, 5, 2, 3, 3, models.CategoryEnjoyment); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := svc.Submit(ctx, 6, 1, 3, 1, models.CategoryDifficulty); err != nil {
		t.Fatalf("Submit for other user: %v", err)
	}

	list, err := svc.ListForUser(ctx, 5)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("listed %d comparisons, want 2", len(list))
	}
	if list[0].Category != models.CategoryEnjoyment || list[0].Winner.ID != 3 || list[0].Loser.ID != 2 {
		t.Errorf("first entry = %s winner %d loser %d, want enjoyment 3/2", list[0].Category, list[0].Winner.ID, list[0].Loser.ID)
	}
	if list[1].Category != models.CategoryDifficulty || list[1].Winner.ID != 1 {
		t.Errorf("second entry = %s winner %d, want difficulty 1", list[1].Category, list[1].Winner.ID)
	}
}
