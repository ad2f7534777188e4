package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/courserank/backend/internal/app/models"
	"github.com/courserank/backend/internal/app/models/dto"
)

// RankingService aggregates a user's personal rankings: global ratings for
// the offerings on their list, with win/loss numbers restricted to the
// user's own comparison history.
type RankingService struct {
	userCourses userCourseStore
	comparisons comparisonStore
	ratings     ratingStore
	offerings   offeringStore
}

// NewRankingService creates a new ranking service
func NewRankingService(userCourses userCourseStore, comparisons comparisonStore, ratings ratingStore, offerings offeringStore) *RankingService {
	return &RankingService{
		userCourses: userCourses,
		comparisons: comparisons,
		ratings:     ratings,
		offerings:   offerings,
	}
}

// UserRankings builds the ranking board for a user. Offerings the user has
// compared sort before untouched ones; within each group ordering is by
// descending mean rating across the categories.
func (s *RankingService) UserRankings(ctx context.Context, userID int64) ([]dto.RankingEntry, error) {
	offeringIDs, err := s.userCourses.OfferingIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user offerings: %w", err)
	}
	if len(offeringIDs) == 0 {
		return []dto.RankingEntry{}, nil
	}

	offerings, err := s.offerings.OfferingsByIDs(ctx, offeringIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load offerings: %w", err)
	}

	ratings, err := s.ratings.ForOfferings(ctx, offeringIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings: %w", err)
	}

	history, err := s.comparisons.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comparison history: %w", err)
	}

	type tally struct {
		wins   int
		losses int
	}
	stats := make(map[int64]map[models.Category]tally)
	for _, c := range history {
		winner, loser := c.WinnerID, c.LoserID()
		for _, id := range []int64{winner, loser} {
			if _, ok := stats[id]; !ok {
				stats[id] = make(map[models.Category]tally)
			}
		}
		w := stats[winner][c.Category]
		w.wins++
		stats[winner][c.Category] = w

		l := stats[loser][c.Category]
		l.losses++
		stats[loser][c.Category] = l
	}

	entries := make([]dto.RankingEntry, 0, len(offeringIDs))
	for _, id := range offeringIDs {
		offering, ok := offerings[id]
		if !ok {
			continue
		}

		entry := dto.RankingEntry{
			Offering:   dto.FromOffering(offering),
			Categories: make(map[models.Category]dto.RankingCategory, len(models.Categories())),
		}

		var ratingSum float64
		for _, category := range models.Categories() {
			rating := models.DefaultRating
			if byCategory, ok := ratings[id]; ok {
				if r, ok := byCategory[category]; ok {
					rating = r.Rating
				}
			}
			ratingSum += float64(rating)

			t := stats[id][category]
			comparisons := t.wins + t.losses
			winRate := 0.0
			if comparisons > 0 {
				winRate = float64(t.wins) / float64(comparisons)
				entry.Compared = true
			}

			entry.Categories[category] = dto.RankingCategory{
				Rating:      rating,
				Comparisons: comparisons,
				Wins:        t.wins,
				Losses:      t.losses,
				WinRate:     winRate,
			}
		}
		entry.MeanRating = ratingSum / float64(len(models.Categories()))

		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Compared != entries[j].Compared {
			return entries[i].Compared
		}
		if entries[i].MeanRating != entries[j].MeanRating {
			return entries[i].MeanRating > entries[j].MeanRating
		}
		return entries[i].Offering.ID < entries[j].Offering.ID
	})

	return entries, nil
}
