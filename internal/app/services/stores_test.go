package services

import (
	"context"
	"time"

	"github.com/courserank/backend/internal/app/models"
	"github.com/courserank/backend/internal/app/repositories"
	"github.com/courserank/backend/internal/pkg/apperrors"
)

// In-memory store fakes shared by the service tests.

type fakeComparisonStore struct {
	nextID    int64
	items     []*models.Comparison
	createErr error
}

func (f *fakeComparisonStore) Create(_ context.Context, comparison *models.Comparison) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.items {
		if existing.UserID == comparison.UserID &&
			existing.OfferingAID == comparison.OfferingAID &&
			existing.OfferingBID == comparison.OfferingBID &&
			existing.Category == comparison.Category {
			return apperrors.ErrDuplicateComparison
		}
	}
	f.nextID++
	comparison.ID = f.nextID
	comparison.CreatedAt = time.Unix(f.nextID, 0)
	f.items = append(f.items, comparison)
	return nil
}

func (f *fakeComparisonStore) ListByUser(_ context.Context, userID int64) ([]*models.Comparison, error) {
	var result []*models.Comparison
	for i := len(f.items) - 1; i >= 0; i-- {
		if f.items[i].UserID == userID {
			result = append(result, f.items[i])
		}
	}
	return result, nil
}

func (f *fakeComparisonStore) LatestByUser(_ context.Context, userID int64) (*models.Comparison, error) {
	for i := len(f.items) - 1; i >= 0; i-- {
		if f.items[i].UserID == userID {
			return f.items[i], nil
		}
	}
	return nil, nil
}

func (f *fakeComparisonStore) Delete(_ context.Context, id int64) error {
	for i, c := range f.items {
		if c.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrResourceNotFound
}

func (f *fakeComparisonStore) CountByUser(_ context.Context, userID int64) (int, error) {
	count := 0
	for _, c := range f.items {
		if c.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeComparisonStore) SeenPairs(_ context.Context, userID int64) (map[models.PairKey]struct{}, error) {
	seen := make(map[models.PairKey]struct{})
	for _, c := range f.items {
		if c.UserID == userID {
			seen[models.NewPairKey(c.OfferingAID, c.OfferingBID, c.Category)] = struct{}{}
		}
	}
	return seen, nil
}

type ratingKey struct {
	offeringID int64
	category   models.Category
}

type fakeRatingStore struct {
	ratings   map[ratingKey]*models.OfferingRating
	updateErr error
}

func newFakeRatingStore() *fakeRatingStore {
	return &fakeRatingStore{ratings: make(map[ratingKey]*models.OfferingRating)}
}

func (f *fakeRatingStore) Get(_ context.Context, offeringID int64, category models.Category) (*models.OfferingRating, error) {
	return f.ratings[ratingKey{offeringID, category}], nil
}

func (f *fakeRatingStore) ForOfferings(_ context.Context, offeringIDs []int64) (map[int64]map[models.Category]*models.OfferingRating, error) {
	result := make(map[int64]map[models.Category]*models.OfferingRating)
	for _, id := range offeringIDs {
		for _, category := range models.Categories() {
			if r, ok := f.ratings[ratingKey{id, category}]; ok {
				if result[id] == nil {
					result[id] = make(map[models.Category]*models.OfferingRating)
				}
				result[id][category] = r
			}
		}
	}
	return result, nil
}

func (f *fakeRatingStore) UpdatePair(_ context.Context, winnerID, loserID int64, category models.Category, fn repositories.RatingUpdateFn) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	winner := f.ratings[ratingKey{winnerID, category}]
	loser := f.ratings[ratingKey{loserID, category}]
	newWinner, newLoser := fn(winner, loser)
	f.ratings[ratingKey{newWinner.OfferingID, category}] = newWinner
	f.ratings[ratingKey{newLoser.OfferingID, category}] = newLoser
	return nil
}

func (f *fakeRatingStore) set(offeringID int64, category models.Category, rating, count int) {
	f.ratings[ratingKey{offeringID, category}] = &models.OfferingRating{
		OfferingID:      offeringID,
		Category:        category,
		Rating:          rating,
		ComparisonCount: count,
	}
}

func (f *fakeRatingStore) ratingOf(offeringID int64, category models.Category) int {
	if r, ok := f.ratings[ratingKey{offeringID, category}]; ok {
		return r.Rating
	}
	return models.DefaultRating
}

func (f *fakeRatingStore) countOf(offeringID int64, category models.Category) int {
	if r, ok := f.ratings[ratingKey{offeringID, category}]; ok {
		return r.ComparisonCount
	}
	return 0
}

type fakeOfferingStore struct {
	offerings map[int64]*models.CourseOffering
}

func newFakeOfferingStore(ids ...int64) *fakeOfferingStore {
	f := &fakeOfferingStore{offerings: make(map[int64]*models.CourseOffering)}
	for _, id := range ids {
		f.offerings[id] = &models.CourseOffering{
			ID:         id,
			CourseID:   id,
			Instructor: "Staff",
			Year:       2025,
			Term:       models.TermFall,
		}
	}
	return f
}

func (f *fakeOfferingStore) GetOfferingByID(_ context.Context, id int64) (*models.CourseOffering, error) {
	offering, ok := f.offerings[id]
	if !ok {
		return nil, apperrors.ErrOfferingNotFound
	}
	return offering, nil
}

func (f *fakeOfferingStore) OfferingsByIDs(_ context.Context, ids []int64) (map[int64]*models.CourseOffering, error) {
	result := make(map[int64]*models.CourseOffering)
	for _, id := range ids {
		if offering, ok := f.offerings[id]; ok {
			result[id] = offering
		}
	}
	return result, nil
}

type fakeUserCourseStore struct {
	byUser map[int64][]int64
}

func newFakeUserCourseStore() *fakeUserCourseStore {
	return &fakeUserCourseStore{byUser: make(map[int64][]int64)}
}

func (f *fakeUserCourseStore) ListByUser(_ context.Context, userID int64) ([]*models.UserCourse, error) {
	var entries []*models.UserCourse
	for _, id := range f.byUser[userID] {
		entries = append(entries, &models.UserCourse{
			UserID:     userID,
			OfferingID: id,
			Offering:   &models.CourseOffering{ID: id},
		})
	}
	return entries, nil
}

func (f *fakeUserCourseStore) OfferingIDs(_ context.Context, userID int64) ([]int64, error) {
	return f.byUser[userID], nil
}

func (f *fakeUserCourseStore) Add(_ context.Context, userID, offeringID int64) error {
	for _, id := range f.byUser[userID] {
		if id == offeringID {
			return apperrors.ErrCourseAlreadyAdded
		}
	}
	f.byUser[userID] = append(f.byUser[userID], offeringID)
	return nil
}

func (f *fakeUserCourseStore) Remove(_ context.Context, userID, offeringID int64) error {
	ids := f.byUser[userID]
	for i, id := range ids {
		if id == offeringID {
			f.byUser[userID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrResourceNotFound
}

type fakeSuggestionStore struct {
	embeddings [][]float64
	embErr     error

	nearest    []*models.Course
	nearestErr error

	popular    []*models.Course
	popularErr error

	random []*models.Course

	nearestCalls int
}

func (f *fakeSuggestionStore) EmbeddingsForUser(_ context.Context, _ int64) ([][]float64, error) {
	return f.embeddings, f.embErr
}

func (f *fakeSuggestionStore) NearestCourses(_ context.Context, _ []float64, limit int, _ int64) ([]*models.Course, error) {
	f.nearestCalls++
	if f.nearestErr != nil {
		return nil, f.nearestErr
	}
	if limit > len(f.nearest) {
		limit = len(f.nearest)
	}
	return f.nearest[:limit], nil
}

func (f *fakeSuggestionStore) PopularCourses(_ context.Context, limit int, _ int64) ([]*models.Course, error) {
	if f.popularErr != nil {
		return nil, f.popularErr
	}
	if limit > len(f.popular) {
		limit = len(f.popular)
	}
	return f.popular[:limit], nil
}

func (f *fakeSuggestionStore) RandomCourses(_ context.Context, limit int, _ int64) ([]*models.Course, error) {
	if limit > len(f.random) {
		limit = len(f.random)
	}
	return f.random[:limit], nil
}

func course(id int64) *models.Course {
	return &models.Course{ID: id, Code: "C", Title: "Course"}
}
