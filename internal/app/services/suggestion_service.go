package services

import (
	"context"
	"math"
	"math/rand"

	"github.com/courserank/backend/internal/app/models"
	"github.com/courserank/backend/internal/app/models/dto"
	"github.com/courserank/backend/internal/pkg/logger"
	"github.com/courserank/backend/internal/pkg/vectormath"
)

// Suggestion constants.
const (
	// DefaultSuggestionLimit is used when the client does not ask for a
	// specific number of suggestions.
	DefaultSuggestionLimit = 4
	// ClusterSizeTarget controls how many clusters the user's courses are
	// grouped into: one cluster per ClusterSizeTarget courses.
	ClusterSizeTarget = 5
	// KMeansMaxIterations bounds the clustering loop.
	KMeansMaxIterations = 100
	// suggestionOverfetch is how many times the per-cluster quota is fetched
	// before deduplication.
	suggestionOverfetch = 3
)

// SuggestionService recommends catalog courses similar to the ones on the
// user's list. The user's course embeddings are clustered and each cluster
// centroid queries the catalog for its nearest neighbours. Every failure
// mode degrades to the popularity fallback rather than surfacing an error.
type SuggestionService struct {
	catalog suggestionStore
	rng     *rand.Rand
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(catalog suggestionStore, rng *rand.Rand) *SuggestionService {
	return &SuggestionService{
		catalog: catalog,
		rng:     rng,
	}
}

// Suggest returns up to limit course suggestions for the user.
func (s *SuggestionService) Suggest(ctx context.Context, userID int64, limit int) ([]dto.CourseResponse, error) {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	courses, err := s.suggestBySimilarity(ctx, userID, limit)
	if err != nil {
		logger.Warn().Err(err).Int64("userId", userID).Msg("Similarity suggestions unavailable, falling back")
		courses = nil
	}
	if len(courses) == 0 {
		courses, err = s.fallback(ctx, userID, limit)
		if err != nil {
			return nil, err
		}
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, dto.FromCourse(course))
	}
	return responses, nil
}

// suggestBySimilarity clusters the user's course embeddings and gathers the
// nearest catalog courses around each centroid.
func (s *SuggestionService) suggestBySimilarity(ctx context.Context, userID int64, limit int) ([]*models.Course, error) {
	embeddings, err := s.catalog.EmbeddingsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Zero-norm embeddings have no direction in cosine space and would
	// poison the clustering; drop them up front.
	vectors := make([][]float64, 0, len(embeddings))
	for _, embedding := range embeddings {
		if vectormath.IsZero(embedding) {
			continue
		}
		vectors = append(vectors, embedding)
	}
	if len(vectors) == 0 {
		return nil, nil
	}

	k := int(math.Ceil(float64(len(vectors)) / ClusterSizeTarget))
	if k < 1 {
		k = 1
	}
	centroids := vectormath.KMeans(vectors, k, KMeansMaxIterations, s.rng)

	quota := int(math.Ceil(float64(limit) / float64(len(centroids))))
	perCentroid := quota * suggestionOverfetch

	var merged []*models.Course
	seen := make(map[int64]struct{})
	for _, centroid := range centroids {
		if vectormath.IsZero(centroid) {
			continue
		}
		nearest, err := s.catalog.NearestCourses(ctx, centroid, perCentroid, userID)
		if err != nil {
			return nil, err
		}
		for _, course := range nearest {
			if _, dup := seen[course.ID]; dup {
				continue
			}
			seen[course.ID] = struct{}{}
			merged = append(merged, course)
		}
	}

	s.rng.Shuffle(len(merged), func(i, j int) {
		merged[i], merged[j] = merged[j], merged[i]
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

// fallback serves popular courses, then random ones when nothing has been
// compared yet.
func (s *SuggestionService) fallback(ctx context.Context, userID int64, limit int) ([]*models.Course, error) {
	popular, err := s.catalog.PopularCourses(ctx, limit, userID)
	if err != nil {
		logger.Warn().Err(err).Msg("Popular course fallback failed, trying random")
	} else if len(popular) > 0 {
		return popular, nil
	}

	return s.catalog.RandomCourses(ctx, limit, userID)
}
