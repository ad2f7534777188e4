package vectormath

import (
	"math"
	"math/rand"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
	}

	for _, tc := range cases {
		got := CosineSimilarity(tc.a, tc.b)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCosineSimilarityUndefined(t *testing.T) {
	cases := []struct {
		name string
		a, b []float64
	}{
		{"zero vector", []float64{0, 0}, []float64{1, 1}},
		{"both zero", []float64{0, 0}, []float64{0, 0}},
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}},
		{"empty", nil, nil},
	}

	for _, tc := range cases {
		if got := CosineSimilarity(tc.a, tc.b); !math.IsNaN(got) {
			t.Errorf("%s: got %v, want NaN", tc.name, got)
		}
		if got := CosineDistance(tc.a, tc.b); !math.IsNaN(got) {
			t.Errorf("%s: distance %v, want NaN", tc.name, got)
		}
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero([]float64{0, 0, 0}) {
		t.Error("all-zero vector should be zero")
	}
	if !IsZero(nil) {
		t.Error("empty vector should be zero")
	}
	if IsZero([]float64{0, 0.001}) {
		t.Error("vector with a nonzero component is not zero")
	}
}

func TestMean(t *testing.T) {
	got := Mean([][]float64{{1, 2}, {3, 4}})
	want := []float64{2, 3}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("mean[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if Mean(nil) != nil {
		t.Fatal("mean of no vectors should be nil")
	}
}

func TestKMeansSingletons(t *testing.T) {
	vectors := [][]float64{{1, 0}, {0, 1}}
	rng := rand.New(rand.NewSource(1))

	centroids := KMeans(vectors, 5, 100, rng)
	if len(centroids) != 2 {
		t.Fatalf("expected one centroid per vector, got %d", len(centroids))
	}
	for i := range vectors {
		for j := range vectors[i] {
			if centroids[i][j] != vectors[i][j] {
				t.Errorf("centroid %d differs from its vector", i)
			}
		}
	}
}

func TestKMeansSeparatesClusters(t *testing.T) {
	// Two tight groups pointing in near-orthogonal directions.
	vectors := [][]float64{
		{1, 0.01}, {1, 0.02}, {0.99, 0},
		{0.01, 1}, {0.02, 1}, {0, 0.99},
	}
	rng := rand.New(rand.NewSource(42))

	centroids := KMeans(vectors, 2, 100, rng)
	if len(centroids) != 2 {
		t.Fatalf("expected 2 centroids, got %d", len(centroids))
	}

	// Each input vector should sit very close to one of the centroids.
	for _, v := range vectors {
		best := math.Inf(1)
		for _, c := range centroids {
			if d := CosineDistance(v, c); d < best {
				best = d
			}
		}
		if best > 0.01 {
			t.Errorf("vector %v is far from every centroid (distance %v)", v, best)
		}
	}
}

func TestKMeansSurvivesDegenerateCentroid(t *testing.T) {
	// Opposite vectors can average a centroid down to the zero vector, which
	// has no cosine distance to anything. The loop must still terminate and
	// return well-formed centroids.
	vectors := [][]float64{
		{1, 0}, {-1, 0},
		{0, 1}, {0.1, 0.9}, {0, 0.9}, {0.2, 0.8},
	}
	rng := rand.New(rand.NewSource(3))

	centroids := KMeans(vectors, 2, 100, rng)
	if len(centroids) != 2 {
		t.Fatalf("expected 2 centroids, got %d", len(centroids))
	}
	for i, c := range centroids {
		if len(c) != 2 {
			t.Fatalf("centroid %d has %d components, want 2", i, len(c))
		}
		for _, x := range c {
			if math.IsNaN(x) {
				t.Fatalf("centroid %d contains NaN", i)
			}
		}
	}
}

func TestKMeansEmptyInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := KMeans(nil, 3, 100, rng); got != nil {
		t.Fatalf("expected nil centroids for empty input, got %v", got)
	}
}

func TestKMeansDeterministicWithSeed(t *testing.T) {
	vectors := [][]float64{
		{1, 0}, {0.9, 0.1}, {0, 1}, {0.1, 0.9}, {0.5, 0.5}, {0.4, 0.6},
	}

	a := KMeans(vectors, 2, 100, rand.New(rand.NewSource(7)))
	b := KMeans(vectors, 2, 100, rand.New(rand.NewSource(7)))

	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatal("same seed should give identical centroids")
			}
		}
	}
}
