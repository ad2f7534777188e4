package vectormath

import (
	"math"
	"math/rand"
)

// KMeans clusters vectors by cosine distance and returns the resulting
// centroids. Centroids are initialized from k distinct input vectors chosen
// with rng. Iteration stops when assignments no longer change or after
// maxIterations rounds. A cluster that loses all members keeps its previous
// centroid.
//
// When len(vectors) <= k every vector is its own centroid.
func KMeans(vectors [][]float64, k, maxIterations int, rng *rand.Rand) [][]float64 {
	if len(vectors) == 0 || k <= 0 {
		return nil
	}

	if len(vectors) <= k {
		centroids := make([][]float64, len(vectors))
		for i, v := range vectors {
			centroids[i] = append([]float64(nil), v...)
		}
		return centroids
	}

	// Initialize centroids from k distinct vectors, sampled without
	// replacement.
	perm := rng.Perm(len(vectors))
	centroids := make([][]float64, k)
	for i := 0; i < k; i++ {
		centroids[i] = append([]float64(nil), vectors[perm[i]]...)
	}

	assignments := make([]int, len(vectors))
	for i := range assignments {
		assignments[i] = -1
	}

	for iter := 0; iter < maxIterations; iter++ {
		changed := false

		// Assignment step. NaN distances (a centroid degenerated to the zero
		// vector) never win the argmin.
		for i, v := range vectors {
			best := -1
			bestDist := math.Inf(1)
			for c := 0; c < k; c++ {
				if d := CosineDistance(v, centroids[c]); d < bestDist {
					best = c
					bestDist = d
				}
			}
			if best < 0 {
				// No centroid has a defined distance; keep the previous
				// assignment so the vector does not jump around.
				if assignments[i] >= 0 {
					continue
				}
				best = 0
			}
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}

		if !changed {
			break
		}

		// Update step
		members := make([][][]float64, k)
		for i, v := range vectors {
			c := assignments[i]
			members[c] = append(members[c], v)
		}
		for c := 0; c < k; c++ {
			if len(members[c]) == 0 {
				continue
			}
			centroids[c] = Mean(members[c])
		}
	}

	return centroids
}
