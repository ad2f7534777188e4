package vectormath

import "math"

// CosineSimilarity computes the cosine of the angle between two vectors.
// The angle is undefined for vectors of different lengths or zero magnitude;
// those yield NaN.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.NaN()
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return math.NaN()
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// CosineDistance is 1 - CosineSimilarity. NaN propagates.
func CosineDistance(a, b []float64) float64 {
	return 1 - CosineSimilarity(a, b)
}

// IsZero reports whether every component of v is zero. Zero vectors carry no
// direction and cannot take part in cosine space operations.
func IsZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// Mean returns the component-wise mean of the given vectors. It returns nil
// when the input is empty.
func Mean(vectors [][]float64) []float64 {
	if len(vectors) == 0 {
		return nil
	}

	mean := make([]float64, len(vectors[0]))
	for _, v := range vectors {
		for i := range mean {
			mean[i] += v[i]
		}
	}

	n := float64(len(vectors))
	for i := range mean {
		mean[i] /= n
	}

	return mean
}
