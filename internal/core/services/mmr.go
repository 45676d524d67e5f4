package services

import (
	"math"
	"slices"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
)

// MaximalMarginalRelevance picks up to k candidate indices, trading
// similarity to query against similarity to what was already picked.
// lambda 1 ranks by relevance alone; lambda 0 by diversity alone.
//
// The most relevant candidate is always picked first.
func MaximalMarginalRelevance(query []float32, candidates [][]float32, k int, lambda float64) []int {
	k = min(k, len(candidates))
	if k <= 0 {
		return nil
	}

	relevance := make([]float64, len(candidates))
	for i, c := range candidates {
		relevance[i] = domain.CosineSimilarity(query, c)
	}

	first := 0
	for i, r := range relevance {
		if r > relevance[first] {
			first = i
		}
	}
	picked := []int{first}

	// redundancy[i] is the max similarity of candidate i to any pick.
	redundancy := make([]float64, len(candidates))
	for i, c := range candidates {
		redundancy[i] = domain.CosineSimilarity(c, candidates[first])
	}

	for len(picked) < k {
		best, bestScore := -1, math.Inf(-1)
		for i := range candidates {
			if slices.Contains(picked, i) {
				continue
			}
			score := lambda*relevance[i] - (1-lambda)*redundancy[i]
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		picked = append(picked, best)
		for i, c := range candidates {
			redundancy[i] = max(redundancy[i], domain.CosineSimilarity(c, candidates[best]))
		}
	}
	return picked
}
