// internal/workers/suggestions/find-restaurants/sample.go
package findrestaurants

import (
	"math/rand"

	"dining-concierge/internal/models"
)

// Sample picks up to k distinct business ids from the candidate set,
// uniformly without replacement. The caller owns the rand source, so tests
// can pin a seed.
func Sample(set models.CandidateSet, k int, rng *rand.Rand) []string {
	n := set.Size()
	if n == 0 || k <= 0 {
		return nil
	}
	if k > n {
		k = n
	}

	picks := make([]string, 0, k)
	for _, idx := range rng.Perm(n)[:k] {
		picks = append(picks, set.IDs[idx])
	}
	return picks
}
