// internal/workers/suggestions/find-restaurants/sample_test.go
package findrestaurants

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"dining-concierge/internal/models"
)

func candidateSet(ids ...string) models.CandidateSet {
	set := models.CandidateSet{Shadows: make(map[string]models.ShadowRecord)}
	for _, id := range ids {
		set.IDs = append(set.IDs, id)
		set.Shadows[id] = models.ShadowRecord{}
	}
	return set
}

func TestSampleSizeLaw(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		n    int
		k    int
		want int
	}{
		{10, 3, 3},
		{3, 3, 3},
		{2, 3, 2},
		{1, 3, 1},
		{0, 3, 0},
		{5, 0, 0},
	}

	for _, tt := range tests {
		ids := make([]string, tt.n)
		for i := range ids {
			ids[i] = string(rune('a' + i))
		}
		picks := Sample(candidateSet(ids...), tt.k, rng)
		assert.Len(t, picks, tt.want, "n=%d k=%d", tt.n, tt.k)
	}
}

func TestSampleNoDuplicates(t *testing.T) {
	set := candidateSet("b1", "b2", "b3", "b4", "b5", "b6", "b7", "b8")

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		picks := Sample(set, 3, rng)

		seen := make(map[string]bool, len(picks))
		for _, id := range picks {
			assert.False(t, seen[id], "seed %d repeated %s", seed, id)
			seen[id] = true
			assert.Contains(t, set.IDs, id)
		}
	}
}

func TestSampleDeterministicForFixedSeed(t *testing.T) {
	set := candidateSet("b1", "b2", "b3", "b4", "b5")

	first := Sample(set, 3, rand.New(rand.NewSource(7)))
	second := Sample(set, 3, rand.New(rand.NewSource(7)))

	assert.Equal(t, first, second)
}
