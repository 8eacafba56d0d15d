package brackets

import (
	"testing"

	"github.com/Dosada05/playoff-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedOrderManual(t *testing.T) {
	teams := []models.Team{
		{Name: "Gamma", Seed: 3},
		{Name: "Alpha", Seed: 1},
		{Name: "Beta", Seed: 2},
	}

	order := SeedOrder(teams, models.SeedingManual)
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, order)
	// Input slice order is untouched.
	assert.Equal(t, "Gamma", teams[0].Name)
}

func TestSeedOrderRandomIsPermutation(t *testing.T) {
	teams := make([]models.Team, 16)
	for i := range teams {
		teams[i] = models.Team{Name: seedNames(16)[i], Seed: i + 1}
	}

	order := SeedOrder(teams, models.SeedingRandom)
	require.Len(t, order, 16)

	seen := make(map[string]bool, 16)
	for _, name := range order {
		assert.False(t, seen[name], "name %s drawn twice", name)
		seen[name] = true
	}
}

func TestBracketOrder(t *testing.T) {
	assert.Equal(t, []int{1}, bracketOrder(1))
	assert.Equal(t, []int{1, 2}, bracketOrder(2))
	assert.Equal(t, []int{1, 4, 2, 3}, bracketOrder(4))
	assert.Equal(t, []int{1, 8, 4, 5, 2, 7, 3, 6}, bracketOrder(8))
}

// Adjacent pairs of the entry order always sum to size+1, so every
// first-round pairing is seed k against seed size+1-k.
func TestBracketOrderPairSums(t *testing.T) {
	for _, size := range []int{2, 4, 8, 16, 32, 64} {
		order := bracketOrder(size)
		require.Len(t, order, size)
		for i := 0; i < size; i += 2 {
			assert.Equal(t, size+1, order[i]+order[i+1], "size=%d pair %d", size, i/2)
		}
	}
}
