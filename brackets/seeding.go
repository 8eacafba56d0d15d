package brackets

import (
	"math/rand"
	"sort"

	"github.com/Dosada05/playoff-system/models"
)

// SeedOrder turns registered teams into the seed list fed to a generator.
// Manual seeding trusts the stored seed numbers verbatim; random seeding
// draws a uniform permutation (Fisher-Yates via rand.Shuffle).
func SeedOrder(teams []models.Team, mode models.SeedingMode) []string {
	ordered := make([]models.Team, len(teams))
	copy(ordered, teams)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Seed < ordered[j].Seed
	})

	names := make([]string, len(ordered))
	for i, t := range ordered {
		names[i] = t.Name
	}
	if mode == models.SeedingRandom {
		rand.Shuffle(len(names), func(i, j int) {
			names[i], names[j] = names[j], names[i]
		})
	}
	return names
}

// bracketOrder lists the seeds 1..size in entry-slot order of the
// standard pairing: seed 1 meets the lowest seed, and each half of the
// draw keeps the same shape recursively. size must be a power of two.
func bracketOrder(size int) []int {
	order := []int{1}
	for len(order) < size {
		grown := len(order) * 2
		next := make([]int, 0, grown)
		for _, seed := range order {
			next = append(next, seed, grown+1-seed)
		}
		order = next
	}
	return order
}
