package quiz

import (
	"math/rand"

	"github.com/katzAmit/Flashcards-backend/internal/models"
)

const (
	// MaxCategories caps how many categories a single generation request
	// may turn into quizzes.
	MaxCategories = 4
	// MinPoolSize is the smallest category pool eligible for a quiz.
	MinPoolSize = 3
)

// sampleIndices draws k distinct indices from [0, n) by rejection sampling:
// draw, redraw on collision, until k unique indices are collected. The k <= n
// check up front is what guarantees the loop terminates.
func sampleIndices(rng *rand.Rand, n, k int) ([]int, bool) {
	if k <= 0 || k > n {
		return nil, false
	}

	chosen := make(map[int]struct{}, k)
	indices := make([]int, 0, k)
	for len(indices) < k {
		i := rng.Intn(n)
		if _, dup := chosen[i]; dup {
			continue
		}
		chosen[i] = struct{}{}
		indices = append(indices, i)
	}
	return indices, true
}

// difficultySet collects the distinct difficulty levels among the cards,
// ordered Easy, Medium, Hard.
func difficultySet(cards []models.Flashcard) []models.Difficulty {
	seen := make(map[models.Difficulty]struct{})
	levels := make([]models.Difficulty, 0, 3)
	for _, card := range cards {
		if _, ok := seen[card.Difficulty]; ok {
			continue
		}
		seen[card.Difficulty] = struct{}{}
		levels = append(levels, card.Difficulty)
	}
	models.SortDifficulties(levels)
	return levels
}
