package database

import (
	"log"
	"math/rand"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/katzAmit/Flashcards-backend/internal/models"
)

const demoUsername = "dyu@post.bgu.ac.il"

var seedCards = []struct {
	Category string
	Question string
	Answer   string
}{
	{"Dynamic Programming", "How does dynamic programming differ from greedy algorithms?", "Breaks problems into smaller parts for one-time solution."},
	{"Dynamic Programming", "Solve the Fibonacci sequence problem using dynamic programming.", "Store subproblems' solutions for Fibonacci calculation."},
	{"Dynamic Programming", "Explain the concept of memoization in dynamic programming.", "Cache costly function results to avoid redundant computations."},
	{"Dynamic Programming", "Provide an example problem where dynamic programming can be applied other than Fibonacci.", "Longest common subsequence problem demonstrates this technique."},
	{"Dynamic Programming", "Explain the implications of time complexity in dynamic programming solutions.", "Optimizes time but increases space complexity."},
	{"NP Completeness", "Define the term 'reduction' in the context of NP-completeness.", "Transform problems so solving one solves the other."},
	{"NP Completeness", "Discuss the implications of proving a problem NP-complete.", "Implies a problem's difficulty in NP and its link to P=NP."},
	{"NP Completeness", "Explain the significance of Cook's theorem in NP-completeness.", "SAT problem's NP-completeness foundation."},
	{"NP Completeness", "Provide an example of an NP-complete problem other than the Boolean satisfiability problem (SAT).", "Traveling salesman problem as another NP-complete issue."},
	{"NP Completeness", "Explain the concept of polynomial-time verification in NP problems.", "NP problems allow polynomial-time solution checks."},
	{"Knapsack Problem", "Describe the 0/1 Knapsack problem and its applications in real-world scenarios.", "Optimize item selection within weight constraints for maximum value."},
	{"Knapsack Problem", "Explain the difference between the 0/1 Knapsack problem and the fractional Knapsack problem.", "0/1 - items are whole; fractional - items can be divided."},
	{"Knapsack Problem", "Provide an algorithm to solve the Knapsack problem using dynamic programming.", "Use a table to iteratively find the maximum value."},
	{"Knapsack Problem", "Discuss the concept of 'greedy choice' in the Knapsack problem.", "Optimal solution might not come from maximum value-to-weight choice."},
	{"Knapsack Problem", "Explain how dynamic programming reduces time complexity in solving the Knapsack problem.", "Reduces time by storing subproblem solutions."},
	{"Graph Algorithms", "Describe Prim's algorithm for finding a minimum spanning tree.", "Builds minimum spanning tree by adding closest nodes."},
	{"Graph Algorithms", "Discuss Kruskal's algorithm and its advantages over Prim's algorithm.", "Grows tree with smallest edges, efficient for sparse graphs."},
	{"Graph Algorithms", "Explain how Dijkstra's algorithm works and its time complexity.", "Finds shortest path in weighted graphs with specific complexities."},
	{"Graph Algorithms", "Provide an example of where Bellman-Ford algorithm is preferred over Dijkstra's algorithm.", "Handles negative edge weights unlike Dijkstra's."},
	{"Graph Algorithms", "Discuss the concept of 'backtracking' in graph algorithms.", "Explores graph paths, used in algorithms like DFS."},
	{"Data Structures", "Explain the working principles behind a Red-Black tree.", "Self-balancing trees ensuring logarithmic height."},
	{"Data Structures", "Discuss the differences between a stack and a queue.", "LIFO vs. FIFO principles for different uses."},
	{"Data Structures", "Provide scenarios where a hash table is preferred over a binary search tree.", "Best for dynamic data, offering constant-time operations."},
	{"Data Structures", "Explain the concept of a trie and its applications.", "Efficient storage for strings, used in autocomplete systems."},
	{"Data Structures", "Discuss the concept of 'collision resolution' in hash tables.", "Methods to handle hash table index clashes."},
}

// SeedDemoData inserts the demo user and their auto-generated flashcard set.
// Re-running is harmless: existing rows are left alone.
func SeedDemoData(db *gorm.DB) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{
		Username:  demoUsername,
		Password:  string(hashed),
		FirstName: "First",
		LastName:  "Last",
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error; err != nil {
		return err
	}

	var existing int64
	if err := db.Model(&models.Flashcard{}).Where("username = ?", demoUsername).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	difficulties := []models.Difficulty{models.Easy, models.Medium, models.Hard}
	categories := make(map[string]struct{})
	for _, seed := range seedCards {
		if _, ok := categories[seed.Category]; !ok {
			categories[seed.Category] = struct{}{}
			category := models.Category{Category: seed.Category, Username: demoUsername}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&category).Error; err != nil {
				return err
			}
		}

		card := models.Flashcard{
			ID:         uuid.NewString(),
			Username:   demoUsername,
			Question:   seed.Question,
			Answer:     seed.Answer,
			Category:   seed.Category,
			Difficulty: difficulties[rand.Intn(len(difficulties))],
			IsAuto:     true,
		}
		if err := db.Create(&card).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded demo user %s with %d flashcards", demoUsername, len(seedCards))
	return nil
}
