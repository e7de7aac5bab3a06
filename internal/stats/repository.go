package stats

import (
	"log"

	"gorm.io/gorm"

	"github.com/katzAmit/Flashcards-backend/internal/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetCompletedRecords returns the user's quiz records that have an end
// timestamp, i.e. quizzes that were actually submitted.
func (r *Repository) GetCompletedRecords(username string) ([]models.QuizRecord, error) {
	var records []models.QuizRecord
	err := r.db.Where("username = ? AND end_date IS NOT NULL", username).Find(&records).Error
	if err != nil {
		log.Printf("Error getting quiz records for %s: %v", username, err)
		return nil, err
	}
	return records, nil
}

// CountEasyByCategory counts the distinct Easy questions per category across
// the user's quiz history. Records without an end timestamp were persisted at
// marathon-plan time and never taken, so they are not history.
func (r *Repository) CountEasyByCategory(username string) ([]models.CategoryCount, error) {
	var counts []models.CategoryCount
	err := r.db.Raw(`
		SELECT category, COUNT(DISTINCT flashcard_id) AS count
		FROM quiz_records
		WHERE username = ? AND difficulty = ? AND end_date IS NOT NULL
		GROUP BY category
		ORDER BY category
	`, username, models.Easy).Scan(&counts).Error
	if err != nil {
		log.Printf("Error counting easy questions by category for %s: %v", username, err)
		return nil, err
	}
	return counts, nil
}

// CountEasyFlashcardsByCategory is the pool-derived fallback used when the
// user has no quiz history yet.
func (r *Repository) CountEasyFlashcardsByCategory(username string) ([]models.CategoryCount, error) {
	var counts []models.CategoryCount
	err := r.db.Raw(`
		SELECT category, COUNT(*) AS count
		FROM flashcards
		WHERE username = ? AND difficulty = ?
		GROUP BY category
		ORDER BY category
	`, username, models.Easy).Scan(&counts).Error
	if err != nil {
		log.Printf("Error counting easy flashcards by category for %s: %v", username, err)
		return nil, err
	}
	return counts, nil
}

// CountDistinctByDifficulty counts the distinct questions presented per
// difficulty level across the user's quiz history, again counting only
// submitted records.
func (r *Repository) CountDistinctByDifficulty(username string) (map[models.Difficulty]int, error) {
	var rows []models.DifficultyCount
	err := r.db.Raw(`
		SELECT difficulty, COUNT(DISTINCT flashcard_id) AS count
		FROM quiz_records
		WHERE username = ? AND end_date IS NOT NULL
		GROUP BY difficulty
	`, username).Scan(&rows).Error
	if err != nil {
		log.Printf("Error counting questions by difficulty for %s: %v", username, err)
		return nil, err
	}

	counts := make(map[models.Difficulty]int, len(rows))
	for _, row := range rows {
		counts[row.Difficulty] = row.Count
	}
	return counts, nil
}

type categoryDifficultyRow struct {
	Category   string
	Difficulty models.Difficulty
	Count      int
}

// CategoryDifficultyBreakdown counts the user's flashcards per category and
// difficulty.
func (r *Repository) CategoryDifficultyBreakdown(username string) ([]models.CategoryDifficulty, error) {
	var rows []categoryDifficultyRow
	err := r.db.Raw(`
		SELECT category, difficulty, COUNT(*) AS count
		FROM flashcards
		WHERE username = ?
		GROUP BY category, difficulty
		ORDER BY category
	`, username).Scan(&rows).Error
	if err != nil {
		log.Printf("Error building category breakdown for %s: %v", username, err)
		return nil, err
	}

	breakdown := make([]models.CategoryDifficulty, 0)
	index := make(map[string]int)
	for _, row := range rows {
		i, ok := index[row.Category]
		if !ok {
			i = len(breakdown)
			index[row.Category] = i
			breakdown = append(breakdown, models.CategoryDifficulty{Category: row.Category})
		}
		switch row.Difficulty {
		case models.Easy:
			breakdown[i].Easy = row.Count
		case models.Medium:
			breakdown[i].Medium = row.Count
		case models.Hard:
			breakdown[i].Hard = row.Count
		}
	}
	return breakdown, nil
}
