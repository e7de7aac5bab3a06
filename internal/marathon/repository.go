package marathon

import (
	"errors"
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

func (r *Repository) GetFlashcards(username, category string) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	err := r.db.Where("username = ? AND category = ?", username, category).Find(&cards).Error
	if err != nil {
		log.Printf("Error getting flashcards for %s/%s: %v", username, category, err)
		return nil, err
	}
	return cards, nil
}

// CreatePlan persists a whole marathon in one transaction: every day row and
// every quiz record, or nothing.
func (r *Repository) CreatePlan(days []models.MarathonDay, records []models.QuizRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&days).Error; err != nil {
			return err
		}
		return tx.Create(&records).Error
	})
}

// GetPlanStart returns the marathon's day-0 row, which carries the plan's
// shared metadata (start date, total days).
func (r *Repository) GetPlanStart(marathonID string) (*models.MarathonDay, error) {
	var day models.MarathonDay
	err := r.db.Where("marathon_id = ? AND day_index = 0", marathonID).First(&day).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		log.Printf("Error getting marathon %s: %v", marathonID, err)
		return nil, err
	}
	return &day, nil
}

// GetDay resolves a marathon day by index, not by completion state: an
// already-completed day remains retrievable.
func (r *Repository) GetDay(marathonID string, dayIndex int) (*models.MarathonDay, error) {
	var day models.MarathonDay
	err := r.db.Where("marathon_id = ? AND day_index = ?", marathonID, dayIndex).First(&day).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		log.Printf("Error getting marathon %s day %d: %v", marathonID, dayIndex, err)
		return nil, err
	}
	return &day, nil
}

// GetQuizFlashcards resolves a quiz's flashcards through its quiz records.
func (r *Repository) GetQuizFlashcards(quizID string) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	err := r.db.
		Joins("JOIN quiz_records ON quiz_records.flashcard_id = flashcards.id").
		Where("quiz_records.quiz_id = ?", quizID).
		Find(&cards).Error
	if err != nil {
		log.Printf("Error getting flashcards for quiz %s: %v", quizID, err)
		return nil, err
	}
	return cards, nil
}

// DeleteMarathon removes every row belonging to the plan: the quiz records
// of each day's quiz, then the day rows themselves.
func (r *Repository) DeleteMarathon(marathonID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var quizIDs []string
		if err := tx.Model(&models.MarathonDay{}).
			Where("marathon_id = ?", marathonID).
			Pluck("quiz_id", &quizIDs).Error; err != nil {
			return err
		}
		if len(quizIDs) > 0 {
			if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&models.QuizRecord{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("marathon_id = ?", marathonID).Delete(&models.MarathonDay{}).Error
	})
}

func (r *Repository) ListDays(username string) ([]models.MarathonDay, error) {
	var days []models.MarathonDay
	err := r.db.Where("username = ?", username).
		Order("marathon_id, day_index").
		Find(&days).Error
	if err != nil {
		log.Printf("Error listing marathons for %s: %v", username, err)
		return nil, err
	}
	return days, nil
}
