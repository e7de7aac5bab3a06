package quiz

import (
	"errors"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

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

func (r *Repository) GetFlashcardByID(id string) (*models.Flashcard, error) {
	var card models.Flashcard
	err := r.db.Where("id = ?", id).First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &card, nil
}

// SaveRecord inserts the quiz record, or overwrites it when the quiz was
// pre-created (marathon days persist their records at plan time).
func (r *Repository) SaveRecord(record *models.QuizRecord) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "quiz_id"}, {Name: "flashcard_id"}},
		UpdateAll: true,
	}).Create(record).Error
}

// MarkMarathonDayDone flips the day's completed flag. Returns false when no
// marathon day matches, which callers treat as a warning rather than an error.
func (r *Repository) MarkMarathonDayDone(marathonID, quizID string) (bool, error) {
	result := r.db.Model(&models.MarathonDay{}).
		Where("marathon_id = ? AND quiz_id = ?", marathonID, quizID).
		Update("did_quiz", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) UpdateFlashcardContent(id, question, answer string) error {
	return r.db.Model(&models.Flashcard{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"question": question, "answer": answer}).Error
}
