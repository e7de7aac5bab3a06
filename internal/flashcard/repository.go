package flashcard

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

// List returns the user's flashcards. Filters are conjunctive; empty values
// are unconstrained.
func (r *Repository) List(username, category, difficulty string) ([]models.Flashcard, error) {
	query := r.db.Where("username = ?", username)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var cards []models.Flashcard
	if err := query.Find(&cards).Error; err != nil {
		log.Printf("Error listing flashcards for %s: %v", username, err)
		return nil, err
	}
	return cards, nil
}

func (r *Repository) GetByID(id string) (*models.Flashcard, error) {
	var card models.Flashcard
	err := r.db.Where("id = ?", id).First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		log.Printf("Error getting flashcard %s: %v", id, err)
		return nil, err
	}
	return &card, nil
}

// Create inserts the flashcard, first inserting its Category row when the
// card is the category's first member for this user.
func (r *Repository) Create(card *models.Flashcard) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureCategory(tx, card.Username, card.Category); err != nil {
			return err
		}
		return tx.Create(card).Error
	})
}

// Update saves the modified card. When the card moved categories it inserts
// the new Category row if needed and purges the old one if the card was its
// last member.
func (r *Repository) Update(card *models.Flashcard, oldCategory string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if card.Category != oldCategory {
			if err := ensureCategory(tx, card.Username, card.Category); err != nil {
				return err
			}
		}
		if err := tx.Save(card).Error; err != nil {
			return err
		}
		if card.Category != oldCategory {
			return purgeCategoryIfEmpty(tx, card.Username, oldCategory)
		}
		return nil
	})
}

// Delete removes the flashcard along with every QuizRecord that references
// it, then drops the Category row if the card was its last member. The
// ordering matters: records first, then the card, then the category check.
func (r *Repository) Delete(card *models.Flashcard) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("flashcard_id = ?", card.ID).Delete(&models.QuizRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", card.ID).Delete(&models.Flashcard{}).Error; err != nil {
			return err
		}
		return purgeCategoryIfEmpty(tx, card.Username, card.Category)
	})
}

func (r *Repository) ListCategories(username string) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Where("username = ?", username).Find(&categories).Error
	if err != nil {
		log.Printf("Error listing categories for %s: %v", username, err)
		return nil, err
	}
	return categories, nil
}

func ensureCategory(tx *gorm.DB, username, category string) error {
	var count int64
	if err := tx.Model(&models.Category{}).
		Where("username = ? AND category = ?", username, category).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return tx.Create(&models.Category{Category: category, Username: username}).Error
	}
	return nil
}

func purgeCategoryIfEmpty(tx *gorm.DB, username, category string) error {
	var remaining int64
	if err := tx.Model(&models.Flashcard{}).
		Where("username = ? AND category = ?", username, category).
		Count(&remaining).Error; err != nil {
		return err
	}
	if remaining == 0 {
		return tx.Where("username = ? AND category = ?", username, category).
			Delete(&models.Category{}).Error
	}
	return nil
}
