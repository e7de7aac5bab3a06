package flashcard

import (
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/katzAmit/Flashcards-backend/internal/models"
)

// StatsInvalidator drops a user's cached statistics. Flashcard mutations
// change the pool the stats are derived from, so the cache must not
// outlive them.
type StatsInvalidator interface {
	InvalidateStats(username string) error
}

type Service struct {
	repo  *Repository
	stats StatsInvalidator
}

func NewService(repo *Repository, stats StatsInvalidator) *Service {
	return &Service{repo: repo, stats: stats}
}

// UpdateFields carries a partial update; nil fields are left unchanged.
type UpdateFields struct {
	Question   *string            `json:"question"`
	Answer     *string            `json:"answer"`
	Category   *string            `json:"category"`
	Difficulty *models.Difficulty `json:"difficulty_level"`
}

func (s *Service) List(username, category, difficulty string) ([]models.Flashcard, error) {
	return s.repo.List(username, category, difficulty)
}

func (s *Service) Get(id string) (*models.Flashcard, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(username, question, answer, category string, difficulty models.Difficulty) (*models.Flashcard, error) {
	if question == "" || answer == "" || category == "" {
		return nil, errors.New("question, answer and category are required")
	}
	if !difficulty.Valid() {
		return nil, errors.New("invalid difficulty level")
	}

	card := &models.Flashcard{
		ID:         uuid.NewString(),
		Username:   username,
		Question:   question,
		Answer:     answer,
		Category:   category,
		Difficulty: difficulty,
	}
	if err := s.repo.Create(card); err != nil {
		return nil, err
	}
	s.invalidateStats(username)
	return card, nil
}

func (s *Service) Update(id string, fields UpdateFields) (*models.Flashcard, error) {
	card, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	oldCategory := card.Category
	if fields.Question != nil {
		card.Question = *fields.Question
	}
	if fields.Answer != nil {
		card.Answer = *fields.Answer
	}
	if fields.Category != nil {
		card.Category = *fields.Category
	}
	if fields.Difficulty != nil {
		if !fields.Difficulty.Valid() {
			return nil, errors.New("invalid difficulty level")
		}
		card.Difficulty = *fields.Difficulty
	}

	if err := s.repo.Update(card, oldCategory); err != nil {
		return nil, err
	}
	s.invalidateStats(card.Username)
	return card, nil
}

func (s *Service) Delete(id string) error {
	card, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(card); err != nil {
		return err
	}
	s.invalidateStats(card.Username)
	return nil
}

func (s *Service) Categories(username string) ([]models.Category, error) {
	return s.repo.ListCategories(username)
}

func (s *Service) invalidateStats(username string) {
	if s.stats == nil {
		return
	}
	if err := s.stats.InvalidateStats(username); err != nil {
		log.Printf("Failed to invalidate stats cache for %s: %v", username, err)
	}
}
