package quiz

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/google/uuid"

	"github.com/katzAmit/Flashcards-backend/internal/models"
)

// Cache holds generated quizzes between generation and submission and
// keeps the per-user stats snapshot coherent with the quiz history.
type Cache interface {
	SetQuiz(username string, quiz *models.Quiz) error
	GetQuiz(username, quizID string) (*models.Quiz, error)
	DeleteQuiz(username, quizID string) error
	InvalidateStats(username string) error
}

type Service struct {
	repo  *Repository
	cache Cache
	rng   *rand.Rand
}

// NewService builds the quiz service. cache may be nil, in which case
// generated quizzes are only returned to the caller, never stored.
func NewService(repo *Repository, cache Cache, rng *rand.Rand) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		rng:   rng,
	}
}

// GenerateQuizzes builds one quiz per requested category, up to four. Each
// quiz samples a random number of distinct cards from the category's pool.
// Any category with too few cards aborts the whole request; no partial
// result is returned.
func (s *Service) GenerateQuizzes(username string, categories []string) ([]models.Quiz, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: at least one category is required", models.ErrInvalidData)
	}

	quizzes := make([]models.Quiz, 0, MaxCategories)
	for i := 0; i < len(categories) && i < MaxCategories; i++ {
		category := categories[i]
		pool, err := s.repo.GetFlashcards(username, category)
		if err != nil {
			return nil, err
		}
		if len(pool) < MinPoolSize {
			return nil, &models.InsufficientFlashcardsError{
				Category: category,
				Have:     len(pool),
				Need:     MinPoolSize,
			}
		}

		// Uniform over [MinPoolSize, len(pool)], so the target never
		// exceeds the pool and the sampler always terminates.
		count := MinPoolSize + s.rng.Intn(len(pool)-MinPoolSize+1)
		indices, ok := sampleIndices(s.rng, len(pool), count)
		if !ok {
			return nil, &models.InsufficientFlashcardsError{
				Category: category,
				Have:     len(pool),
				Need:     count,
			}
		}

		selected := make([]models.Flashcard, 0, count)
		for _, idx := range indices {
			selected = append(selected, pool[idx])
		}

		quiz := models.Quiz{
			ID:               uuid.NewString(),
			Title:            fmt.Sprintf("Quiz %d", i+1),
			Categories:       []string{category},
			Flashcards:       selected,
			DifficultyLevels: difficultySet(selected),
		}
		quizzes = append(quizzes, quiz)

		if s.cache != nil {
			if err := s.cache.SetQuiz(username, &quiz); err != nil {
				log.Printf("Error caching quiz %s: %v", quiz.ID, err)
			}
		}
	}

	return quizzes, nil
}

// GetQuiz fetches a previously generated quiz from the cache. Quizzes live
// nowhere else before submission, so a miss, an expired entry, or a missing
// cache all read as not found.
func (s *Service) GetQuiz(username, quizID string) (*models.Quiz, error) {
	if s.cache == nil {
		return nil, models.ErrNotFound
	}
	return s.cache.GetQuiz(username, quizID)
}

// SubmitQuiz records a finished attempt: one QuizRecord per flashcard with
// the attempt's timestamps, the marathon day's completed flag when the quiz
// belongs to a plan, and in-place edits to auto-generated cards.
func (s *Service) SubmitQuiz(username string, req *models.SubmitQuizRequest) error {
	if req.QuizID == "" || len(req.Flashcards) == 0 {
		return fmt.Errorf("%w: quiz_id and flashcards are required", models.ErrInvalidData)
	}
	if req.EndTime.Before(req.StartTime) {
		return fmt.Errorf("%w: end_time precedes start_time", models.ErrInvalidData)
	}

	for _, submitted := range req.Flashcards {
		card, err := s.repo.GetFlashcardByID(submitted.ID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				log.Printf("Warning: submitted flashcard %s no longer exists, skipping", submitted.ID)
				continue
			}
			return err
		}

		record := &models.QuizRecord{
			QuizID:      req.QuizID,
			FlashcardID: card.ID,
			Difficulty:  card.Difficulty,
			Username:    username,
			Category:    card.Category,
			StartDate:   &req.StartTime,
			EndDate:     &req.EndTime,
		}
		if err := s.repo.SaveRecord(record); err != nil {
			return err
		}

		if card.IsAuto {
			question, answer := mergedContent(card, submitted)
			if question != card.Question || answer != card.Answer {
				if err := s.repo.UpdateFlashcardContent(card.ID, question, answer); err != nil {
					return err
				}
			}
		}
	}

	if req.MarathonID != "" {
		marked, err := s.repo.MarkMarathonDayDone(req.MarathonID, req.QuizID)
		if err != nil {
			return err
		}
		if !marked {
			log.Printf("Warning: no marathon day found for marathon %s quiz %s", req.MarathonID, req.QuizID)
		}
	}

	if s.cache != nil {
		if err := s.cache.DeleteQuiz(username, req.QuizID); err != nil {
			log.Printf("Error dropping cached quiz %s: %v", req.QuizID, err)
		}
		if err := s.cache.InvalidateStats(username); err != nil {
			log.Printf("Error invalidating stats for %s: %v", username, err)
		}
	}

	return nil
}

// mergedContent applies the submission's edits to an auto-generated card,
// keeping the stored text for any field left blank.
func mergedContent(card *models.Flashcard, submitted models.SubmittedFlashcard) (string, string) {
	question, answer := card.Question, card.Answer
	if submitted.Question != "" {
		question = submitted.Question
	}
	if submitted.Answer != "" {
		answer = submitted.Answer
	}
	return question, answer
}
