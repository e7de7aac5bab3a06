package marathon

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/katzAmit/Flashcards-backend/internal/models"
)

type Service struct {
	repo *Repository
	rng  *rand.Rand
	now  func() time.Time
}

func NewService(repo *Repository, rng *rand.Rand) *Service {
	return &Service{
		repo: repo,
		rng:  rng,
		now:  time.Now,
	}
}

// CreateMarathon partitions the category's pool across totalDays days, one
// quiz per day, and persists the whole plan atomically. Each flashcard lands
// in at most one day; when the pool doesn't divide evenly the remainder is
// left out of the plan. Returns the new marathon id.
func (s *Service) CreateMarathon(username, category string, totalDays int) (string, error) {
	if totalDays < 1 {
		return "", fmt.Errorf("%w: total_days must be at least 1", models.ErrInvalidData)
	}

	pool, err := s.repo.GetFlashcards(username, category)
	if err != nil {
		return "", err
	}
	if len(pool) < totalDays {
		return "", &models.InsufficientFlashcardsError{
			Category: category,
			Have:     len(pool),
			Need:     totalDays,
		}
	}

	perDay := len(pool) / totalDays
	if perDay == 0 {
		// Unreachable given the pool check above, but the sampler must
		// never be entered with an impossible target.
		return "", &models.InsufficientFlashcardsError{
			Category: category,
			Have:     len(pool),
			Need:     totalDays,
		}
	}

	marathonID := uuid.NewString()
	startDate := dateOf(s.now())

	// One used-set shared across all days, so no flashcard repeats
	// anywhere in the plan.
	used := make(map[int]struct{}, perDay*totalDays)
	days := make([]models.MarathonDay, 0, totalDays)
	records := make([]models.QuizRecord, 0, perDay*totalDays)

	for dayIndex := 0; dayIndex < totalDays; dayIndex++ {
		indices, ok := sampleUnused(s.rng, len(pool), perDay, used)
		if !ok {
			return "", &models.InsufficientFlashcardsError{
				Category: category,
				Have:     len(pool) - len(used),
				Need:     perDay,
			}
		}

		quizID := uuid.NewString()
		for _, idx := range indices {
			card := pool[idx]
			records = append(records, models.QuizRecord{
				QuizID:      quizID,
				FlashcardID: card.ID,
				Difficulty:  card.Difficulty,
				Username:    username,
				Category:    category,
			})
		}

		days = append(days, models.MarathonDay{
			MarathonID: marathonID,
			QuizID:     quizID,
			Username:   username,
			Category:   category,
			DayIndex:   dayIndex,
			TotalDays:  totalDays,
			StartDate:  startDate,
		})
	}

	if err := s.repo.CreatePlan(days, records); err != nil {
		return "", err
	}

	log.Printf("Created marathon %s for %s: %d days, %d cards/day", marathonID, username, totalDays, perDay)
	return marathonID, nil
}

// DueQuiz resolves today's quiz for the plan. The current day is pure
// calendar math over (today, startDate); the plan advances by wall clock
// whether or not earlier days were completed. Once the calendar has run past
// the last day and that day was submitted, the plan expires and every one of
// its rows is deleted.
func (s *Service) DueQuiz(marathonID string) (*models.DueQuizResponse, error) {
	start, err := s.repo.GetPlanStart(marathonID)
	if err != nil {
		return nil, err
	}

	elapsed := daysBetween(start.StartDate, s.now())
	if elapsed < 0 {
		elapsed = 0
	}

	// Past the final day there is no row to look up; the last day keeps
	// answering so its completed flag can drive the expiry transition.
	dayIndex := elapsed
	if dayIndex >= start.TotalDays {
		dayIndex = start.TotalDays - 1
	}

	day, err := s.repo.GetDay(marathonID, dayIndex)
	if err != nil {
		return nil, err
	}

	cards, err := s.repo.GetQuizFlashcards(day.QuizID)
	if err != nil {
		return nil, err
	}

	status := models.QuizNotDone
	if day.DidQuiz {
		status = models.QuizDone
	}

	if day.DidQuiz && elapsed >= start.TotalDays {
		status = models.QuizExpired
		if err := s.repo.DeleteMarathon(marathonID); err != nil {
			// The caller still learns the plan is over; deletion is
			// retried on the next lookup.
			log.Printf("Error deleting expired marathon %s: %v", marathonID, err)
		}
	}

	return &models.DueQuizResponse{
		QuizID:     day.QuizID,
		Flashcards: cards,
		DidQuiz:    status,
	}, nil
}

// ListMarathons groups the user's day rows into one summary per plan.
func (s *Service) ListMarathons(username string) ([]models.MarathonSummary, error) {
	days, err := s.repo.ListDays(username)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.MarathonSummary, 0)
	index := make(map[string]int)
	for _, day := range days {
		i, ok := index[day.MarathonID]
		if !ok {
			i = len(summaries)
			index[day.MarathonID] = i
			summaries = append(summaries, models.MarathonSummary{
				MarathonID: day.MarathonID,
				Category:   day.Category,
				TotalDays:  day.TotalDays,
				StartDate:  day.StartDate,
			})
		}
		summaries[i].QuizIDs = append(summaries[i].QuizIDs, day.QuizID)
	}
	return summaries, nil
}

// sampleUnused draws k distinct indices from [0, n) that are not already in
// used, by rejection sampling, and adds them to used. The availability check
// up front keeps the loop finite.
func sampleUnused(rng *rand.Rand, n, k int, used map[int]struct{}) ([]int, bool) {
	if k <= 0 || n-len(used) < k {
		return nil, false
	}

	indices := make([]int, 0, k)
	for len(indices) < k {
		i := rng.Intn(n)
		if _, taken := used[i]; taken {
			continue
		}
		used[i] = struct{}{}
		indices = append(indices, i)
	}
	return indices, true
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole calendar days from start to t.
func daysBetween(start, t time.Time) int {
	return int(dateOf(t).Sub(dateOf(start)).Hours() / 24)
}
