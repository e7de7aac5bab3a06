package stats

import (
	"fmt"
	"log"
	"math"

	"github.com/katzAmit/Flashcards-backend/internal/models"
	"github.com/katzAmit/Flashcards-backend/pkg/cache"
)

// Time-of-day bucket boundaries, by end-of-quiz hour.
const (
	morningStart = 8
	eveningStart = 16
)

type Service struct {
	repo  *Repository
	cache *cache.RedisCache
}

func NewService(repo *Repository, cache *cache.RedisCache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Collect builds the five usage statistics for the user:
// preferred study time of day, Easy-question count per category, question
// count per difficulty level, per-category difficulty breakdown, and
// average quiz duration.
func (s *Service) Collect(username string) ([]interface{}, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetStats(username); err == nil {
			return cached, nil
		}
	}

	records, err := s.repo.GetCompletedRecords(username)
	if err != nil {
		return nil, err
	}

	categoryCounts, err := s.categoryDistribution(username, len(records) > 0)
	if err != nil {
		return nil, err
	}

	difficultyCounts, err := s.difficultyDistribution(username)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.repo.CategoryDifficultyBreakdown(username)
	if err != nil {
		return nil, err
	}

	result := []interface{}{
		preferredTimeOfDay(records),
		categoryCounts,
		difficultyCounts,
		breakdown,
		averageDuration(records),
	}

	if s.cache != nil {
		if err := s.cache.SetStats(username, result); err != nil {
			log.Printf("Error caching stats for %s: %v", username, err)
		}
	}

	return result, nil
}

func (s *Service) categoryDistribution(username string, hasHistory bool) ([]models.CategoryCount, error) {
	if hasHistory {
		return s.repo.CountEasyByCategory(username)
	}
	return s.repo.CountEasyFlashcardsByCategory(username)
}

// difficultyDistribution is always three elements, Easy/Medium/Hard,
// zero-filled for levels the user never saw.
func (s *Service) difficultyDistribution(username string) ([]models.DifficultyCount, error) {
	counts, err := s.repo.CountDistinctByDifficulty(username)
	if err != nil {
		return nil, err
	}

	result := make([]models.DifficultyCount, 0, 3)
	for _, level := range []models.Difficulty{models.Easy, models.Medium, models.Hard} {
		result = append(result, models.DifficultyCount{
			Difficulty: level,
			Count:      counts[level],
		})
	}
	return result, nil
}

// preferredTimeOfDay buckets submissions by end-time hour into
// Morning (08-16), Evening (16-24) and Night (00-08) and names the busiest
// bucket, or "None" when there is no history.
func preferredTimeOfDay(records []models.QuizRecord) string {
	var morning, evening, night int
	for _, record := range records {
		if record.EndDate == nil {
			continue
		}
		hour := record.EndDate.Hour()
		switch {
		case hour >= morningStart && hour < eveningStart:
			morning++
		case hour >= eveningStart:
			evening++
		default:
			night++
		}
	}

	if morning == 0 && evening == 0 && night == 0 {
		return "None"
	}

	best, bestCount := "Morning", morning
	if evening > bestCount {
		best, bestCount = "Evening", evening
	}
	if night > bestCount {
		best = "Night"
	}
	return best
}

// averageDuration is the mean quiz length in whole minutes across submitted
// quizzes with both timestamps, formatted "<n> min". Records of one quiz
// share timestamps, so the mean is taken per distinct quiz.
func averageDuration(records []models.QuizRecord) string {
	seen := make(map[string]struct{})
	var total float64
	var quizzes int
	for _, record := range records {
		if record.StartDate == nil || record.EndDate == nil {
			continue
		}
		if _, ok := seen[record.QuizID]; ok {
			continue
		}
		seen[record.QuizID] = struct{}{}
		total += record.EndDate.Sub(*record.StartDate).Minutes()
		quizzes++
	}

	if quizzes == 0 {
		return "0 min"
	}
	return fmt.Sprintf("%d min", int(math.Round(total/float64(quizzes))))
}
