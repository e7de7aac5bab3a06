package marathon

import (
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/katzAmit/Flashcards-backend/internal/models"
	"github.com/katzAmit/Flashcards-backend/pkg/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func newTestService(t *testing.T, start time.Time) (*Service, *gorm.DB, *time.Time) {
	t.Helper()

	db := newTestDB(t)
	service := NewService(NewRepository(db), rand.New(rand.NewSource(1)))

	clock := start
	service.now = func() time.Time { return clock }
	return service, db, &clock
}

func seedCards(t *testing.T, db *gorm.DB, username, category string, n int) {
	t.Helper()

	difficulties := []models.Difficulty{models.Easy, models.Medium, models.Hard}
	for i := 0; i < n; i++ {
		card := models.Flashcard{
			ID:         fmt.Sprintf("%s-%s-%d", username, category, i),
			Username:   username,
			Question:   fmt.Sprintf("question %d", i),
			Answer:     fmt.Sprintf("answer %d", i),
			Category:   category,
			Difficulty: difficulties[i%len(difficulties)],
		}
		if err := db.Create(&card).Error; err != nil {
			t.Fatalf("Failed to seed flashcard: %v", err)
		}
	}
}

func marathonDays(t *testing.T, db *gorm.DB, marathonID string) []models.MarathonDay {
	t.Helper()

	var days []models.MarathonDay
	if err := db.Where("marathon_id = ?", marathonID).Order("day_index").Find(&days).Error; err != nil {
		t.Fatalf("Failed to read marathon days: %v", err)
	}
	return days
}

func TestCreateMarathonPartition(t *testing.T) {
	service, db, _ := newTestService(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	seedCards(t, db, "u1", "Biology", 6)

	marathonID, err := service.CreateMarathon("u1", "Biology", 3)
	if err != nil {
		t.Fatalf("Failed to create marathon: %v", err)
	}

	days := marathonDays(t, db, marathonID)
	if len(days) != 3 {
		t.Fatalf("Expected 3 day rows, got %d", len(days))
	}

	seen := make(map[string]string)
	var totalRecords int
	for _, day := range days {
		if day.TotalDays != 3 {
			t.Errorf("Day %d has total_days %d, want 3", day.DayIndex, day.TotalDays)
		}
		if day.DidQuiz {
			t.Errorf("Day %d created as completed", day.DayIndex)
		}

		var records []models.QuizRecord
		if err := db.Where("quiz_id = ?", day.QuizID).Find(&records).Error; err != nil {
			t.Fatalf("Failed to read quiz records: %v", err)
		}
		if len(records) != 2 {
			t.Errorf("Day %d has %d cards, want 2", day.DayIndex, len(records))
		}
		totalRecords += len(records)

		for _, record := range records {
			if record.StartDate != nil || record.EndDate != nil {
				t.Errorf("Plan-time record %s/%s has timestamps", record.QuizID, record.FlashcardID)
			}
			if other, dup := seen[record.FlashcardID]; dup {
				t.Errorf("Flashcard %s appears in quizzes %s and %s", record.FlashcardID, other, record.QuizID)
			}
			seen[record.FlashcardID] = record.QuizID
		}
	}

	if totalRecords != 6 {
		t.Errorf("Expected 6 quiz records with no leftover, got %d", totalRecords)
	}

	// dayIndex values must be the contiguous range [0, 3).
	for i, day := range days {
		if day.DayIndex != i {
			t.Errorf("Expected day index %d, got %d", i, day.DayIndex)
		}
	}
}

func TestCreateMarathonRemainderUnassigned(t *testing.T) {
	service, db, _ := newTestService(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	seedCards(t, db, "u1", "Biology", 7)

	marathonID, err := service.CreateMarathon("u1", "Biology", 3)
	if err != nil {
		t.Fatalf("Failed to create marathon: %v", err)
	}

	var records int64
	quizIDs := make([]string, 0, 3)
	for _, day := range marathonDays(t, db, marathonID) {
		quizIDs = append(quizIDs, day.QuizID)
	}
	if err := db.Model(&models.QuizRecord{}).Where("quiz_id IN ?", quizIDs).Count(&records).Error; err != nil {
		t.Fatalf("Failed to count quiz records: %v", err)
	}
	// floor(7/3) = 2 per day; the seventh card is simply left out.
	if records != 6 {
		t.Errorf("Expected 6 assigned cards, got %d", records)
	}
}

func TestCreateMarathonInsufficientPool(t *testing.T) {
	service, db, _ := newTestService(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	seedCards(t, db, "u1", "Biology", 2)

	_, err := service.CreateMarathon("u1", "Biology", 3)
	var insufficient *models.InsufficientFlashcardsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Expected InsufficientFlashcardsError, got %v", err)
	}

	var days int64
	if err := db.Model(&models.MarathonDay{}).Count(&days).Error; err != nil {
		t.Fatalf("Failed to count marathon days: %v", err)
	}
	if days != 0 {
		t.Errorf("Expected no partial plan, got %d day rows", days)
	}
}

func TestCreateMarathonRejectsZeroDays(t *testing.T) {
	service, db, _ := newTestService(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	seedCards(t, db, "u1", "Biology", 6)

	if _, err := service.CreateMarathon("u1", "Biology", 0); !errors.Is(err, models.ErrInvalidData) {
		t.Errorf("Expected invalid-data error for total_days 0, got %v", err)
	}
}

func TestDueQuizProgression(t *testing.T) {
	service, db, clock := newTestService(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	seedCards(t, db, "u1", "Biology", 6)

	marathonID, err := service.CreateMarathon("u1", "Biology", 3)
	if err != nil {
		t.Fatalf("Failed to create marathon: %v", err)
	}

	// Day 0, nothing submitted yet.
	due, err := service.DueQuiz(marathonID)
	if err != nil {
		t.Fatalf("Failed to get due quiz: %v", err)
	}
	if due.DidQuiz != models.QuizNotDone {
		t.Errorf("Expected did_quiz %d on fresh day, got %d", models.QuizNotDone, due.DidQuiz)
	}
	if len(due.Flashcards) != 2 {
		t.Errorf("Expected 2 flashcards, got %d", len(due.Flashcards))
	}
	day0Quiz := due.QuizID

	// Submit day 0 and re-query on the same calendar day.
	if err := db.Model(&models.MarathonDay{}).
		Where("marathon_id = ? AND quiz_id = ?", marathonID, day0Quiz).
		Update("did_quiz", true).Error; err != nil {
		t.Fatalf("Failed to mark day complete: %v", err)
	}

	due, err = service.DueQuiz(marathonID)
	if err != nil {
		t.Fatalf("Failed to get due quiz: %v", err)
	}
	if due.DidQuiz != models.QuizDone {
		t.Errorf("Expected did_quiz %d after submission, got %d", models.QuizDone, due.DidQuiz)
	}
	if due.QuizID != day0Quiz {
		t.Errorf("Completed day must stay retrievable by index, got quiz %s", due.QuizID)
	}

	// The plan advances by wall clock, not by submissions.
	*clock = clock.AddDate(0, 0, 1)
	due, err = service.DueQuiz(marathonID)
	if err != nil {
		t.Fatalf("Failed to get due quiz: %v", err)
	}
	if due.QuizID == day0Quiz {
		t.Error("Expected a different quiz on day 1")
	}
	if due.DidQuiz != models.QuizNotDone {
		t.Errorf("Expected did_quiz %d on day 1, got %d", models.QuizNotDone, due.DidQuiz)
	}
}

func TestDueQuizExpiry(t *testing.T) {
	service, db, clock := newTestService(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	seedCards(t, db, "u1", "Biology", 4)

	marathonID, err := service.CreateMarathon("u1", "Biology", 2)
	if err != nil {
		t.Fatalf("Failed to create marathon: %v", err)
	}

	// Complete every day.
	if err := db.Model(&models.MarathonDay{}).
		Where("marathon_id = ?", marathonID).
		Update("did_quiz", true).Error; err != nil {
		t.Fatalf("Failed to mark days complete: %v", err)
	}

	// Advance the clock exactly totalDays days past the start.
	*clock = clock.AddDate(0, 0, 2)

	due, err := service.DueQuiz(marathonID)
	if err != nil {
		t.Fatalf("Failed to get due quiz: %v", err)
	}
	if due.DidQuiz != models.QuizExpired {
		t.Fatalf("Expected did_quiz %d, got %d", models.QuizExpired, due.DidQuiz)
	}

	// Every row of the plan must be gone.
	var days, records int64
	if err := db.Model(&models.MarathonDay{}).Where("marathon_id = ?", marathonID).Count(&days).Error; err != nil {
		t.Fatalf("Failed to count marathon days: %v", err)
	}
	if err := db.Model(&models.QuizRecord{}).Where("username = ?", "u1").Count(&records).Error; err != nil {
		t.Fatalf("Failed to count quiz records: %v", err)
	}
	if days != 0 || records != 0 {
		t.Errorf("Expected expired plan deleted, got %d days and %d records", days, records)
	}

	// A deleted plan is simply not found.
	if _, err := service.DueQuiz(marathonID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after expiry, got %v", err)
	}
}

func TestDueQuizRunOverWithoutCompletion(t *testing.T) {
	service, db, clock := newTestService(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	seedCards(t, db, "u1", "Biology", 4)

	marathonID, err := service.CreateMarathon("u1", "Biology", 2)
	if err != nil {
		t.Fatalf("Failed to create marathon: %v", err)
	}

	// Way past the end, but the last day was never submitted: the plan
	// stays alive, answering with its final day.
	*clock = clock.AddDate(0, 0, 5)

	due, err := service.DueQuiz(marathonID)
	if err != nil {
		t.Fatalf("Failed to get due quiz: %v", err)
	}
	if due.DidQuiz != models.QuizNotDone {
		t.Errorf("Expected did_quiz %d for unfinished run-over plan, got %d", models.QuizNotDone, due.DidQuiz)
	}

	days := marathonDays(t, db, marathonID)
	if len(days) != 2 {
		t.Errorf("Expected plan to survive, got %d day rows", len(days))
	}
	if due.QuizID != days[1].QuizID {
		t.Errorf("Expected the last day's quiz, got %s", due.QuizID)
	}
}

func TestListMarathons(t *testing.T) {
	service, db, _ := newTestService(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	seedCards(t, db, "u1", "Biology", 6)
	seedCards(t, db, "u1", "Chemistry", 4)

	first, err := service.CreateMarathon("u1", "Biology", 3)
	if err != nil {
		t.Fatalf("Failed to create marathon: %v", err)
	}
	if _, err := service.CreateMarathon("u1", "Chemistry", 2); err != nil {
		t.Fatalf("Failed to create marathon: %v", err)
	}

	summaries, err := service.ListMarathons("u1")
	if err != nil {
		t.Fatalf("Failed to list marathons: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("Expected 2 marathons, got %d", len(summaries))
	}

	for _, summary := range summaries {
		if summary.MarathonID == first && len(summary.QuizIDs) != 3 {
			t.Errorf("Expected 3 quizzes in the Biology plan, got %d", len(summary.QuizIDs))
		}
	}
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2024, 3, 1, 23, 50, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"same day", time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC), 0},
		{"ten minutes later but next date", time.Date(2024, 3, 2, 0, 5, 0, 0, time.UTC), 1},
		{"a week on", time.Date(2024, 3, 8, 1, 0, 0, 0, time.UTC), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := daysBetween(start, tt.now); got != tt.want {
				t.Errorf("daysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}
