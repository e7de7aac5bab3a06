package flashcard

import (
	"errors"
	"path/filepath"
	"testing"

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

func mustCreate(t *testing.T, s *Service, username, question, answer, category string, difficulty models.Difficulty) *models.Flashcard {
	t.Helper()

	card, err := s.Create(username, question, answer, category, difficulty)
	if err != nil {
		t.Fatalf("Failed to create flashcard: %v", err)
	}
	return card
}

func categoryCount(t *testing.T, db *gorm.DB, username, category string) int64 {
	t.Helper()

	var count int64
	err := db.Model(&models.Category{}).
		Where("username = ? AND category = ?", username, category).
		Count(&count).Error
	if err != nil {
		t.Fatalf("Failed to count categories: %v", err)
	}
	return count
}

func TestCreateFlashcardRoundTrip(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db), nil)

	created := mustCreate(t, service, "u1", "What is a trie?", "A prefix tree.", "Data Structures", models.Medium)

	fetched, err := service.Get(created.ID)
	if err != nil {
		t.Fatalf("Failed to fetch flashcard: %v", err)
	}

	if fetched.Question != created.Question ||
		fetched.Answer != created.Answer ||
		fetched.Category != created.Category ||
		fetched.Difficulty != created.Difficulty ||
		fetched.Username != created.Username {
		t.Errorf("Fetched flashcard differs from created: got %+v, want %+v", fetched, created)
	}
}

func TestCreateMaintainsCategory(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db), nil)

	mustCreate(t, service, "u1", "q1", "a1", "Biology", models.Easy)
	if got := categoryCount(t, db, "u1", "Biology"); got != 1 {
		t.Fatalf("Expected 1 category row after first card, got %d", got)
	}

	// A second card in the same category must not duplicate the row.
	mustCreate(t, service, "u1", "q2", "a2", "Biology", models.Hard)
	if got := categoryCount(t, db, "u1", "Biology"); got != 1 {
		t.Errorf("Expected 1 category row after second card, got %d", got)
	}
}

func TestCreateRejectsInvalidData(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db), nil)

	tests := []struct {
		name       string
		question   string
		answer     string
		category   string
		difficulty models.Difficulty
	}{
		{"empty question", "", "a", "c", models.Easy},
		{"empty answer", "q", "", "c", models.Easy},
		{"empty category", "q", "a", "", models.Easy},
		{"bad difficulty", "q", "a", "c", models.Difficulty("Impossible")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.Create("u1", tt.question, tt.answer, tt.category, tt.difficulty); err == nil {
				t.Error("Expected an error, got none")
			}
		})
	}
}

func TestUpdatePartialFields(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db), nil)

	card := mustCreate(t, service, "u1", "q1", "a1", "Biology", models.Easy)

	newAnswer := "a2"
	updated, err := service.Update(card.ID, UpdateFields{Answer: &newAnswer})
	if err != nil {
		t.Fatalf("Failed to update flashcard: %v", err)
	}

	if updated.Answer != "a2" {
		t.Errorf("Expected answer %q, got %q", "a2", updated.Answer)
	}
	if updated.Question != "q1" || updated.Category != "Biology" || updated.Difficulty != models.Easy {
		t.Errorf("Unspecified fields changed: %+v", updated)
	}
}

func TestUpdateMovesCategory(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db), nil)

	card := mustCreate(t, service, "u1", "q1", "a1", "Biology", models.Easy)

	newCategory := "Chemistry"
	if _, err := service.Update(card.ID, UpdateFields{Category: &newCategory}); err != nil {
		t.Fatalf("Failed to update flashcard: %v", err)
	}

	if got := categoryCount(t, db, "u1", "Chemistry"); got != 1 {
		t.Errorf("Expected new category row, got %d", got)
	}
	// The move drained Biology, so its row must be gone.
	if got := categoryCount(t, db, "u1", "Biology"); got != 0 {
		t.Errorf("Expected old category row removed, got %d", got)
	}
}

func TestUpdateNotFound(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db), nil)

	question := "q"
	if _, err := service.Update("missing", UpdateFields{Question: &question}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteSoleMemberRemovesCategory(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db), nil)

	card := mustCreate(t, service, "u1", "q1", "a1", "Biology", models.Easy)

	if err := service.Delete(card.ID); err != nil {
		t.Fatalf("Failed to delete flashcard: %v", err)
	}

	if got := categoryCount(t, db, "u1", "Biology"); got != 0 {
		t.Errorf("Expected category removed with its last card, got %d rows", got)
	}
	if _, err := service.Get(card.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected deleted flashcard to be gone, got %v", err)
	}
}

func TestDeleteNonSoleMemberKeepsCategory(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db), nil)

	first := mustCreate(t, service, "u1", "q1", "a1", "Biology", models.Easy)
	mustCreate(t, service, "u1", "q2", "a2", "Biology", models.Hard)

	if err := service.Delete(first.ID); err != nil {
		t.Fatalf("Failed to delete flashcard: %v", err)
	}

	if got := categoryCount(t, db, "u1", "Biology"); got != 1 {
		t.Errorf("Expected category to survive, got %d rows", got)
	}
}

func TestDeleteCascadesQuizRecords(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db), nil)

	card := mustCreate(t, service, "u1", "q1", "a1", "Biology", models.Easy)

	record := models.QuizRecord{
		QuizID:      "quiz-1",
		FlashcardID: card.ID,
		Difficulty:  card.Difficulty,
		Username:    "u1",
		Category:    "Biology",
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("Failed to create quiz record: %v", err)
	}

	if err := service.Delete(card.ID); err != nil {
		t.Fatalf("Failed to delete flashcard: %v", err)
	}

	var remaining int64
	if err := db.Model(&models.QuizRecord{}).Where("flashcard_id = ?", card.ID).Count(&remaining).Error; err != nil {
		t.Fatalf("Failed to count quiz records: %v", err)
	}
	if remaining != 0 {
		t.Errorf("Expected quiz records purged with the flashcard, got %d", remaining)
	}
}

func TestListFilters(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db), nil)

	mustCreate(t, service, "u1", "q1", "a1", "Biology", models.Easy)
	mustCreate(t, service, "u1", "q2", "a2", "Biology", models.Hard)
	mustCreate(t, service, "u1", "q3", "a3", "Chemistry", models.Easy)
	mustCreate(t, service, "u2", "q4", "a4", "Biology", models.Easy)

	tests := []struct {
		name       string
		username   string
		category   string
		difficulty string
		want       int
	}{
		{"owner only", "u1", "", "", 3},
		{"category filter", "u1", "Biology", "", 2},
		{"difficulty filter", "u1", "", "Easy", 2},
		{"conjunctive", "u1", "Biology", "Easy", 1},
		{"other owner", "u2", "", "", 1},
		{"no matches", "u1", "Physics", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := service.List(tt.username, tt.category, tt.difficulty)
			if err != nil {
				t.Fatalf("Failed to list flashcards: %v", err)
			}
			if len(cards) != tt.want {
				t.Errorf("Expected %d flashcards, got %d", tt.want, len(cards))
			}
		})
	}
}

func TestListCategories(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db), nil)

	mustCreate(t, service, "u1", "q1", "a1", "Biology", models.Easy)
	mustCreate(t, service, "u1", "q2", "a2", "Chemistry", models.Easy)
	mustCreate(t, service, "u2", "q3", "a3", "Physics", models.Easy)

	categories, err := service.Categories("u1")
	if err != nil {
		t.Fatalf("Failed to list categories: %v", err)
	}
	if len(categories) != 2 {
		t.Errorf("Expected 2 categories for u1, got %d", len(categories))
	}
}
