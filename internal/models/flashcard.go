package models

import (
	"sort"
	"time"
)

// Difficulty is the level assigned to a flashcard.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// difficultyOrder fixes Easy < Medium < Hard regardless of insertion order.
var difficultyOrder = map[Difficulty]int{
	Easy:   0,
	Medium: 1,
	Hard:   2,
}

func (d Difficulty) Valid() bool {
	_, ok := difficultyOrder[d]
	return ok
}

// SortDifficulties orders a set of difficulty levels Easy, Medium, Hard.
func SortDifficulties(levels []Difficulty) {
	sort.Slice(levels, func(i, j int) bool {
		return difficultyOrder[levels[i]] < difficultyOrder[levels[j]]
	})
}

type User struct {
	Username  string `json:"username" gorm:"primaryKey;size:100"`
	Password  string `json:"-" gorm:"not null"`
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
}

// Category is a per-user tag. A row exists only while at least one of the
// user's flashcards references it; flashcard create/delete maintain it.
type Category struct {
	Category string `json:"category" gorm:"primaryKey;size:100"`
	Username string `json:"username" gorm:"primaryKey;size:100"`
}

type Flashcard struct {
	ID         string     `json:"id" gorm:"primaryKey"`
	Username   string     `json:"username" gorm:"index;not null"`
	Question   string     `json:"question" gorm:"not null"`
	Answer     string     `json:"answer" gorm:"not null"`
	Category   string     `json:"category" gorm:"index;not null"`
	Difficulty Difficulty `json:"difficulty_level" gorm:"not null"`
	IsAuto     bool       `json:"is_auto"`
}

// QuizRecord links one flashcard to one quiz attempt. A quiz's identity is
// the set of records sharing its QuizID. Timestamps stay nil until the quiz
// is submitted.
type QuizRecord struct {
	QuizID      string     `json:"quiz_id" gorm:"primaryKey"`
	FlashcardID string     `json:"flashcard_id" gorm:"primaryKey"`
	Difficulty  Difficulty `json:"difficulty_level"`
	Username    string     `json:"username" gorm:"index"`
	Category    string     `json:"category"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// MarathonDay is one day of a multi-day plan. All rows of a marathon share
// MarathonID, TotalDays and StartDate; DayIndex values form the contiguous
// range [0, TotalDays).
type MarathonDay struct {
	MarathonID string    `json:"marathon_id" gorm:"primaryKey"`
	QuizID     string    `json:"quiz_id" gorm:"primaryKey"`
	Username   string    `json:"username" gorm:"index"`
	Category   string    `json:"category"`
	DayIndex   int       `json:"day_index"`
	TotalDays  int       `json:"total_days"`
	StartDate  time.Time `json:"start_date"`
	DidQuiz    bool      `json:"did_quiz"`
}
