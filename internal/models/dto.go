package models

import "time"

// DidQuizStatus reports where a marathon day stands when its quiz is fetched.
type DidQuizStatus int

const (
	QuizNotDone DidQuizStatus = 0
	QuizDone    DidQuizStatus = 1
	QuizExpired DidQuizStatus = 2
)

// Quiz is a generated, not-yet-submitted set of flashcards. Ad-hoc quizzes
// live in the cache until they are submitted; only then do QuizRecords exist.
type Quiz struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Categories       []string     `json:"categories"`
	Flashcards       []Flashcard  `json:"flashcards"`
	DifficultyLevels []Difficulty `json:"difficulty_levels"`
}

type DueQuizResponse struct {
	QuizID     string        `json:"quiz_id"`
	Flashcards []Flashcard   `json:"flashcards"`
	DidQuiz    DidQuizStatus `json:"did_quiz"`
}

// MarathonSummary is one plan as returned by the marathon listing.
type MarathonSummary struct {
	MarathonID string    `json:"marathon_id"`
	Category   string    `json:"category"`
	TotalDays  int       `json:"total_days"`
	StartDate  time.Time `json:"start_date"`
	QuizIDs    []string  `json:"quizzes"`
}

// SubmittedFlashcard carries one card of a submitted quiz. Question and
// Answer are only honored for auto-generated cards, which the user may
// edit in place while reviewing them.
type SubmittedFlashcard struct {
	ID         string     `json:"id"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Category   string     `json:"category"`
	Difficulty Difficulty `json:"difficulty_level"`
}

type SubmitQuizRequest struct {
	QuizID     string               `json:"quiz_id"`
	MarathonID string               `json:"marathon_id,omitempty"`
	Flashcards []SubmittedFlashcard `json:"flashcards"`
	StartTime  time.Time            `json:"start_time"`
	EndTime    time.Time            `json:"end_time"`
}

// Stats aggregation results.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type DifficultyCount struct {
	Difficulty Difficulty `json:"difficulty_level"`
	Count      int        `json:"count"`
}

type CategoryDifficulty struct {
	Category string `json:"category"`
	Easy     int    `json:"easy"`
	Medium   int    `json:"medium"`
	Hard     int    `json:"hard"`
}
