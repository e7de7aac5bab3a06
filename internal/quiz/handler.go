package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/katzAmit/Flashcards-backend/internal/auth"
	"github.com/katzAmit/Flashcards-backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type generateQuizzesRequest struct {
	Categories []string `json:"categories"`
}

func (h *Handler) GenerateQuizzes(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req generateQuizzesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid data", http.StatusBadRequest)
		return
	}

	quizzes, err := h.service.GenerateQuizzes(username, req.Categories)
	if err != nil {
		var insufficient *models.InsufficientFlashcardsError
		if errors.As(err, &insufficient) || errors.Is(err, models.ErrInvalidData) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to generate quizzes", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(quizzes)
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	quiz, err := h.service.GetQuiz(username, mux.Vars(r)["quizID"])
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Quiz not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch quiz", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(quiz)
}

func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid data", http.StatusBadRequest)
		return
	}

	if err := h.service.SubmitQuiz(username, &req); err != nil {
		if errors.Is(err, models.ErrInvalidData) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to submit quiz", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Quiz submitted successfully"})
}
