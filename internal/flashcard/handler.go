package flashcard

import (
	"encoding/json"
	"errors"
	"fmt"
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

type createFlashcardRequest struct {
	Question   string            `json:"question"`
	Answer     string            `json:"answer"`
	Category   string            `json:"category"`
	Difficulty models.Difficulty `json:"difficulty_level"`
}

func (h *Handler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.CurrentUser(r)
	if !ok {
		http.Error(w, "Internal server error, user not found", http.StatusInternalServerError)
		return
	}

	category := r.URL.Query().Get("category")
	difficulty := r.URL.Query().Get("difficulty_level")

	cards, err := h.service.List(username, category, difficulty)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(cards)
}

func (h *Handler) GetFlashcard(w http.ResponseWriter, r *http.Request) {
	cardID := mux.Vars(r)["cardID"]

	card, err := h.service.Get(cardID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Flashcard not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(card)
}

func (h *Handler) CreateFlashcard(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createFlashcardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid data", http.StatusBadRequest)
		return
	}

	card, err := h.service.Create(username, req.Question, req.Answer, req.Category, req.Difficulty)
	if err != nil {
		http.Error(w, "Invalid data", http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(card)
}

func (h *Handler) UpdateFlashcard(w http.ResponseWriter, r *http.Request) {
	cardID := mux.Vars(r)["cardID"]

	var fields UpdateFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, "Invalid data", http.StatusBadRequest)
		return
	}

	card, err := h.service.Update(cardID, fields)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Flashcard not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	json.NewEncoder(w).Encode(card)
}

func (h *Handler) DeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	cardID := mux.Vars(r)["cardID"]

	if err := h.service.Delete(cardID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Flashcard not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{
		"message": fmt.Sprintf("Flashcard with ID %s deleted successfully", cardID),
	})
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	categories, err := h.service.Categories(username)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(categories)
}
