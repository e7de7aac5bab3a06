package marathon

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

type createMarathonRequest struct {
	Category  string `json:"category"`
	TotalDays int    `json:"total_days"`
}

func (h *Handler) CreateMarathon(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createMarathonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid data", http.StatusBadRequest)
		return
	}

	marathonID, err := h.service.CreateMarathon(username, req.Category, req.TotalDays)
	if err != nil {
		var insufficient *models.InsufficientFlashcardsError
		if errors.As(err, &insufficient) || errors.Is(err, models.ErrInvalidData) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to create marathon", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"marathon_id": marathonID})
}

func (h *Handler) GetDueQuiz(w http.ResponseWriter, r *http.Request) {
	marathonID := mux.Vars(r)["marathonID"]

	due, err := h.service.DueQuiz(marathonID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Marathon not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(due)
}

func (h *Handler) ListMarathons(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.CurrentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	summaries, err := h.service.ListMarathons(username)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(summaries)
}
