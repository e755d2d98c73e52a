package handlers

import (
	"encoding/json"
	"net/http"

	"pawquest/internal/models"
	"pawquest/internal/service"
)

// GameHandler exposes the play surface: starting a path, answering
// questions, power-ups, pause/resume, and exiting
type GameHandler struct {
	manager *service.GameManager
}

// NewGameHandler creates a new game handler
func NewGameHandler(manager *service.GameManager) *GameHandler {
	return &GameHandler{manager: manager}
}

// StartPath handles POST /api/game/start/{path}
func (h *GameHandler) StartPath(w http.ResponseWriter, r *http.Request) {
	path := models.PathType(r.PathValue("path"))

	var body struct {
		StartFrom *int `json:"start_from"`
	}
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
			return
		}
	}

	var startFrom *models.Checkpoint
	if body.StartFrom != nil {
		cp := models.Checkpoint(*body.StartFrom)
		startFrom = &cp
	}

	session, err := h.manager.StartPath(path, startFrom)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, session)
}

// State handles GET /api/game/state
func (h *GameHandler) State(w http.ResponseWriter, r *http.Request) {
	engine, err := h.manager.Active()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	snapshot, err := engine.Snapshot()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, snapshot)
}

// questionView hides the answer index from the client
type questionView struct {
	ID         int64    `json:"id"`
	PathType   string   `json:"path_type"`
	Difficulty int      `json:"difficulty"`
	Prompt     string   `json:"prompt"`
	Choices    []string `json:"choices"`
}

// CurrentQuestion handles GET /api/game/question
func (h *GameHandler) CurrentQuestion(w http.ResponseWriter, r *http.Request) {
	engine, err := h.manager.Active()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	question, err := engine.CurrentQuestion()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, questionView{
		ID:         question.ID,
		PathType:   string(question.PathType),
		Difficulty: question.Difficulty,
		Prompt:     question.Prompt,
		Choices:    question.Choices,
	})
}

// SubmitAnswer handles POST /api/game/answer
func (h *GameHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Choice int `json:"choice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	engine, err := h.manager.Active()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	outcome, err := engine.SubmitAnswer(body.Choice)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, outcome)
}

// UsePowerUp handles POST /api/game/powerup
func (h *GameHandler) UsePowerUp(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Kind string `json:"kind"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	engine, err := h.manager.Active()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	outcome, err := engine.UsePowerUp(models.PowerUpKind(body.Kind))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, outcome)
}

// Pause handles POST /api/game/pause
func (h *GameHandler) Pause(w http.ResponseWriter, r *http.Request) {
	engine, err := h.manager.Active()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	if err := engine.Pause(); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"paused": true})
}

// Resume handles POST /api/game/resume
func (h *GameHandler) Resume(w http.ResponseWriter, r *http.Request) {
	engine, err := h.manager.Active()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	if err := engine.Resume(); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"paused": false})
}

// Exit handles POST /api/game/exit
func (h *GameHandler) Exit(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.ExitSession(); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"exited": true})
}
