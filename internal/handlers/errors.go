package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"pawquest/internal/service"
)

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("failed to encode response: %v", err)
		}
	}
}

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondWithJSON(w, status, map[string]string{"error": userMsg})
}

// respondWithServiceError maps the engine's sentinel errors onto HTTP
// statuses; anything unrecognized is a 500
func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoActiveSession):
		respondWithError(w, http.StatusConflict, "no active session", "", nil)
	case errors.Is(err, service.ErrSessionPaused):
		respondWithError(w, http.StatusConflict, "session is paused", "", nil)
	case errors.Is(err, service.ErrPathCompleted):
		respondWithError(w, http.StatusConflict, "path is already completed", "", nil)
	case errors.Is(err, service.ErrPathLocked):
		respondWithError(w, http.StatusConflict, "path is locked by another session", "", nil)
	case errors.Is(err, service.ErrAlreadyAnswered):
		respondWithError(w, http.StatusConflict, "question already answered", "", nil)
	case errors.Is(err, service.ErrInsufficientInventory):
		respondWithError(w, http.StatusConflict, "no power-ups of that kind left", "", nil)
	case errors.Is(err, service.ErrLivesAtMax):
		respondWithError(w, http.StatusConflict, "lives already at maximum", "", nil)
	case errors.Is(err, service.ErrUnknownPowerUp):
		respondWithError(w, http.StatusBadRequest, "unknown power-up kind", "", nil)
	case errors.Is(err, service.ErrInvalidPath):
		respondWithError(w, http.StatusBadRequest, "unknown path", "", nil)
	case errors.Is(err, service.ErrNoQuestions):
		respondWithError(w, http.StatusConflict, "no questions available", "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, "internal error", "unhandled service error", err)
	}
}
