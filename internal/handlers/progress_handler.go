package handlers

import (
	"net/http"

	"pawquest/internal/models"
	"pawquest/internal/service"
)

// ProgressHandler exposes the durable progression records: per-path
// summaries, the path map, statistics, and player-initiated reset
type ProgressHandler struct {
	store *service.StateStore
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(store *service.StateStore) *ProgressHandler {
	return &ProgressHandler{store: store}
}

// pathSummary is the projection of one path's progress for the path map
type pathSummary struct {
	PathType             string         `json:"path_type"`
	DisplayName          string         `json:"display_name"`
	CurrentCheckpoint    string         `json:"current_checkpoint"`
	CompletedCheckpoints int            `json:"completed_checkpoints"`
	TotalCheckpoints     int            `json:"total_checkpoints"`
	QuestionsAnswered    int            `json:"questions_answered"`
	CorrectAnswers       int            `json:"correct_answers"`
	Accuracy             float64        `json:"accuracy"`
	BestAccuracy         float64        `json:"best_accuracy"`
	TotalTimeSpent       int            `json:"total_time_spent"`
	FallbackCount        int            `json:"fallback_count"`
	PowerUps             map[string]int `json:"power_ups"`
	IsCompleted          bool           `json:"is_completed"`
	Started              bool           `json:"started"`
}

func summarize(p *models.PathProgress) pathSummary {
	powerUps := make(map[string]int, len(p.PowerUpInventory))
	for kind, count := range p.PowerUpInventory {
		powerUps[string(kind)] = count
	}

	return pathSummary{
		PathType:             string(p.PathType),
		DisplayName:          p.PathType.DisplayName(),
		CurrentCheckpoint:    p.CurrentCheckpoint.String(),
		CompletedCheckpoints: p.CompletedCheckpoints,
		TotalCheckpoints:     len(models.AllCheckpoints),
		QuestionsAnswered:    p.TotalQuestions,
		CorrectAnswers:       p.CorrectAnswers,
		Accuracy:             p.CurrentAccuracy(),
		BestAccuracy:         p.BestAccuracy,
		TotalTimeSpent:       p.TotalTimeSpent,
		FallbackCount:        p.FallbackCount,
		PowerUps:             powerUps,
		IsCompleted:          p.IsCompleted,
		Started:              p.TotalQuestions > 0,
	}
}

// ListProgress handles GET /api/progress. Every path appears, including
// ones never started, so the client can render the full path map.
func (h *ProgressHandler) ListProgress(w http.ResponseWriter, r *http.Request) {
	stored, err := h.store.Summaries()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load progress", "", err)
		return
	}

	byPath := make(map[models.PathType]*models.PathProgress, len(stored))
	for _, p := range stored {
		byPath[p.PathType] = p
	}

	summaries := make([]pathSummary, 0, len(models.AllPaths))
	for _, path := range models.AllPaths {
		p, ok := byPath[path]
		if !ok {
			p = models.NewPathProgress(path)
		}
		summaries = append(summaries, summarize(p))
	}

	respondWithJSON(w, http.StatusOK, summaries)
}

// GetProgress handles GET /api/progress/{path}
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	path := models.PathType(r.PathValue("path"))
	if !path.IsValid() {
		respondWithError(w, http.StatusBadRequest, "unknown path", "", nil)
		return
	}

	respondWithJSON(w, http.StatusOK, summarize(h.store.Load(path)))
}

// ResetProgress handles POST /api/progress/{path}/reset. This is the only
// way stored progress is ever discarded. A path with an active session
// cannot be reset; exit the session first.
func (h *ProgressHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	path := models.PathType(r.PathValue("path"))
	if !path.IsValid() {
		respondWithError(w, http.StatusBadRequest, "unknown path", "", nil)
		return
	}

	if err := h.store.Reset(path); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"reset": true})
}
