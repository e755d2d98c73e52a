package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"pawquest/internal/database"
	"pawquest/internal/models"
)

// ProgressRepository handles path progress database operations
type ProgressRepository struct {
	db database.DBTX
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db database.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// idSetToString serializes an answered-id set as comma-separated ids,
// sorted for stable output
func idSetToString(ids map[int64]bool) string {
	sorted := make([]int64, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// parseIDSet parses a comma-separated id string, skipping malformed entries
func parseIDSet(s string) map[int64]bool {
	ids := make(map[int64]bool)
	if s == "" {
		return ids
	}
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err == nil {
			ids[id] = true
		}
	}
	return ids
}

// Get retrieves the progress record for a path, or nil if none exists yet
func (r *ProgressRepository) Get(path models.PathType) (*models.PathProgress, error) {
	query := `
		SELECT path_type, schema_version, current_checkpoint, completed_checkpoints,
		       answered_question_ids, power_up_inventory, correct_answers,
		       total_questions, best_accuracy, total_time_spent, fallback_count,
		       last_played, is_completed
		FROM path_progress
		WHERE path_type = ?
	`

	progress := &models.PathProgress{}
	var answeredIDs, inventoryJSON string
	var lastPlayed sql.NullTime

	err := r.db.QueryRow(query, string(path)).Scan(
		&progress.PathType,
		&progress.SchemaVersion,
		&progress.CurrentCheckpoint,
		&progress.CompletedCheckpoints,
		&answeredIDs,
		&inventoryJSON,
		&progress.CorrectAnswers,
		&progress.TotalQuestions,
		&progress.BestAccuracy,
		&progress.TotalTimeSpent,
		&progress.FallbackCount,
		&lastPlayed,
		&progress.IsCompleted,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	progress.AnsweredQuestionIDs = parseIDSet(answeredIDs)

	// An unreadable inventory takes the documented default (empty) rather
	// than failing the whole load
	progress.PowerUpInventory = models.NewPowerUpInventory()
	if inventoryJSON != "" && inventoryJSON != "{}" {
		if err := json.Unmarshal([]byte(inventoryJSON), &progress.PowerUpInventory); err != nil {
			return nil, fmt.Errorf("failed to decode power-up inventory: %w", err)
		}
	}

	if lastPlayed.Valid {
		progress.LastPlayed = lastPlayed.Time
	}

	return progress, nil
}

// All retrieves the progress records for every path that has one
func (r *ProgressRepository) All() ([]*models.PathProgress, error) {
	var out []*models.PathProgress
	for _, path := range models.AllPaths {
		progress, err := r.Get(path)
		if err != nil {
			return nil, err
		}
		if progress != nil {
			out = append(out, progress)
		}
	}
	return out, nil
}

// Upsert writes a progress record, inserting it if the path has none yet
func (r *ProgressRepository) Upsert(progress *models.PathProgress) error {
	inventoryJSON, err := json.Marshal(progress.PowerUpInventory)
	if err != nil {
		return fmt.Errorf("failed to encode power-up inventory: %w", err)
	}
	answeredIDs := idSetToString(progress.AnsweredQuestionIDs)

	updateQuery := `
		UPDATE path_progress
		SET schema_version = ?, current_checkpoint = ?, completed_checkpoints = ?,
		    answered_question_ids = ?, power_up_inventory = ?, correct_answers = ?,
		    total_questions = ?, best_accuracy = ?, total_time_spent = ?,
		    fallback_count = ?, last_played = ?, is_completed = ?
		WHERE path_type = ?
	`

	result, err := r.db.Exec(updateQuery,
		progress.SchemaVersion,
		int(progress.CurrentCheckpoint),
		progress.CompletedCheckpoints,
		answeredIDs,
		string(inventoryJSON),
		progress.CorrectAnswers,
		progress.TotalQuestions,
		progress.BestAccuracy,
		progress.TotalTimeSpent,
		progress.FallbackCount,
		progress.LastPlayed,
		progress.IsCompleted,
		string(progress.PathType),
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	insertQuery := `
		INSERT INTO path_progress (path_type, schema_version, current_checkpoint,
			completed_checkpoints, answered_question_ids, power_up_inventory,
			correct_answers, total_questions, best_accuracy, total_time_spent,
			fallback_count, last_played, is_completed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(insertQuery,
		string(progress.PathType),
		progress.SchemaVersion,
		int(progress.CurrentCheckpoint),
		progress.CompletedCheckpoints,
		answeredIDs,
		string(inventoryJSON),
		progress.CorrectAnswers,
		progress.TotalQuestions,
		progress.BestAccuracy,
		progress.TotalTimeSpent,
		progress.FallbackCount,
		progress.LastPlayed,
		progress.IsCompleted,
	)
	return err
}

// Delete removes the progress record for a path (player-initiated reset)
func (r *ProgressRepository) Delete(path models.PathType) error {
	query := "DELETE FROM path_progress WHERE path_type = ?"
	_, err := r.db.Exec(query, string(path))
	return err
}

// Touch updates only the last-played timestamp for a path
func (r *ProgressRepository) Touch(path models.PathType, at time.Time) error {
	query := "UPDATE path_progress SET last_played = ? WHERE path_type = ?"
	_, err := r.db.Exec(query, at, string(path))
	return err
}
