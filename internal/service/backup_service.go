package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"time"

	"pawquest/internal/models"
	"pawquest/internal/repository"
)

// backupFormatVersion tags exported files for forward compatibility
const backupFormatVersion = "1.0"

// BackupData is the complete export structure: every path progress record
// plus the question bank
type BackupData struct {
	Version    string           `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Progress   []ProgressBackup `json:"progress"`
	Questions  []QuestionBackup `json:"questions"`
}

// ProgressBackup is a path progress record in export form
type ProgressBackup struct {
	PathType             string         `json:"path_type"`
	SchemaVersion        int            `json:"schema_version"`
	CurrentCheckpoint    int            `json:"current_checkpoint"`
	CompletedCheckpoints int            `json:"completed_checkpoints"`
	AnsweredQuestionIDs  []int64        `json:"answered_question_ids"`
	PowerUpInventory     map[string]int `json:"power_up_inventory"`
	CorrectAnswers       int            `json:"correct_answers"`
	TotalQuestions       int            `json:"total_questions"`
	BestAccuracy         float64        `json:"best_accuracy"`
	TotalTimeSpent       int            `json:"total_time_spent"`
	FallbackCount        int            `json:"fallback_count"`
	LastPlayed           time.Time      `json:"last_played"`
	IsCompleted          bool           `json:"is_completed"`
}

// QuestionBackup is a question record in export form
type QuestionBackup struct {
	ID          int64     `json:"id"`
	PathType    string    `json:"path_type"`
	Difficulty  int       `json:"difficulty"`
	Prompt      string    `json:"prompt"`
	Choices     []string  `json:"choices"`
	AnswerIndex int       `json:"answer_index"`
	CreatedAt   time.Time `json:"created_at"`
}

// progressToBackup converts a progress record to export form
func progressToBackup(p *models.PathProgress) ProgressBackup {
	ids := make([]int64, 0, len(p.AnsweredQuestionIDs))
	for id := range p.AnsweredQuestionIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	inventory := make(map[string]int, len(p.PowerUpInventory))
	for kind, count := range p.PowerUpInventory {
		inventory[string(kind)] = count
	}

	return ProgressBackup{
		PathType:             string(p.PathType),
		SchemaVersion:        p.SchemaVersion,
		CurrentCheckpoint:    int(p.CurrentCheckpoint),
		CompletedCheckpoints: p.CompletedCheckpoints,
		AnsweredQuestionIDs:  ids,
		PowerUpInventory:     inventory,
		CorrectAnswers:       p.CorrectAnswers,
		TotalQuestions:       p.TotalQuestions,
		BestAccuracy:         p.BestAccuracy,
		TotalTimeSpent:       p.TotalTimeSpent,
		FallbackCount:        p.FallbackCount,
		LastPlayed:           p.LastPlayed,
		IsCompleted:          p.IsCompleted,
	}
}

// backupToProgress converts an export record back to the model
func backupToProgress(b ProgressBackup) *models.PathProgress {
	answered := make(map[int64]bool, len(b.AnsweredQuestionIDs))
	for _, id := range b.AnsweredQuestionIDs {
		answered[id] = true
	}

	inventory := models.NewPowerUpInventory()
	for kind, count := range b.PowerUpInventory {
		inventory[models.PowerUpKind(kind)] = count
	}

	return &models.PathProgress{
		PathType:             models.PathType(b.PathType),
		SchemaVersion:        b.SchemaVersion,
		CurrentCheckpoint:    models.Checkpoint(b.CurrentCheckpoint),
		CompletedCheckpoints: b.CompletedCheckpoints,
		AnsweredQuestionIDs:  answered,
		PowerUpInventory:     inventory,
		CorrectAnswers:       b.CorrectAnswers,
		TotalQuestions:       b.TotalQuestions,
		BestAccuracy:         b.BestAccuracy,
		TotalTimeSpent:       b.TotalTimeSpent,
		FallbackCount:        b.FallbackCount,
		LastPlayed:           b.LastPlayed,
		IsCompleted:          b.IsCompleted,
	}
}

// BackupService handles export and import of progress and question data
type BackupService struct {
	progressRepo *repository.ProgressRepository
	questionRepo *repository.QuestionRepository
}

// NewBackupService creates a new backup service
func NewBackupService(progressRepo *repository.ProgressRepository, questionRepo *repository.QuestionRepository) *BackupService {
	return &BackupService{
		progressRepo: progressRepo,
		questionRepo: questionRepo,
	}
}

// Export writes a complete backup to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	return s.ExportToWriter(file)
}

// ExportToWriter writes a complete backup to an io.Writer
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:    backupFormatVersion,
		ExportedAt: time.Now(),
	}

	records, err := s.progressRepo.All()
	if err != nil {
		return fmt.Errorf("failed to export progress: %w", err)
	}
	for _, p := range records {
		backup.Progress = append(backup.Progress, progressToBackup(p))
	}

	questions, err := s.questionRepo.All()
	if err != nil {
		return fmt.Errorf("failed to export questions: %w", err)
	}
	for _, q := range questions {
		backup.Questions = append(backup.Questions, QuestionBackup{
			ID:          q.ID,
			PathType:    string(q.PathType),
			Difficulty:  q.Difficulty,
			Prompt:      q.Prompt,
			Choices:     q.Choices,
			AnswerIndex: q.AnswerIndex,
			CreatedAt:   q.CreatedAt,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported %d progress records and %d questions", len(backup.Progress), len(backup.Questions))
	return nil
}

// Import restores a backup from a file
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a backup from an io.Reader. Progress records
// replace existing ones; questions are appended to the bank.
func (s *BackupService) ImportFromReader(r io.Reader) error {
	var backup BackupData
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	for _, b := range backup.Progress {
		progress := backupToProgress(b)
		if !progress.PathType.IsValid() {
			return fmt.Errorf("backup contains unknown path type %q", b.PathType)
		}
		if err := s.progressRepo.Upsert(progress); err != nil {
			return fmt.Errorf("failed to import progress for %s: %w", b.PathType, err)
		}
	}

	for _, b := range backup.Questions {
		question := models.Question{
			PathType:    models.PathType(b.PathType),
			Difficulty:  b.Difficulty,
			Prompt:      b.Prompt,
			Choices:     b.Choices,
			AnswerIndex: b.AnswerIndex,
			CreatedAt:   b.CreatedAt,
		}
		if _, err := s.questionRepo.Insert(question); err != nil {
			return fmt.Errorf("failed to import question %q: %w", b.Prompt, err)
		}
	}

	log.Printf("Imported %d progress records and %d questions", len(backup.Progress), len(backup.Questions))
	return nil
}
