package service

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"pawquest/internal/models"
	"pawquest/internal/repository"
)

// Save retry policy: a failed write is retried with a small fixed backoff a
// bounded number of times, then abandoned with an error report. The last
// known-good on-disk state stays authoritative until the next success.
const (
	saveAttempts = 3
	saveBackoff  = 250 * time.Millisecond
)

// StateStore persists path progress. It validates on load, autosaves dirty
// state on a fixed interval, re-validates stored state on a longer interval
// (taking a backup snapshot before any corrective rewrite), and falls back
// to a fresh record rather than propagating load failures.
type StateStore struct {
	repo     *repository.ProgressRepository
	reporter ErrorReporter

	backupDir         string
	autosaveInterval  time.Duration
	integrityInterval time.Duration

	mu    sync.Mutex
	dirty map[models.PathType]*models.PathProgress
	locks map[models.PathType]bool
	stop  chan struct{}
}

// NewStateStore creates a state store. Start must be called to launch the
// background autosave and integrity cycles.
func NewStateStore(repo *repository.ProgressRepository, reporter ErrorReporter, backupDir string, autosaveInterval, integrityInterval time.Duration) *StateStore {
	return &StateStore{
		repo:              repo,
		reporter:          reporter,
		backupDir:         backupDir,
		autosaveInterval:  autosaveInterval,
		integrityInterval: integrityInterval,
		dirty:             make(map[models.PathType]*models.PathProgress),
		locks:             make(map[models.PathType]bool),
	}
}

// Load returns the validated progress record for a path, creating a fresh
// one when none exists or the stored record cannot be read. Data loss is
// preferred over a stuck session; read failures are reported, not returned.
func (s *StateStore) Load(path models.PathType) *models.PathProgress {
	stored, err := s.repo.Get(path)
	if err != nil {
		s.reporter.ReportError("state store load "+string(path), err, SeverityError)
		return models.NewPathProgress(path)
	}
	if stored == nil {
		return models.NewPathProgress(path)
	}

	migrated := s.migrate(stored)
	validated, corrections := s.Validate(migrated)
	for _, c := range corrections {
		log.Printf("progress correction for %s: %s", path, c)
		s.reporter.ReportError("progress validation "+string(path), fmt.Errorf("%s", c), SeverityWarning)
	}
	return validated
}

// migrate upgrades a record to the current schema version, keyed on the
// stored version tag. Unknown newer versions are kept as-is and reported.
func (s *StateStore) migrate(p *models.PathProgress) *models.PathProgress {
	switch {
	case p.SchemaVersion < models.ProgressSchemaVersion:
		// Version 0 records predate the version tag; fill documented defaults
		out := p.Clone()
		if out.AnsweredQuestionIDs == nil {
			out.AnsweredQuestionIDs = make(map[int64]bool)
		}
		if out.PowerUpInventory == nil {
			out.PowerUpInventory = models.NewPowerUpInventory()
		}
		if !out.CurrentCheckpoint.IsValid() {
			out.CurrentCheckpoint = models.FirstCheckpoint
		}
		out.SchemaVersion = models.ProgressSchemaVersion
		return out
	case p.SchemaVersion > models.ProgressSchemaVersion:
		s.reporter.ReportError("progress migration "+string(p.PathType),
			fmt.Errorf("record has schema version %d, newer than supported %d", p.SchemaVersion, models.ProgressSchemaVersion),
			SeverityWarning)
		return p
	default:
		return p
	}
}

// Validate returns a corrected copy of the record and the list of
// corrections applied. The input is never mutated.
func (s *StateStore) Validate(p *models.PathProgress) (*models.PathProgress, []string) {
	out := p.Clone()
	var corrections []string

	if out.TotalQuestions < 0 {
		corrections = append(corrections, fmt.Sprintf("negative total questions %d reset to 0", out.TotalQuestions))
		out.TotalQuestions = 0
	}
	if out.CorrectAnswers < 0 {
		corrections = append(corrections, fmt.Sprintf("negative correct answers %d reset to 0", out.CorrectAnswers))
		out.CorrectAnswers = 0
	}
	if out.CorrectAnswers > out.TotalQuestions {
		corrections = append(corrections, fmt.Sprintf("correct answers %d exceeds total %d, clamped", out.CorrectAnswers, out.TotalQuestions))
		out.CorrectAnswers = out.TotalQuestions
	}
	if out.BestAccuracy < 0 {
		corrections = append(corrections, fmt.Sprintf("best accuracy %.1f below 0, clamped", out.BestAccuracy))
		out.BestAccuracy = 0
	}
	if out.BestAccuracy > 100 {
		corrections = append(corrections, fmt.Sprintf("best accuracy %.1f above 100, clamped", out.BestAccuracy))
		out.BestAccuracy = 100
	}
	if out.TotalTimeSpent < 0 {
		corrections = append(corrections, fmt.Sprintf("negative time spent %d reset to 0", out.TotalTimeSpent))
		out.TotalTimeSpent = 0
	}
	if out.FallbackCount < 0 {
		corrections = append(corrections, fmt.Sprintf("negative fallback count %d reset to 0", out.FallbackCount))
		out.FallbackCount = 0
	}

	if out.CompletedCheckpoints < 0 {
		corrections = append(corrections, fmt.Sprintf("negative completed checkpoints %d reset to 0", out.CompletedCheckpoints))
		out.CompletedCheckpoints = 0
	}
	if out.CompletedCheckpoints > len(models.AllCheckpoints) {
		corrections = append(corrections, fmt.Sprintf("completed checkpoints %d exceeds %d, clamped", out.CompletedCheckpoints, len(models.AllCheckpoints)))
		out.CompletedCheckpoints = len(models.AllCheckpoints)
	}

	// A checkpoint cannot be completed without its required question count
	if max := out.TotalQuestions / models.QuestionsPerSegment; out.CompletedCheckpoints > max {
		corrections = append(corrections, fmt.Sprintf("completed checkpoints %d inconsistent with %d answered questions, clamped to %d", out.CompletedCheckpoints, out.TotalQuestions, max))
		out.CompletedCheckpoints = max
	}

	if !out.CurrentCheckpoint.IsValid() {
		corrections = append(corrections, fmt.Sprintf("invalid checkpoint %d reset to %s", int(out.CurrentCheckpoint), out.NextTargetCheckpoint()))
		out.CurrentCheckpoint = out.NextTargetCheckpoint()
	}

	for kind, count := range out.PowerUpInventory {
		if !kind.IsValid() {
			corrections = append(corrections, fmt.Sprintf("unknown power-up kind %q dropped", kind))
			delete(out.PowerUpInventory, kind)
			continue
		}
		if count < 0 {
			corrections = append(corrections, fmt.Sprintf("negative %s count %d reset to 0", kind, count))
			out.PowerUpInventory[kind] = 0
		}
	}

	if out.IsCompleted && out.CompletedCheckpoints < len(models.AllCheckpoints) {
		corrections = append(corrections, fmt.Sprintf("completed flag set with only %d checkpoints done, cleared", out.CompletedCheckpoints))
		out.IsCompleted = false
	}

	return out, corrections
}

// Save writes a record synchronously, retrying transient failures. The one
// caller that must not lose the write (backgrounding flush) goes through
// here; the engine's routine saves go through SaveAsync.
func (s *StateStore) Save(progress *models.PathProgress) error {
	var err error
	for attempt := 1; attempt <= saveAttempts; attempt++ {
		err = s.repo.Upsert(progress)
		if err == nil {
			s.clearDirty(progress)
			return nil
		}
		if attempt < saveAttempts {
			time.Sleep(saveBackoff)
		}
	}

	s.reporter.ReportError("state store save "+string(progress.PathType),
		fmt.Errorf("abandoned after %d attempts: %w", saveAttempts, err), SeverityError)
	return err
}

// SaveAsync persists a snapshot in the background. Errors are captured and
// reported inside Save, never surfaced to the caller.
func (s *StateStore) SaveAsync(progress *models.PathProgress) {
	snapshot := progress.Clone()
	go func() {
		_ = s.Save(snapshot)
	}()
}

// MarkDirty records the latest snapshot of a progress record for the next
// autosave cycle
func (s *StateStore) MarkDirty(progress *models.PathProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty[progress.PathType] = progress.Clone()
}

// clearDirty drops a pending snapshot if it is not newer than what was saved
func (s *StateStore) clearDirty(saved *models.PathProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending, ok := s.dirty[saved.PathType]
	if ok && !pending.LastPlayed.After(saved.LastPlayed) {
		delete(s.dirty, saved.PathType)
	}
}

// takeDirty removes and returns all pending snapshots
func (s *StateStore) takeDirty() []*models.PathProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.PathProgress, 0, len(s.dirty))
	for _, p := range s.dirty {
		out = append(out, p)
	}
	s.dirty = make(map[models.PathType]*models.PathProgress)
	return out
}

// Flush synchronously saves all dirty state. Called before the app is
// suspended, since the process may be terminated immediately after.
func (s *StateStore) Flush() error {
	var firstErr error
	for _, p := range s.takeDirty() {
		if err := s.Save(p); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Start launches the autosave and integrity-check cycles
func (s *StateStore) Start() {
	s.mu.Lock()
	if s.stop != nil {
		s.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	s.stop = stop
	s.mu.Unlock()

	go s.autosaveLoop(stop)
	go s.integrityLoop(stop)
}

// Close stops the background cycles and flushes remaining dirty state
func (s *StateStore) Close() error {
	s.mu.Lock()
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	s.mu.Unlock()

	return s.Flush()
}

func (s *StateStore) autosaveLoop(stop chan struct{}) {
	ticker := time.NewTicker(s.autosaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			for _, p := range s.takeDirty() {
				_ = s.Save(p)
			}
		}
	}
}

func (s *StateStore) integrityLoop(stop chan struct{}) {
	ticker := time.NewTicker(s.integrityInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.runIntegrityCheck()
		}
	}
}

// runIntegrityCheck re-validates every stored record and rewrites the ones
// that fail, taking a backup snapshot of the original first
func (s *StateStore) runIntegrityCheck() {
	records, err := s.repo.All()
	if err != nil {
		s.reporter.ReportError("integrity check", err, SeverityError)
		return
	}

	for _, stored := range records {
		validated, corrections := s.Validate(stored)
		if len(corrections) == 0 {
			continue
		}

		for _, c := range corrections {
			log.Printf("integrity check correction for %s: %s", stored.PathType, c)
			s.reporter.ReportError("integrity check "+string(stored.PathType), fmt.Errorf("%s", c), SeverityWarning)
		}

		if err := s.backupSnapshot(stored); err != nil {
			s.reporter.ReportError("integrity backup "+string(stored.PathType), err, SeverityError)
			// Do not rewrite without a backup of the original
			continue
		}

		_ = s.Save(validated)
	}
}

// backupSnapshot writes the pre-correction record to the backup directory
func (s *StateStore) backupSnapshot(progress *models.PathProgress) error {
	if err := os.MkdirAll(s.backupDir, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := fmt.Sprintf("progress_%s_%s.json", progress.PathType, time.Now().Format("20060102_150405"))
	file, err := os.Create(filepath.Join(s.backupDir, name))
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(progressToBackup(progress)); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}

// AcquireLock claims exclusive play access to a path. No two engine
// instances for the same path may be active concurrently.
func (s *StateStore) AcquireLock(path models.PathType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[path] {
		return false
	}
	s.locks[path] = true
	return true
}

// ReleaseLock gives up exclusive play access to a path
func (s *StateStore) ReleaseLock(path models.PathType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, path)
}

// Reset deletes the stored record for a path (player-initiated reset only).
// A path with an active session cannot be reset: the live engine still holds
// the record in memory and would re-persist it on its next save, silently
// undoing the delete.
func (s *StateStore) Reset(path models.PathType) error {
	s.mu.Lock()
	if s.locks[path] {
		s.mu.Unlock()
		return ErrPathLocked
	}
	delete(s.dirty, path)
	s.mu.Unlock()
	return s.repo.Delete(path)
}

// Summaries returns validated progress records for every path that has one
func (s *StateStore) Summaries() ([]*models.PathProgress, error) {
	records, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	out := make([]*models.PathProgress, 0, len(records))
	for _, r := range records {
		validated, _ := s.Validate(s.migrate(r))
		out = append(out, validated)
	}
	return out, nil
}
