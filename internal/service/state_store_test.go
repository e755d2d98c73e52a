package service

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"pawquest/internal/models"
	"pawquest/internal/repository"
)

// recordingReporter captures error reports for assertions
type recordingReporter struct {
	mu      sync.Mutex
	reports []string
}

func (r *recordingReporter) ReportError(context string, err error, severity string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, fmt.Sprintf("[%s] %s: %v", severity, context, err))
}

func (r *recordingReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}

func newValidationStore() *StateStore {
	return NewStateStore(nil, &recordingReporter{}, "", time.Hour, time.Hour)
}

func TestValidateClampsImpossibleCounters(t *testing.T) {
	store := newValidationStore()

	p := models.NewPathProgress(models.PathBreeds)
	p.CorrectAnswers = 15
	p.TotalQuestions = 10

	validated, corrections := store.Validate(p)

	if validated.CorrectAnswers != 10 {
		t.Errorf("CorrectAnswers = %d, want clamped to 10", validated.CorrectAnswers)
	}
	if len(corrections) != 1 {
		t.Errorf("corrections = %v, want exactly one", corrections)
	}
	// Input untouched
	if p.CorrectAnswers != 15 {
		t.Error("Validate mutated its input")
	}
}

func TestValidateNegativeCounters(t *testing.T) {
	store := newValidationStore()

	p := models.NewPathProgress(models.PathHealth)
	p.TotalQuestions = -5
	p.CorrectAnswers = -2
	p.TotalTimeSpent = -100
	p.FallbackCount = -1
	p.BestAccuracy = -10

	validated, corrections := store.Validate(p)

	if validated.TotalQuestions != 0 || validated.CorrectAnswers != 0 ||
		validated.TotalTimeSpent != 0 || validated.FallbackCount != 0 ||
		validated.BestAccuracy != 0 {
		t.Errorf("negative counters survived validation: %+v", validated)
	}
	if len(corrections) == 0 {
		t.Error("expected corrections to be reported")
	}
}

func TestValidateCheckpointConsistency(t *testing.T) {
	store := newValidationStore()

	// Claims 3 completed checkpoints on only 12 answered questions
	p := models.NewPathProgress(models.PathTraining)
	p.CompletedCheckpoints = 3
	p.TotalQuestions = 12
	p.CorrectAnswers = 10

	validated, corrections := store.Validate(p)

	if validated.CompletedCheckpoints != 1 {
		t.Errorf("CompletedCheckpoints = %d, want 1 (12 questions supports one segment)", validated.CompletedCheckpoints)
	}
	if len(corrections) == 0 {
		t.Error("expected a consistency correction")
	}
}

func TestValidateInvalidCheckpoint(t *testing.T) {
	store := newValidationStore()

	p := models.NewPathProgress(models.PathBehavior)
	p.CurrentCheckpoint = models.Checkpoint(9)

	validated, _ := store.Validate(p)
	if !validated.CurrentCheckpoint.IsValid() {
		t.Errorf("CurrentCheckpoint = %d, want a valid checkpoint", validated.CurrentCheckpoint)
	}
}

func TestValidateDropsUnknownPowerUps(t *testing.T) {
	store := newValidationStore()

	p := models.NewPathProgress(models.PathHistory)
	p.PowerUpInventory[models.PowerUpKind("mega_bark")] = 5
	p.PowerUpInventory[models.PowerUpHint] = -3

	validated, corrections := store.Validate(p)

	if _, ok := validated.PowerUpInventory[models.PowerUpKind("mega_bark")]; ok {
		t.Error("unknown power-up kind survived validation")
	}
	if validated.PowerUpInventory[models.PowerUpHint] != 0 {
		t.Errorf("negative hint count = %d, want 0", validated.PowerUpInventory[models.PowerUpHint])
	}
	if len(corrections) != 2 {
		t.Errorf("corrections = %v, want two", corrections)
	}
}

func TestValidateClearsBogusCompletionFlag(t *testing.T) {
	store := newValidationStore()

	p := models.NewPathProgress(models.PathBreeds)
	p.IsCompleted = true
	p.CompletedCheckpoints = 2
	p.TotalQuestions = 20
	p.CorrectAnswers = 18

	validated, _ := store.Validate(p)
	if validated.IsCompleted {
		t.Error("completion flag should be cleared when checkpoints are incomplete")
	}
}

func TestValidateCleanRecordNoCorrections(t *testing.T) {
	store := newValidationStore()

	p := models.NewPathProgress(models.PathBreeds)
	p.CompletedCheckpoints = 2
	p.CurrentCheckpoint = models.CheckpointGermanShepherd
	p.TotalQuestions = 25
	p.CorrectAnswers = 20
	p.BestAccuracy = 90
	p.PowerUpInventory[models.PowerUpHint] = 3

	_, corrections := store.Validate(p)
	if len(corrections) != 0 {
		t.Errorf("clean record produced corrections: %v", corrections)
	}
}

func TestMigrateFillsVersionZeroDefaults(t *testing.T) {
	store := newValidationStore()

	old := &models.PathProgress{
		PathType:       models.PathBreeds,
		SchemaVersion:  0,
		TotalQuestions: 8,
		CorrectAnswers: 6,
	}

	migrated := store.migrate(old)

	if migrated.SchemaVersion != models.ProgressSchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", migrated.SchemaVersion, models.ProgressSchemaVersion)
	}
	if migrated.AnsweredQuestionIDs == nil {
		t.Error("answered set should be initialized")
	}
	if migrated.PowerUpInventory == nil {
		t.Error("inventory should be initialized")
	}
	if migrated.CurrentCheckpoint != models.FirstCheckpoint {
		t.Errorf("CurrentCheckpoint = %v, want first", migrated.CurrentCheckpoint)
	}
	// Existing counters preserved
	if migrated.TotalQuestions != 8 || migrated.CorrectAnswers != 6 {
		t.Error("migration lost counters")
	}
}

func TestMigrateReportsNewerVersion(t *testing.T) {
	reporter := &recordingReporter{}
	store := NewStateStore(nil, reporter, "", time.Hour, time.Hour)

	p := models.NewPathProgress(models.PathHealth)
	p.SchemaVersion = models.ProgressSchemaVersion + 1

	migrated := store.migrate(p)
	if migrated.SchemaVersion != models.ProgressSchemaVersion+1 {
		t.Error("newer record should be kept as-is")
	}
	if reporter.count() != 1 {
		t.Errorf("reports = %d, want 1", reporter.count())
	}
}

func TestPathLockExclusivity(t *testing.T) {
	store := newValidationStore()

	if !store.AcquireLock(models.PathBreeds) {
		t.Fatal("first acquire should succeed")
	}
	if store.AcquireLock(models.PathBreeds) {
		t.Error("second acquire on the same path should fail")
	}
	if !store.AcquireLock(models.PathHealth) {
		t.Error("acquire on a different path should succeed")
	}

	store.ReleaseLock(models.PathBreeds)
	if !store.AcquireLock(models.PathBreeds) {
		t.Error("acquire after release should succeed")
	}
}

func TestResetRejectedWhilePathLocked(t *testing.T) {
	db := openTestDB(t)
	progressRepo := repository.NewProgressRepository(db)
	store := NewStateStore(progressRepo, &recordingReporter{}, t.TempDir(), time.Hour, time.Hour)

	progress := models.NewPathProgress(models.PathBreeds)
	progress.TotalQuestions = 8
	if err := progressRepo.Upsert(progress); err != nil {
		t.Fatal(err)
	}

	// An active session holds the play lock; resetting underneath it would
	// be undone by its next save
	if !store.AcquireLock(models.PathBreeds) {
		t.Fatal("acquire should succeed")
	}
	if err := store.Reset(models.PathBreeds); !errors.Is(err, ErrPathLocked) {
		t.Fatalf("Reset() while locked error = %v, want ErrPathLocked", err)
	}
	stored, err := progressRepo.Get(models.PathBreeds)
	if err != nil {
		t.Fatal(err)
	}
	if stored == nil {
		t.Fatal("rejected reset must not delete the record")
	}

	store.ReleaseLock(models.PathBreeds)
	if err := store.Reset(models.PathBreeds); err != nil {
		t.Fatalf("Reset() after release error: %v", err)
	}
	stored, err = progressRepo.Get(models.PathBreeds)
	if err != nil {
		t.Fatal(err)
	}
	if stored != nil {
		t.Error("reset should delete the stored record")
	}
}
