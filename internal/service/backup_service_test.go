package service

import (
	"bytes"
	"testing"
	"time"

	"pawquest/internal/models"
	"pawquest/internal/repository"
)

func TestBackupRoundTrip(t *testing.T) {
	src := openTestDB(t)
	srcProgress := repository.NewProgressRepository(src)
	srcQuestions := repository.NewQuestionRepository(src)

	progress := models.NewPathProgress(models.PathBreeds)
	progress.CompletedCheckpoints = 2
	progress.CurrentCheckpoint = models.CheckpointGermanShepherd
	progress.MarkAnswered(1)
	progress.MarkAnswered(9)
	progress.PowerUpInventory[models.PowerUpHint] = 3
	progress.CorrectAnswers = 17
	progress.TotalQuestions = 20
	progress.BestAccuracy = 85
	if err := srcProgress.Upsert(progress); err != nil {
		t.Fatal(err)
	}

	if _, err := srcQuestions.Insert(models.Question{
		PathType:    models.PathBreeds,
		Difficulty:  1,
		Prompt:      "Which breed is the smallest?",
		Choices:     []string{"Chihuahua", "Great Dane"},
		AnswerIndex: 0,
	}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := NewBackupService(srcProgress, srcQuestions).ExportToWriter(&buf); err != nil {
		t.Fatalf("ExportToWriter() error: %v", err)
	}

	// Restore into a fresh database
	dst := openTestDB(t)
	dstProgress := repository.NewProgressRepository(dst)
	dstQuestions := repository.NewQuestionRepository(dst)

	if err := NewBackupService(dstProgress, dstQuestions).ImportFromReader(&buf); err != nil {
		t.Fatalf("ImportFromReader() error: %v", err)
	}

	restored, err := dstProgress.Get(models.PathBreeds)
	if err != nil {
		t.Fatal(err)
	}
	if restored == nil {
		t.Fatal("progress not restored")
	}
	if restored.CompletedCheckpoints != 2 || restored.CorrectAnswers != 17 {
		t.Errorf("restored = %d checkpoints %d correct, want 2 and 17", restored.CompletedCheckpoints, restored.CorrectAnswers)
	}
	if len(restored.AnsweredQuestionIDs) != 2 || !restored.AnsweredQuestionIDs[9] {
		t.Errorf("restored answered set = %v, want {1,9}", restored.AnsweredQuestionIDs)
	}
	if restored.PowerUpInventory.Count(models.PowerUpHint) != 3 {
		t.Errorf("restored hint count = %d, want 3", restored.PowerUpInventory.Count(models.PowerUpHint))
	}

	count, err := dstQuestions.Count()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("restored question count = %d, want 1", count)
	}
}

func TestImportRejectsUnknownPath(t *testing.T) {
	db := openTestDB(t)
	svc := NewBackupService(repository.NewProgressRepository(db), repository.NewQuestionRepository(db))

	payload := `{"version":"1.0","progress":[{"path_type":"cats","schema_version":1,"current_checkpoint":1}],"questions":[]}`
	if err := svc.ImportFromReader(bytes.NewReader([]byte(payload))); err == nil {
		t.Error("import with unknown path type should fail")
	}
}

func TestStoreLoadCorrectsCorruptedRecord(t *testing.T) {
	db := openTestDB(t)
	progressRepo := repository.NewProgressRepository(db)
	reporter := &recordingReporter{}
	store := NewStateStore(progressRepo, reporter, t.TempDir(), time.Hour, time.Hour)

	// A record claiming more correct answers than questions
	corrupted := models.NewPathProgress(models.PathHealth)
	corrupted.CorrectAnswers = 50
	corrupted.TotalQuestions = 10
	if err := progressRepo.Upsert(corrupted); err != nil {
		t.Fatal(err)
	}

	loaded := store.Load(models.PathHealth)
	if loaded.CorrectAnswers != 10 {
		t.Errorf("loaded CorrectAnswers = %d, want clamped to 10", loaded.CorrectAnswers)
	}
	if reporter.count() == 0 {
		t.Error("correction should be reported")
	}
}

func TestStoreLoadMissingRecordReturnsFresh(t *testing.T) {
	db := openTestDB(t)
	store := NewStateStore(repository.NewProgressRepository(db), &recordingReporter{}, t.TempDir(), time.Hour, time.Hour)

	loaded := store.Load(models.PathHistory)
	if loaded == nil {
		t.Fatal("Load() should always return a record")
	}
	if loaded.PathType != models.PathHistory || loaded.CurrentCheckpoint != models.FirstCheckpoint {
		t.Errorf("fresh record = %+v, want documented defaults", loaded)
	}
}

func TestStoreFlushPersistsDirtyState(t *testing.T) {
	db := openTestDB(t)
	progressRepo := repository.NewProgressRepository(db)
	store := NewStateStore(progressRepo, &recordingReporter{}, t.TempDir(), time.Hour, time.Hour)

	progress := models.NewPathProgress(models.PathBreeds)
	progress.TotalQuestions = 4
	progress.CorrectAnswers = 3
	store.MarkDirty(progress)

	if err := store.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}

	stored, err := progressRepo.Get(models.PathBreeds)
	if err != nil {
		t.Fatal(err)
	}
	if stored == nil || stored.TotalQuestions != 4 {
		t.Errorf("flushed record = %+v, want 4 questions", stored)
	}
}
