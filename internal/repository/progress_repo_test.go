package repository

import (
	"path/filepath"
	"testing"
	"time"

	"pawquest/internal/database"
	"pawquest/internal/models"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestProgressUpsertAndGet(t *testing.T) {
	repo := NewProgressRepository(openTestDB(t))

	progress := models.NewPathProgress(models.PathBreeds)
	progress.CompletedCheckpoints = 2
	progress.CurrentCheckpoint = models.CheckpointGermanShepherd
	progress.MarkAnswered(3)
	progress.MarkAnswered(17)
	progress.MarkAnswered(42)
	progress.PowerUpInventory[models.PowerUpHint] = 4
	progress.PowerUpInventory[models.PowerUpSkip] = 1
	progress.CorrectAnswers = 18
	progress.TotalQuestions = 23
	progress.BestAccuracy = 85.5
	progress.TotalTimeSpent = 412
	progress.FallbackCount = 1
	progress.LastPlayed = time.Now().UTC().Truncate(time.Second)

	if err := repo.Upsert(progress); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	got, err := repo.Get(models.PathBreeds)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got == nil {
		t.Fatal("Get() returned nil for stored record")
	}

	if got.CompletedCheckpoints != 2 || got.CurrentCheckpoint != models.CheckpointGermanShepherd {
		t.Errorf("checkpoints = %d/%v, want 2/german_shepherd", got.CompletedCheckpoints, got.CurrentCheckpoint)
	}
	if len(got.AnsweredQuestionIDs) != 3 || !got.AnsweredQuestionIDs[17] {
		t.Errorf("answered set = %v, want {3,17,42}", got.AnsweredQuestionIDs)
	}
	if got.PowerUpInventory.Count(models.PowerUpHint) != 4 {
		t.Errorf("hint count = %d, want 4", got.PowerUpInventory.Count(models.PowerUpHint))
	}
	if got.CorrectAnswers != 18 || got.TotalQuestions != 23 {
		t.Errorf("counters = %d/%d, want 18/23", got.CorrectAnswers, got.TotalQuestions)
	}
	if got.BestAccuracy != 85.5 {
		t.Errorf("BestAccuracy = %v, want 85.5", got.BestAccuracy)
	}
	if got.FallbackCount != 1 || got.TotalTimeSpent != 412 {
		t.Errorf("fallbacks/time = %d/%d, want 1/412", got.FallbackCount, got.TotalTimeSpent)
	}
}

func TestProgressGetMissingReturnsNil(t *testing.T) {
	repo := NewProgressRepository(openTestDB(t))

	got, err := repo.Get(models.PathHistory)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %+v for missing record, want nil", got)
	}
}

func TestProgressUpsertUpdatesExisting(t *testing.T) {
	repo := NewProgressRepository(openTestDB(t))

	progress := models.NewPathProgress(models.PathHealth)
	if err := repo.Upsert(progress); err != nil {
		t.Fatal(err)
	}

	progress.TotalQuestions = 10
	progress.CorrectAnswers = 8
	progress.CompletedCheckpoints = 1
	if err := repo.Upsert(progress); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Get(models.PathHealth)
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalQuestions != 10 || got.CompletedCheckpoints != 1 {
		t.Errorf("updated record = %d questions, %d checkpoints; want 10, 1", got.TotalQuestions, got.CompletedCheckpoints)
	}

	// Still a single row per path
	all, err := repo.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("All() returned %d records, want 1", len(all))
	}
}

func TestProgressDelete(t *testing.T) {
	repo := NewProgressRepository(openTestDB(t))

	if err := repo.Upsert(models.NewPathProgress(models.PathBehavior)); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(models.PathBehavior); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	got, err := repo.Get(models.PathBehavior)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Error("record should be gone after delete")
	}
}

func TestIDSetRoundTrip(t *testing.T) {
	ids := map[int64]bool{5: true, 1: true, 300: true}

	s := idSetToString(ids)
	if s != "1,5,300" {
		t.Errorf("idSetToString() = %q, want sorted %q", s, "1,5,300")
	}

	parsed := parseIDSet(s)
	if len(parsed) != 3 || !parsed[300] {
		t.Errorf("parseIDSet() = %v, want original set", parsed)
	}

	if len(parseIDSet("")) != 0 {
		t.Error("empty string should parse to empty set")
	}

	// Malformed entries are skipped, not fatal
	parsed = parseIDSet("1,bogus,3")
	if len(parsed) != 2 || !parsed[1] || !parsed[3] {
		t.Errorf("parseIDSet() with malformed entry = %v, want {1,3}", parsed)
	}
}
