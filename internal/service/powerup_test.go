package service

import (
	"errors"
	"testing"

	"pawquest/internal/models"
)

// newPoweredFixture starts a session on a path whose stored inventory
// already holds power-ups
func newPoweredFixture(t *testing.T, inventory models.PowerUpInventory) *engineFixture {
	t.Helper()

	f := newFixture(t)
	seedBank(t, f.questionRepo, models.PathBreeds)

	stored := models.NewPathProgress(models.PathBreeds)
	stored.PowerUpInventory = inventory
	if err := f.progressRepo.Upsert(stored); err != nil {
		t.Fatal(err)
	}

	if _, err := f.engine.InitializePath(models.PathBreeds, nil); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestSecondChanceAtMaxLivesRejectedWithoutConsuming(t *testing.T) {
	f := newPoweredFixture(t, models.PowerUpInventory{models.PowerUpSecondChance: 1})

	if _, err := f.engine.UsePowerUp(models.PowerUpSecondChance); !errors.Is(err, ErrLivesAtMax) {
		t.Fatalf("UsePowerUp() error = %v, want ErrLivesAtMax", err)
	}

	snapshot, err := f.engine.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if snapshot.Inventory.Count(models.PowerUpSecondChance) != 1 {
		t.Errorf("second_chance count = %d after rejection, want 1 (not consumed)", snapshot.Inventory.Count(models.PowerUpSecondChance))
	}
}

func TestSecondChanceRestoresLife(t *testing.T) {
	f := newPoweredFixture(t, models.PowerUpInventory{models.PowerUpSecondChance: 1})

	f.answer(t, false)

	outcome, err := f.engine.UsePowerUp(models.PowerUpSecondChance)
	if err != nil {
		t.Fatalf("UsePowerUp() error: %v", err)
	}
	if outcome.LivesRemaining != models.MaxLives {
		t.Errorf("LivesRemaining = %d, want %d", outcome.LivesRemaining, models.MaxLives)
	}
	if outcome.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0 (consumed)", outcome.Remaining)
	}
}

func TestExtraTimeExtendsCountdown(t *testing.T) {
	f := newPoweredFixture(t, models.PowerUpInventory{models.PowerUpExtraTime: 2})

	before, err := f.engine.Snapshot()
	if err != nil {
		t.Fatal(err)
	}

	outcome, err := f.engine.UsePowerUp(models.PowerUpExtraTime)
	if err != nil {
		t.Fatalf("UsePowerUp() error: %v", err)
	}
	if outcome.SecondsAdded != 15 {
		t.Errorf("SecondsAdded = %d, want 15", outcome.SecondsAdded)
	}

	after, err := f.engine.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	gained := after.Timer.RemainingSeconds - before.Timer.RemainingSeconds
	// A tick may have elapsed between snapshots
	if gained < 14 || gained > 15 {
		t.Errorf("timer gained %d seconds, want ~15", gained)
	}
}

func TestSkipConsumesQuestionWithoutPenalty(t *testing.T) {
	f := newPoweredFixture(t, models.PowerUpInventory{models.PowerUpSkip: 1})

	q, err := f.engine.CurrentQuestion()
	if err != nil {
		t.Fatal(err)
	}

	outcome, err := f.engine.UsePowerUp(models.PowerUpSkip)
	if err != nil {
		t.Fatalf("UsePowerUp() error: %v", err)
	}
	if outcome.Skipped == nil {
		t.Fatal("skip outcome should include the consumed question")
	}
	if outcome.Skipped.QuestionID != q.ID {
		t.Errorf("skipped question = %d, want %d", outcome.Skipped.QuestionID, q.ID)
	}
	if outcome.Skipped.Correct {
		t.Error("skipped question should count as not correct")
	}
	if outcome.LivesRemaining != models.MaxLives {
		t.Errorf("LivesRemaining = %d after skip, want %d (no life lost)", outcome.LivesRemaining, models.MaxLives)
	}

	progress, err := f.engine.Progress()
	if err != nil {
		t.Fatal(err)
	}
	if progress.TotalQuestions != 1 || progress.CorrectAnswers != 0 {
		t.Errorf("counters = %d/%d after skip, want 0/1", progress.CorrectAnswers, progress.TotalQuestions)
	}
	if !progress.AnsweredQuestionIDs[q.ID] {
		t.Error("skipped question should join the answered set")
	}

	next, err := f.engine.CurrentQuestion()
	if err != nil {
		t.Fatal(err)
	}
	if next.ID == q.ID {
		t.Error("skip should advance to a new question")
	}
}

func TestFiftyFiftyRemovesTwoWrongChoices(t *testing.T) {
	f := newPoweredFixture(t, models.PowerUpInventory{models.PowerUpFiftyFifty: 1, models.PowerUpHint: 1})

	q, err := f.engine.CurrentQuestion()
	if err != nil {
		t.Fatal(err)
	}

	outcome, err := f.engine.UsePowerUp(models.PowerUpFiftyFifty)
	if err != nil {
		t.Fatalf("UsePowerUp() error: %v", err)
	}
	if len(outcome.RemovedChoices) != 2 {
		t.Fatalf("RemovedChoices = %v, want two indexes", outcome.RemovedChoices)
	}
	for _, idx := range outcome.RemovedChoices {
		if idx == q.AnswerIndex {
			t.Error("fifty-fifty removed the correct answer")
		}
	}

	hint, err := f.engine.UsePowerUp(models.PowerUpHint)
	if err != nil {
		t.Fatalf("UsePowerUp() error: %v", err)
	}
	if len(hint.RemovedChoices) != 1 {
		t.Errorf("hint RemovedChoices = %v, want one index", hint.RemovedChoices)
	}
}

func TestPowerUpInventoryGuards(t *testing.T) {
	f := newPoweredFixture(t, models.PowerUpInventory{})

	if _, err := f.engine.UsePowerUp(models.PowerUpHint); !errors.Is(err, ErrInsufficientInventory) {
		t.Errorf("UsePowerUp() with empty inventory error = %v, want ErrInsufficientInventory", err)
	}
	if _, err := f.engine.UsePowerUp(models.PowerUpKind("mega_bark")); !errors.Is(err, ErrUnknownPowerUp) {
		t.Errorf("UsePowerUp() with unknown kind error = %v, want ErrUnknownPowerUp", err)
	}
}

func TestPowerUpConsumptionPersists(t *testing.T) {
	f := newPoweredFixture(t, models.PowerUpInventory{models.PowerUpSkip: 2})

	if _, err := f.engine.UsePowerUp(models.PowerUpSkip); err != nil {
		t.Fatal(err)
	}
	if err := f.engine.Close(); err != nil {
		t.Fatal(err)
	}

	stored, err := f.progressRepo.Get(models.PathBreeds)
	if err != nil {
		t.Fatal(err)
	}
	if stored.PowerUpInventory.Count(models.PowerUpSkip) != 1 {
		t.Errorf("persisted skip count = %d, want 1", stored.PowerUpInventory.Count(models.PowerUpSkip))
	}
}
