package models

import (
	"testing"
)

func TestCheckpointOrdering(t *testing.T) {
	tests := []struct {
		checkpoint Checkpoint
		required   int
		difficulty int
		name       string
	}{
		{CheckpointChihuahua, 10, 1, "chihuahua"},
		{CheckpointBeagle, 20, 2, "beagle"},
		{CheckpointGermanShepherd, 30, 3, "german_shepherd"},
		{CheckpointHusky, 40, 4, "husky"},
		{CheckpointGreatDane, 50, 5, "great_dane"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.checkpoint.RequiredQuestions(); got != tt.required {
				t.Errorf("RequiredQuestions() = %d, want %d", got, tt.required)
			}
			if got := tt.checkpoint.DifficultyBand(); got != tt.difficulty {
				t.Errorf("DifficultyBand() = %d, want %d", got, tt.difficulty)
			}
			if got := tt.checkpoint.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if !tt.checkpoint.IsValid() {
				t.Errorf("IsValid() = false for %s", tt.name)
			}
		})
	}
}

func TestCheckpointNext(t *testing.T) {
	next, ok := CheckpointChihuahua.Next()
	if !ok || next != CheckpointBeagle {
		t.Errorf("Next() after chihuahua = %v, %v; want beagle, true", next, ok)
	}

	if _, ok := CheckpointGreatDane.Next(); ok {
		t.Error("Next() after great_dane should return false")
	}
}

func TestCheckpointInvalid(t *testing.T) {
	if Checkpoint(0).IsValid() {
		t.Error("checkpoint 0 should be invalid")
	}
	if Checkpoint(6).IsValid() {
		t.Error("checkpoint 6 should be invalid")
	}
}

func TestPathTypeValidation(t *testing.T) {
	for _, path := range AllPaths {
		if !path.IsValid() {
			t.Errorf("path %s should be valid", path)
		}
	}
	if PathType("cats").IsValid() {
		t.Error("unknown path should be invalid")
	}
}

func TestInventoryMergeIsAdditive(t *testing.T) {
	inv := PowerUpInventory{PowerUpHint: 2, PowerUpSkip: 1}
	inv.Merge(PowerUpInventory{PowerUpHint: 3, PowerUpFiftyFifty: 2})

	if inv.Count(PowerUpHint) != 5 {
		t.Errorf("hint count = %d, want 5", inv.Count(PowerUpHint))
	}
	if inv.Count(PowerUpSkip) != 1 {
		t.Errorf("skip count = %d, want 1", inv.Count(PowerUpSkip))
	}
	if inv.Count(PowerUpFiftyFifty) != 2 {
		t.Errorf("fifty_fifty count = %d, want 2", inv.Count(PowerUpFiftyFifty))
	}
	if inv.Total() != 8 {
		t.Errorf("total = %d, want 8", inv.Total())
	}
}

func TestInventoryCloneIsIndependent(t *testing.T) {
	inv := PowerUpInventory{PowerUpHint: 2}
	clone := inv.Clone()
	clone[PowerUpHint] = 99

	if inv.Count(PowerUpHint) != 2 {
		t.Errorf("mutating the clone changed the original: %d", inv.Count(PowerUpHint))
	}
}

func TestNewPathProgressDefaults(t *testing.T) {
	p := NewPathProgress(PathBreeds)

	if p.CurrentCheckpoint != FirstCheckpoint {
		t.Errorf("CurrentCheckpoint = %v, want %v", p.CurrentCheckpoint, FirstCheckpoint)
	}
	if p.SchemaVersion != ProgressSchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", p.SchemaVersion, ProgressSchemaVersion)
	}
	if len(p.AnsweredQuestionIDs) != 0 {
		t.Error("answered set should start empty")
	}
	if p.PowerUpInventory.Total() != 0 {
		t.Error("inventory should start empty")
	}
	if p.IsCompleted {
		t.Error("new progress should not be completed")
	}
}

func TestBestAccuracyRatchet(t *testing.T) {
	p := NewPathProgress(PathHealth)

	p.CorrectAnswers = 9
	p.TotalQuestions = 10
	p.UpdateBestAccuracy()
	if p.BestAccuracy != 90 {
		t.Fatalf("BestAccuracy = %.1f, want 90", p.BestAccuracy)
	}

	// Worse current accuracy never lowers the high-water mark
	p.CorrectAnswers = 10
	p.TotalQuestions = 20
	p.UpdateBestAccuracy()
	if p.BestAccuracy != 90 {
		t.Errorf("BestAccuracy = %.1f after worse run, want 90", p.BestAccuracy)
	}
}

func TestCurrentAccuracyZeroQuestions(t *testing.T) {
	p := NewPathProgress(PathHistory)
	if p.CurrentAccuracy() != 0 {
		t.Errorf("accuracy with zero questions = %.1f, want 0", p.CurrentAccuracy())
	}
}

func TestLastCompletedCheckpoint(t *testing.T) {
	p := NewPathProgress(PathTraining)

	if _, ok := p.LastCompletedCheckpoint(); ok {
		t.Error("fresh progress should have no completed checkpoint")
	}

	p.CompletedCheckpoints = 3
	last, ok := p.LastCompletedCheckpoint()
	if !ok || last != CheckpointGermanShepherd {
		t.Errorf("LastCompletedCheckpoint() = %v, %v; want german_shepherd, true", last, ok)
	}

	if p.NextTargetCheckpoint() != CheckpointHusky {
		t.Errorf("NextTargetCheckpoint() = %v, want husky", p.NextTargetCheckpoint())
	}
}

func TestProgressCloneIsDeep(t *testing.T) {
	p := NewPathProgress(PathBreeds)
	p.MarkAnswered(7)
	p.PowerUpInventory[PowerUpHint] = 2

	clone := p.Clone()
	clone.MarkAnswered(8)
	clone.PowerUpInventory[PowerUpHint] = 99

	if p.AnsweredQuestionIDs[8] {
		t.Error("mutating clone's answered set changed the original")
	}
	if p.PowerUpInventory[PowerUpHint] != 2 {
		t.Error("mutating clone's inventory changed the original")
	}
}

func TestQuestionIsCorrect(t *testing.T) {
	q := Question{Choices: []string{"a", "b", "c", "d"}, AnswerIndex: 2}

	if !q.IsCorrect(2) {
		t.Error("correct index should be accepted")
	}
	if q.IsCorrect(0) {
		t.Error("wrong index should be rejected")
	}
	if q.IsCorrect(-1) || q.IsCorrect(4) {
		t.Error("out-of-range index should be rejected")
	}
}
