package service

import (
	"testing"

	"pawquest/internal/models"
)

func TestCheckpointRewardsBase(t *testing.T) {
	tests := []struct {
		name       string
		checkpoint models.Checkpoint
		accuracy   float64
		want       map[models.PowerUpKind]int
	}{
		{
			name:       "chihuahua base",
			checkpoint: models.CheckpointChihuahua,
			accuracy:   70,
			want: map[models.PowerUpKind]int{
				models.PowerUpFiftyFifty: 2,
				models.PowerUpHint:       2,
				models.PowerUpExtraTime:  1,
			},
		},
		{
			name:       "beagle with accuracy bonus",
			checkpoint: models.CheckpointBeagle,
			accuracy:   85,
			want: map[models.PowerUpKind]int{
				models.PowerUpFiftyFifty:   3,
				models.PowerUpHint:         3,
				models.PowerUpExtraTime:    3,
				models.PowerUpSkip:         2,
				models.PowerUpSecondChance: 1,
			},
		},
		{
			name:       "german shepherd base",
			checkpoint: models.CheckpointGermanShepherd,
			accuracy:   50,
			want: map[models.PowerUpKind]int{
				models.PowerUpFiftyFifty:   2,
				models.PowerUpHint:         2,
				models.PowerUpExtraTime:    2,
				models.PowerUpSkip:         2,
				models.PowerUpSecondChance: 1,
			},
		},
		{
			name:       "great dane with bonus",
			checkpoint: models.CheckpointGreatDane,
			accuracy:   100,
			want: map[models.PowerUpKind]int{
				models.PowerUpFiftyFifty:   5,
				models.PowerUpHint:         5,
				models.PowerUpExtraTime:    5,
				models.PowerUpSkip:         5,
				models.PowerUpSecondChance: 5,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckpointRewards(tt.checkpoint, tt.accuracy)
			if len(got) != len(tt.want) {
				t.Errorf("got %d kinds, want %d: %v", len(got), len(tt.want), got)
			}
			for kind, count := range tt.want {
				if got.Count(kind) != count {
					t.Errorf("%s = %d, want %d", kind, got.Count(kind), count)
				}
			}
		})
	}
}

func TestCheckpointRewardsBonusBoundary(t *testing.T) {
	// Exactly at the threshold counts as earning the bonus
	at := CheckpointRewards(models.CheckpointChihuahua, 80)
	if at.Count(models.PowerUpSkip) != 1 {
		t.Errorf("skip at 80%% = %d, want 1 (bonus applied)", at.Count(models.PowerUpSkip))
	}

	below := CheckpointRewards(models.CheckpointChihuahua, 79.9)
	if below.Count(models.PowerUpSkip) != 0 {
		t.Errorf("skip at 79.9%% = %d, want 0", below.Count(models.PowerUpSkip))
	}
}

func TestCheckpointRewardsZeroGrantsExcluded(t *testing.T) {
	rewards := CheckpointRewards(models.CheckpointChihuahua, 50)
	if _, ok := rewards[models.PowerUpSkip]; ok {
		t.Error("zero-count kinds should not appear in the grant")
	}
	if _, ok := rewards[models.PowerUpSecondChance]; ok {
		t.Error("zero-count kinds should not appear in the grant")
	}
}

func TestCheckpointRewardsUnknownCheckpoint(t *testing.T) {
	rewards := CheckpointRewards(models.Checkpoint(9), 100)
	if rewards.Total() != 0 {
		t.Errorf("unknown checkpoint granted %d power-ups, want 0", rewards.Total())
	}
}
