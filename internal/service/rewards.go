package service

import "pawquest/internal/models"

// BonusAccuracyThreshold is the segment accuracy (0-100) at or above which
// a flat +1 of every power-up kind is added to the checkpoint's base grant
const BonusAccuracyThreshold = 80.0

// rewardTable holds the base power-up grant per checkpoint, in the order
// fiftyFifty, hint, extraTime, skip, secondChance
var rewardTable = map[models.Checkpoint][5]int{
	models.CheckpointChihuahua:      {2, 2, 1, 0, 0},
	models.CheckpointBeagle:         {2, 2, 2, 1, 0},
	models.CheckpointGermanShepherd: {2, 2, 2, 2, 1},
	models.CheckpointHusky:          {3, 3, 3, 3, 3},
	models.CheckpointGreatDane:      {4, 4, 4, 4, 4},
}

// CheckpointRewards is a pure function mapping (checkpoint, segment
// accuracy) to a power-up grant. Segment accuracy is the 0-100 accuracy of
// the just-completed 10-question segment; at or above the bonus threshold a
// flat +1 per kind is added on top of the base table for that checkpoint
// only. The caller merges the result additively into existing inventory.
func CheckpointRewards(checkpoint models.Checkpoint, segmentAccuracy float64) models.PowerUpInventory {
	rewards := models.NewPowerUpInventory()

	base, ok := rewardTable[checkpoint]
	if !ok {
		return rewards
	}

	bonus := 0
	if segmentAccuracy >= BonusAccuracyThreshold {
		bonus = 1
	}

	for i, kind := range models.AllPowerUps {
		if grant := base[i] + bonus; grant > 0 {
			rewards[kind] = grant
		}
	}

	return rewards
}
