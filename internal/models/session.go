package models

import "time"

// MaxLives is the number of lives a session starts with
const MaxLives = 3

// GameSession is the transient state of an actively played path. It is
// derived from the corresponding PathProgress when the path is entered and
// discarded, after a final flush, when the player exits or completes it.
type GameSession struct {
	ID          string
	PathType    PathType
	StartedAt   time.Time

	// TargetCheckpoint is the checkpoint the current segment works toward.
	// It drives both the difficulty band questions are served at and which
	// checkpoint gets credited when the segment completes.
	TargetCheckpoint Checkpoint

	// QuestionIndex is the position within the current 10-question segment (0-9)
	QuestionIndex int

	// SegmentCorrect / SegmentTotal track the current segment only, used
	// for the per-segment reward bonus
	SegmentCorrect int
	SegmentTotal   int

	LivesRemaining int
	Score          int
	Streak         int

	// PowerUps is the session view of the persistent inventory
	PowerUps PowerUpInventory
}

// TimerState is a read-only snapshot of the question countdown. It is owned
// exclusively by the timer controller.
type TimerState struct {
	RemainingSeconds int
	TotalSeconds     int
	IsActive         bool
	IsPaused         bool
}
