package models

import "time"

// ProgressSchemaVersion tags persisted PathProgress records so older
// records can be migrated on load
const ProgressSchemaVersion = 1

// PathProgress is the durable progression record for one path. It is
// created on first selection of the path, persisted indefinitely, and
// mutated only through the progression engine.
type PathProgress struct {
	PathType      PathType
	SchemaVersion int

	// CurrentCheckpoint is the checkpoint currently being pursued. It only
	// advances forward, except on checkpoint fallback, which rewinds it to
	// the last completed checkpoint (never before the start).
	CurrentCheckpoint Checkpoint

	// CompletedCheckpoints counts checkpoints actually completed (0-5)
	CompletedCheckpoints int

	// AnsweredQuestionIDs is append-only — members are never removed,
	// including across checkpoint fallback
	AnsweredQuestionIDs map[int64]bool

	PowerUpInventory PowerUpInventory
	CorrectAnswers   int
	TotalQuestions   int
	BestAccuracy     float64 // 0-100, high-water mark
	TotalTimeSpent   int     // seconds
	FallbackCount    int
	LastPlayed       time.Time
	IsCompleted      bool
}

// NewPathProgress returns a fresh progress record with documented defaults:
// first checkpoint, empty inventory, empty answered set.
func NewPathProgress(path PathType) *PathProgress {
	return &PathProgress{
		PathType:            path,
		SchemaVersion:       ProgressSchemaVersion,
		CurrentCheckpoint:   FirstCheckpoint,
		AnsweredQuestionIDs: make(map[int64]bool),
		PowerUpInventory:    NewPowerUpInventory(),
		LastPlayed:          time.Now(),
	}
}

// CurrentAccuracy returns the cumulative accuracy as a 0-100 value
func (p *PathProgress) CurrentAccuracy() float64 {
	if p.TotalQuestions == 0 {
		return 0
	}
	return float64(p.CorrectAnswers) / float64(p.TotalQuestions) * 100
}

// UpdateBestAccuracy ratchets the high-water mark upward; it never lowers it
func (p *PathProgress) UpdateBestAccuracy() {
	if acc := p.CurrentAccuracy(); acc > p.BestAccuracy {
		p.BestAccuracy = acc
	}
}

// MarkAnswered records a question id in the append-only answered set
func (p *PathProgress) MarkAnswered(questionID int64) {
	if p.AnsweredQuestionIDs == nil {
		p.AnsweredQuestionIDs = make(map[int64]bool)
	}
	p.AnsweredQuestionIDs[questionID] = true
}

// LastCompletedCheckpoint returns the most recently completed checkpoint,
// or false if none has been completed yet
func (p *PathProgress) LastCompletedCheckpoint() (Checkpoint, bool) {
	if p.CompletedCheckpoints <= 0 {
		return 0, false
	}
	cp := Checkpoint(p.CompletedCheckpoints)
	if cp > FinalCheckpoint {
		cp = FinalCheckpoint
	}
	return cp, true
}

// NextTargetCheckpoint returns the checkpoint the next segment works toward
func (p *PathProgress) NextTargetCheckpoint() Checkpoint {
	next := Checkpoint(p.CompletedCheckpoints + 1)
	if next > FinalCheckpoint {
		return FinalCheckpoint
	}
	return next
}

// Clone returns a deep copy, safe to hand to background writers
func (p *PathProgress) Clone() *PathProgress {
	out := *p
	out.AnsweredQuestionIDs = make(map[int64]bool, len(p.AnsweredQuestionIDs))
	for id := range p.AnsweredQuestionIDs {
		out.AnsweredQuestionIDs[id] = true
	}
	out.PowerUpInventory = p.PowerUpInventory.Clone()
	return &out
}
