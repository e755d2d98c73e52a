package service

import "pawquest/internal/models"

// LivesTracker tracks the remaining lives for the active session. It is not
// safe for concurrent use on its own; the progression engine serializes all
// access under its own lock.
type LivesTracker struct {
	remaining int
}

// NewLivesTracker creates a tracker starting at maximum lives
func NewLivesTracker() *LivesTracker {
	return &LivesTracker{remaining: models.MaxLives}
}

// LoseLife decrements remaining lives, floored at zero, and returns true
// when this call caused game-over (zero reached)
func (t *LivesTracker) LoseLife() bool {
	if t.remaining <= 0 {
		return false
	}
	t.remaining--
	return t.remaining == 0
}

// RestoreLife increments remaining lives, capped at the maximum. It returns
// false if lives were already at maximum — callers must treat that as a
// usage rejection, not silent success.
func (t *LivesTracker) RestoreLife() bool {
	if t.remaining >= models.MaxLives {
		return false
	}
	t.remaining++
	return true
}

// Reset restores the tracker to maximum lives
func (t *LivesTracker) Reset() {
	t.remaining = models.MaxLives
}

// Remaining returns the current life count (0-3)
func (t *LivesTracker) Remaining() int {
	return t.remaining
}
