package models

import "time"

// GameEventType identifies a state-change notification from the engine
type GameEventType string

const (
	EventCheckpointReached GameEventType = "checkpoint_reached"
	EventPathCompleted     GameEventType = "path_completed"
	EventFallbackTriggered GameEventType = "fallback_triggered"
	EventLifeLost          GameEventType = "life_lost"
	EventLifeRestored      GameEventType = "life_restored"
	EventPowerUpGranted    GameEventType = "power_up_granted"
	EventPowerUpConsumed   GameEventType = "power_up_consumed"
	EventTimerWarning      GameEventType = "timer_warning"
	EventTimerExpired      GameEventType = "timer_expired"
)

// GameEvent is a typed state-change notification published by the engine
// and consumed by the presentation layer.
type GameEvent struct {
	Type       GameEventType    `json:"type"`
	PathType   PathType         `json:"path_type,omitempty"`
	Checkpoint Checkpoint       `json:"checkpoint,omitempty"`
	PowerUp    PowerUpKind      `json:"power_up,omitempty"`
	Rewards    PowerUpInventory `json:"rewards,omitempty"`

	// ToPathStart distinguishes "returned to path start" from "returned to
	// checkpoint X" on fallback events
	ToPathStart bool `json:"to_path_start,omitempty"`

	LivesRemaining int       `json:"lives_remaining,omitempty"`
	Seconds        int       `json:"seconds,omitempty"`
	At             time.Time `json:"at"`
}
