package models

// PowerUpKind identifies one of the five consumable player aids
type PowerUpKind string

const (
	PowerUpFiftyFifty   PowerUpKind = "fifty_fifty"
	PowerUpHint         PowerUpKind = "hint"
	PowerUpExtraTime    PowerUpKind = "extra_time"
	PowerUpSkip         PowerUpKind = "skip"
	PowerUpSecondChance PowerUpKind = "second_chance"
)

// AllPowerUps lists every power-up kind in reward-table order
var AllPowerUps = []PowerUpKind{
	PowerUpFiftyFifty,
	PowerUpHint,
	PowerUpExtraTime,
	PowerUpSkip,
	PowerUpSecondChance,
}

// IsValid reports whether the kind is one of the five known power-ups
func (k PowerUpKind) IsValid() bool {
	switch k {
	case PowerUpFiftyFifty, PowerUpHint, PowerUpExtraTime, PowerUpSkip, PowerUpSecondChance:
		return true
	}
	return false
}

// PowerUpInventory maps power-up kinds to non-negative counts
type PowerUpInventory map[PowerUpKind]int

// NewPowerUpInventory returns an empty inventory
func NewPowerUpInventory() PowerUpInventory {
	return make(PowerUpInventory)
}

// Clone returns an independent copy of the inventory
func (inv PowerUpInventory) Clone() PowerUpInventory {
	out := make(PowerUpInventory, len(inv))
	for k, v := range inv {
		out[k] = v
	}
	return out
}

// Merge adds the counts from other into this inventory. Merging is always
// additive — existing counts are never replaced or reduced.
func (inv PowerUpInventory) Merge(other PowerUpInventory) {
	for k, v := range other {
		inv[k] += v
	}
}

// Count returns the count for a kind, zero if absent
func (inv PowerUpInventory) Count(kind PowerUpKind) int {
	return inv[kind]
}

// Total returns the sum of all counts
func (inv PowerUpInventory) Total() int {
	total := 0
	for _, v := range inv {
		total += v
	}
	return total
}
