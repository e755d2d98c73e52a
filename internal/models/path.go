package models

// PathType identifies one of the five themed question tracks
type PathType string

const (
	PathBreeds   PathType = "breeds"
	PathTraining PathType = "training"
	PathHealth   PathType = "health"
	PathBehavior PathType = "behavior"
	PathHistory  PathType = "history"
)

// AllPaths lists every path in display order
var AllPaths = []PathType{PathBreeds, PathTraining, PathHealth, PathBehavior, PathHistory}

// IsValid reports whether the path is one of the five known tracks
func (p PathType) IsValid() bool {
	switch p {
	case PathBreeds, PathTraining, PathHealth, PathBehavior, PathHistory:
		return true
	}
	return false
}

// DisplayName returns the human-readable path name
func (p PathType) DisplayName() string {
	switch p {
	case PathBreeds:
		return "Breeds"
	case PathTraining:
		return "Training"
	case PathHealth:
		return "Health"
	case PathBehavior:
		return "Behavior"
	case PathHistory:
		return "History"
	}
	return string(p)
}

// QuestionsPerSegment is the number of questions between two consecutive checkpoints
const QuestionsPerSegment = 10

// Checkpoint is one of the five breed-named milestones on a path.
// Checkpoints are strictly ordered; there is no checkpoint zero — the
// implicit starting state precedes CheckpointChihuahua.
type Checkpoint int

const (
	CheckpointChihuahua Checkpoint = iota + 1
	CheckpointBeagle
	CheckpointGermanShepherd
	CheckpointHusky
	CheckpointGreatDane
)

// FirstCheckpoint and FinalCheckpoint bound the checkpoint sequence
const (
	FirstCheckpoint = CheckpointChihuahua
	FinalCheckpoint = CheckpointGreatDane
)

// AllCheckpoints lists the checkpoints in progression order
var AllCheckpoints = []Checkpoint{
	CheckpointChihuahua,
	CheckpointBeagle,
	CheckpointGermanShepherd,
	CheckpointHusky,
	CheckpointGreatDane,
}

// IsValid reports whether the checkpoint is in the known sequence
func (c Checkpoint) IsValid() bool {
	return c >= FirstCheckpoint && c <= FinalCheckpoint
}

// RequiredQuestions returns the cumulative answered-question count this
// checkpoint requires (10, 20, 30, 40, 50)
func (c Checkpoint) RequiredQuestions() int {
	return int(c) * QuestionsPerSegment
}

// DifficultyBand returns the question difficulty level (1-5) for the
// segment leading up to this checkpoint
func (c Checkpoint) DifficultyBand() int {
	return int(c)
}

// Next returns the following checkpoint, or false if this is the last one
func (c Checkpoint) Next() (Checkpoint, bool) {
	if c >= FinalCheckpoint {
		return FinalCheckpoint, false
	}
	return c + 1, true
}

func (c Checkpoint) String() string {
	switch c {
	case CheckpointChihuahua:
		return "chihuahua"
	case CheckpointBeagle:
		return "beagle"
	case CheckpointGermanShepherd:
		return "german_shepherd"
	case CheckpointHusky:
		return "husky"
	case CheckpointGreatDane:
		return "great_dane"
	}
	return "unknown"
}

// DisplayName returns the human-readable checkpoint name
func (c Checkpoint) DisplayName() string {
	switch c {
	case CheckpointChihuahua:
		return "Chihuahua"
	case CheckpointBeagle:
		return "Beagle"
	case CheckpointGermanShepherd:
		return "German Shepherd"
	case CheckpointHusky:
		return "Husky"
	case CheckpointGreatDane:
		return "Great Dane"
	}
	return "Unknown"
}
