package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"pawquest/internal/models"
)

// AnswerOutcome describes the result of submitting an answer
type AnswerOutcome struct {
	QuestionID     int64                    `json:"question_id"`
	Correct        bool                     `json:"correct"`
	CorrectIndex   int                      `json:"correct_index"`
	PointsEarned   int                      `json:"points_earned"`
	Score          int                      `json:"score"`
	Streak         int                      `json:"streak"`
	LivesRemaining int                      `json:"lives_remaining"`
	CheckpointReached *models.Checkpoint    `json:"checkpoint_reached,omitempty"`
	Rewards        models.PowerUpInventory  `json:"rewards,omitempty"`
	PathCompleted  bool                     `json:"path_completed"`
	FellBack       bool                     `json:"fell_back"`
	FellBackTo     *models.Checkpoint       `json:"fell_back_to,omitempty"` // nil with FellBack means path start
	OutOfQuestions bool                     `json:"out_of_questions"`
}

// PowerUpOutcome describes the result of using a power-up
type PowerUpOutcome struct {
	Kind           models.PowerUpKind `json:"kind"`
	Remaining      int                `json:"remaining"`
	RemovedChoices []int              `json:"removed_choices,omitempty"`
	SecondsAdded   int                `json:"seconds_added,omitempty"`
	LivesRemaining int                `json:"lives_remaining"`
	Skipped        *AnswerOutcome     `json:"skipped,omitempty"`
}

// EngineSnapshot is the read-only query surface over session state
type EngineSnapshot struct {
	SessionID         string                  `json:"session_id"`
	PathType          models.PathType         `json:"path_type"`
	CurrentCheckpoint models.Checkpoint       `json:"current_checkpoint"`
	TargetCheckpoint  models.Checkpoint       `json:"target_checkpoint"`
	ProgressToNext    float64                 `json:"progress_to_next"` // 0-1 fraction of the segment
	QuestionIndex     int                     `json:"question_index"`
	LivesRemaining    int                     `json:"lives_remaining"`
	Score             int                     `json:"score"`
	Streak            int                     `json:"streak"`
	Inventory         models.PowerUpInventory `json:"inventory"`
	Accuracy          float64                 `json:"accuracy"`
	BestAccuracy      float64                 `json:"best_accuracy"`
	Timer             models.TimerState       `json:"timer"`
	Paused            bool                    `json:"paused"`
	Completed         bool                    `json:"completed"`
}

// EngineOptions tune a progression engine
type EngineOptions struct {
	QuestionSeconds  int
	ExtraTimeSeconds int
	Clock            func() time.Time
}

// ProgressionEngine is the sole mutator of session and progress state for
// one path: the single source of truth for what question comes next and
// what happens when an answer is submitted. All state-mutating entry points
// serialize on one mutex; background activities (timer ticks, autosave)
// either read snapshots or re-enter through the same serialized path.
type ProgressionEngine struct {
	mu sync.Mutex

	store    *StateStore
	pool     *QuestionPool
	timer    *TimerController
	emitter  *EventEmitter
	reporter ErrorReporter

	questionSeconds  int
	extraTimeSeconds int
	clock            func() time.Time

	path     models.PathType
	progress *models.PathProgress
	session  *models.GameSession
	lives    *LivesTracker

	batch      []models.Question
	batchIndex int

	// answeredThisSession guards against double-submission of a question id
	answeredThisSession map[int64]bool

	questionStartedAt time.Time
	paused            bool
	closed            bool
}

// NewProgressionEngine creates an engine for one path with its dependencies
// injected. Call InitializePath before any other operation.
func NewProgressionEngine(store *StateStore, pool *QuestionPool, timer *TimerController, emitter *EventEmitter, reporter ErrorReporter, opts EngineOptions) *ProgressionEngine {
	if opts.QuestionSeconds <= 0 {
		opts.QuestionSeconds = 30
	}
	if opts.ExtraTimeSeconds <= 0 {
		opts.ExtraTimeSeconds = 15
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &ProgressionEngine{
		store:            store,
		pool:             pool,
		timer:            timer,
		emitter:          emitter,
		reporter:         reporter,
		questionSeconds:  opts.QuestionSeconds,
		extraTimeSeconds: opts.ExtraTimeSeconds,
		clock:            opts.Clock,
	}
}

// InitializePath loads or creates the path's progress, derives a fresh
// session with full lives and the persistent inventory, and requests the
// first question batch. An optional start checkpoint lets the player replay
// an already-reached segment; it can never skip forward.
func (e *ProgressionEngine) InitializePath(path models.PathType, startFrom *models.Checkpoint) (*models.GameSession, error) {
	if !path.IsValid() {
		return nil, ErrInvalidPath
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	progress := e.store.Load(path)
	if progress.IsCompleted {
		return nil, ErrPathCompleted
	}

	target := progress.NextTargetCheckpoint()
	if startFrom != nil {
		if !startFrom.IsValid() || *startFrom > target {
			return nil, ErrInvalidPath
		}
		target = *startFrom
	}
	progress.CurrentCheckpoint = target
	progress.LastPlayed = e.clock()

	e.path = path
	e.progress = progress
	e.lives = NewLivesTracker()
	e.answeredThisSession = make(map[int64]bool)
	e.paused = false
	e.closed = false
	e.batch = nil
	e.batchIndex = 0

	e.session = &models.GameSession{
		ID:               uuid.NewString(),
		PathType:         path,
		StartedAt:        e.clock(),
		TargetCheckpoint: target,
		LivesRemaining:   e.lives.Remaining(),
		PowerUps:         progress.PowerUpInventory.Clone(),
	}

	if err := e.refillBatchLocked(); err != nil {
		return nil, err
	}
	if len(e.batch) == 0 {
		e.reporter.ReportError("initialize path "+string(path), ErrNoQuestions, SeverityError)
		return nil, ErrNoQuestions
	}

	e.startQuestionTimerLocked()
	e.store.MarkDirty(e.progress)

	session := *e.session
	return &session, nil
}

// CurrentQuestion returns the question currently being asked
func (e *ProgressionEngine) CurrentQuestion() (*models.Question, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil || e.closed {
		return nil, ErrNoActiveSession
	}
	if e.batchIndex >= len(e.batch) {
		return nil, ErrNoQuestions
	}
	q := e.batch[e.batchIndex]
	return &q, nil
}

// SubmitAnswer grades the given choice against the current question and
// advances the session: score, streak and totals update, an incorrect
// answer costs a life, lives reaching zero triggers checkpoint fallback,
// and the tenth question of a segment triggers checkpoint completion.
func (e *ProgressionEngine) SubmitAnswer(choice int) (*AnswerOutcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil || e.closed {
		return nil, ErrNoActiveSession
	}
	if e.paused {
		return nil, ErrSessionPaused
	}
	if e.progress.IsCompleted {
		return nil, ErrPathCompleted
	}
	if e.batchIndex >= len(e.batch) {
		return nil, ErrNoQuestions
	}

	question := e.batch[e.batchIndex]
	if e.answeredThisSession[question.ID] {
		return nil, ErrAlreadyAnswered
	}

	correct := question.IsCorrect(choice)
	return e.resolveQuestionLocked(question, correct, false)
}

// resolveQuestionLocked applies the consequences of the current question
// being answered (or expiring, or being skipped). Caller holds the lock.
func (e *ProgressionEngine) resolveQuestionLocked(question models.Question, correct, skipped bool) (*AnswerOutcome, error) {
	now := e.clock()

	e.answeredThisSession[question.ID] = true
	e.progress.MarkAnswered(question.ID)
	e.progress.TotalQuestions++
	e.progress.LastPlayed = now
	e.session.SegmentTotal++
	e.batchIndex++

	if elapsed := int(now.Sub(e.questionStartedAt).Seconds()); elapsed > 0 {
		e.progress.TotalTimeSpent += elapsed
	}

	outcome := &AnswerOutcome{
		QuestionID:   question.ID,
		Correct:      correct,
		CorrectIndex: question.AnswerIndex,
	}

	criticalTransition := false

	switch {
	case correct:
		e.progress.CorrectAnswers++
		e.session.SegmentCorrect++
		e.session.Streak++
		outcome.PointsEarned = e.pointsLocked(question.Difficulty)
		e.session.Score += outcome.PointsEarned
	case skipped:
		// Consumes the question without penalty
		e.session.Streak = 0
	default:
		e.session.Streak = 0
		gameOver := e.lives.LoseLife()
		e.session.LivesRemaining = e.lives.Remaining()
		e.emitter.Publish(models.GameEvent{
			Type:           models.EventLifeLost,
			PathType:       e.path,
			LivesRemaining: e.lives.Remaining(),
		})
		criticalTransition = true

		if gameOver {
			e.fallbackLocked(outcome)
		}
	}

	e.progress.UpdateBestAccuracy()

	// Checkpoint completion on the tenth question of the segment. Fallback
	// already reset the segment, so the two never fire together.
	if !outcome.FellBack && e.session.SegmentTotal >= models.QuestionsPerSegment {
		e.completeCheckpointLocked(outcome)
		criticalTransition = true
	}

	outcome.Score = e.session.Score
	outcome.Streak = e.session.Streak
	outcome.LivesRemaining = e.lives.Remaining()

	if !e.progress.IsCompleted {
		if err := e.ensureQuestionLocked(); err != nil {
			outcome.OutOfQuestions = true
			e.timer.Stop()
		} else {
			e.startQuestionTimerLocked()
		}
	} else {
		e.timer.Stop()
	}

	e.store.MarkDirty(e.progress)
	if criticalTransition {
		e.store.SaveAsync(e.progress)
	}

	return outcome, nil
}

// pointsLocked scores a correct answer: base points from difficulty plus a
// speed bonus from the time left on the countdown
func (e *ProgressionEngine) pointsLocked(difficulty int) int {
	base := difficulty * 10

	bonus := e.timer.State().RemainingSeconds * 2
	if bonus > 50 {
		bonus = 50
	}
	if bonus < 0 {
		bonus = 0
	}

	return base + bonus
}

// completeCheckpointLocked grants rewards for the just-finished segment,
// advances the checkpoint, and starts the next segment (or completes the
// path). The reward notification is emitted before any further question is
// dispatched. Caller holds the lock.
func (e *ProgressionEngine) completeCheckpointLocked(outcome *AnswerOutcome) {
	reached := e.session.TargetCheckpoint

	segmentAccuracy := 0.0
	if e.session.SegmentTotal > 0 {
		segmentAccuracy = float64(e.session.SegmentCorrect) / float64(e.session.SegmentTotal) * 100
	}

	rewards := CheckpointRewards(reached, segmentAccuracy)

	// Merge additively into both the persistent inventory and the session
	// view; grants never overwrite existing counts
	e.progress.PowerUpInventory.Merge(rewards)
	e.session.PowerUps.Merge(rewards)

	// Replaying an earlier segment grants rewards but cannot re-complete it
	if int(reached) == e.progress.CompletedCheckpoints+1 {
		e.progress.CompletedCheckpoints++
	}

	e.emitter.Publish(models.GameEvent{
		Type:       models.EventCheckpointReached,
		PathType:   e.path,
		Checkpoint: reached,
		Rewards:    rewards.Clone(),
	})
	e.emitter.Publish(models.GameEvent{
		Type:     models.EventPowerUpGranted,
		PathType: e.path,
		Rewards:  rewards.Clone(),
	})

	reachedCopy := reached
	outcome.CheckpointReached = &reachedCopy
	outcome.Rewards = rewards

	e.session.SegmentTotal = 0
	e.session.SegmentCorrect = 0
	e.session.QuestionIndex = 0

	if reached == models.FinalCheckpoint {
		e.progress.IsCompleted = true
		outcome.PathCompleted = true
		e.emitter.Publish(models.GameEvent{
			Type:     models.EventPathCompleted,
			PathType: e.path,
		})
		return
	}

	e.progress.CurrentCheckpoint = e.progress.NextTargetCheckpoint()
	e.session.TargetCheckpoint = e.progress.CurrentCheckpoint
	e.batch = nil
	e.batchIndex = 0
}

// fallbackLocked handles lives exhaustion: the player returns to the last
// completed checkpoint (or the path start) with full lives and a freshly
// shuffled batch. Answered question ids are never cleared — the no-repeat
// guarantee spans fallbacks. Caller holds the lock.
func (e *ProgressionEngine) fallbackLocked(outcome *AnswerOutcome) {
	last, hasCompleted := e.progress.LastCompletedCheckpoint()
	if hasCompleted {
		e.progress.CurrentCheckpoint = last
		lastCopy := last
		outcome.FellBackTo = &lastCopy
	} else {
		e.progress.CurrentCheckpoint = models.FirstCheckpoint
	}

	e.lives.Reset()
	e.session.LivesRemaining = e.lives.Remaining()
	e.session.Streak = 0
	e.session.SegmentTotal = 0
	e.session.SegmentCorrect = 0
	e.session.QuestionIndex = 0
	e.progress.FallbackCount++
	outcome.FellBack = true

	// The restored segment works toward the checkpoint after the last
	// completed one, at that target's difficulty band
	e.session.TargetCheckpoint = e.progress.NextTargetCheckpoint()
	e.batch = nil
	e.batchIndex = 0

	e.emitter.Publish(models.GameEvent{
		Type:        models.EventFallbackTriggered,
		PathType:    e.path,
		Checkpoint:  e.progress.CurrentCheckpoint,
		ToPathStart: !hasCompleted,
	})
}

// ensureQuestionLocked refills the batch when it runs out. Content
// exhaustion is recovered by the pool's relaxed filter; a genuinely empty
// pool is reported and surfaced as ErrNoQuestions. Caller holds the lock.
func (e *ProgressionEngine) ensureQuestionLocked() error {
	if e.batchIndex < len(e.batch) {
		e.session.QuestionIndex = e.session.SegmentTotal
		return nil
	}
	if err := e.refillBatchLocked(); err != nil {
		return err
	}
	if len(e.batch) == 0 {
		e.reporter.ReportError("question dispatch "+string(e.path), ErrNoQuestions, SeverityWarning)
		return ErrNoQuestions
	}
	e.session.QuestionIndex = e.session.SegmentTotal
	return nil
}

// refillBatchLocked requests a shuffled batch for the rest of the current
// segment. Caller holds the lock.
func (e *ProgressionEngine) refillBatchLocked() error {
	target := e.segmentTargetLocked()
	count := models.QuestionsPerSegment - e.session.SegmentTotal
	if count <= 0 {
		count = models.QuestionsPerSegment
	}

	batch, err := e.pool.NextBatch(e.path, target.DifficultyBand(), e.progress.AnsweredQuestionIDs, count)
	if err != nil {
		e.reporter.ReportError("question batch "+string(e.path), err, SeverityError)
		return err
	}

	e.batch = batch
	e.batchIndex = 0
	return nil
}

// segmentTargetLocked returns the checkpoint the current segment works
// toward. The session carries it explicitly: after a fallback it is the
// checkpoint after the one the player fell back to, and during a replay it
// is the replayed checkpoint itself, not the next uncompleted one.
func (e *ProgressionEngine) segmentTargetLocked() models.Checkpoint {
	return e.session.TargetCheckpoint
}

// UsePowerUp consumes one unit of the given kind and applies its effect.
// Using a power-up that cannot take effect is rejected without consuming it.
func (e *ProgressionEngine) UsePowerUp(kind models.PowerUpKind) (*PowerUpOutcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil || e.closed {
		return nil, ErrNoActiveSession
	}
	if e.paused {
		return nil, ErrSessionPaused
	}
	if !kind.IsValid() {
		return nil, ErrUnknownPowerUp
	}
	if e.session.PowerUps.Count(kind) <= 0 {
		return nil, ErrInsufficientInventory
	}

	outcome := &PowerUpOutcome{Kind: kind}

	switch kind {
	case models.PowerUpSecondChance:
		// Restoring at max lives is rejected, not silently discarded
		if !e.lives.RestoreLife() {
			return nil, ErrLivesAtMax
		}
		e.session.LivesRemaining = e.lives.Remaining()
		e.emitter.Publish(models.GameEvent{
			Type:           models.EventLifeRestored,
			PathType:       e.path,
			LivesRemaining: e.lives.Remaining(),
		})

	case models.PowerUpExtraTime:
		if !e.timer.AddTime(e.extraTimeSeconds) {
			return nil, ErrNoActiveSession
		}
		outcome.SecondsAdded = e.extraTimeSeconds

	case models.PowerUpFiftyFifty:
		removed, err := e.eliminateChoicesLocked(2)
		if err != nil {
			return nil, err
		}
		outcome.RemovedChoices = removed

	case models.PowerUpHint:
		removed, err := e.eliminateChoicesLocked(1)
		if err != nil {
			return nil, err
		}
		outcome.RemovedChoices = removed

	case models.PowerUpSkip:
		if e.batchIndex >= len(e.batch) {
			return nil, ErrNoQuestions
		}
		question := e.batch[e.batchIndex]
		skipped, err := e.resolveQuestionLocked(question, false, true)
		if err != nil {
			return nil, err
		}
		outcome.Skipped = skipped
	}

	e.session.PowerUps[kind]--
	e.progress.PowerUpInventory[kind]--
	if e.progress.PowerUpInventory[kind] < 0 {
		e.progress.PowerUpInventory[kind] = 0
	}
	outcome.Remaining = e.session.PowerUps.Count(kind)
	outcome.LivesRemaining = e.lives.Remaining()

	e.emitter.Publish(models.GameEvent{
		Type:     models.EventPowerUpConsumed,
		PathType: e.path,
		PowerUp:  kind,
	})

	e.store.MarkDirty(e.progress)
	return outcome, nil
}

// eliminateChoicesLocked picks up to n incorrect choice indexes of the
// current question for the UI to hide. Caller holds the lock.
func (e *ProgressionEngine) eliminateChoicesLocked(n int) ([]int, error) {
	if e.batchIndex >= len(e.batch) {
		return nil, ErrNoQuestions
	}
	question := e.batch[e.batchIndex]

	var removed []int
	for i := range question.Choices {
		if i == question.AnswerIndex {
			continue
		}
		removed = append(removed, i)
		if len(removed) == n {
			break
		}
	}
	return removed, nil
}

// Pause suspends the countdown and rejects answers and power-ups until Resume
func (e *ProgressionEngine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil || e.closed {
		return ErrNoActiveSession
	}
	e.paused = true
	e.timer.Pause()
	return nil
}

// Resume continues a paused session
func (e *ProgressionEngine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil || e.closed {
		return ErrNoActiveSession
	}
	e.paused = false
	e.timer.Resume()
	return nil
}

// Snapshot returns the read-only query surface of the current state
func (e *ProgressionEngine) Snapshot() (*EngineSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil || e.closed {
		return nil, ErrNoActiveSession
	}

	return &EngineSnapshot{
		SessionID:         e.session.ID,
		PathType:          e.path,
		CurrentCheckpoint: e.progress.CurrentCheckpoint,
		TargetCheckpoint:  e.segmentTargetLocked(),
		ProgressToNext:    float64(e.session.SegmentTotal) / float64(models.QuestionsPerSegment),
		QuestionIndex:     e.session.QuestionIndex,
		LivesRemaining:    e.lives.Remaining(),
		Score:             e.session.Score,
		Streak:            e.session.Streak,
		Inventory:         e.session.PowerUps.Clone(),
		Accuracy:          e.progress.CurrentAccuracy(),
		BestAccuracy:      e.progress.BestAccuracy,
		Timer:             e.timer.State(),
		Paused:            e.paused,
		Completed:         e.progress.IsCompleted,
	}, nil
}

// Progress returns a copy of the underlying progress record
func (e *ProgressionEngine) Progress() (*models.PathProgress, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.progress == nil {
		return nil, ErrNoActiveSession
	}
	return e.progress.Clone(), nil
}

// Close ends the session: the timer stops and the final state is flushed
// synchronously before the session is discarded
func (e *ProgressionEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	e.timer.Stop()

	if e.progress != nil {
		e.progress.LastPlayed = e.clock()
		if err := e.store.Save(e.progress); err != nil {
			return err
		}
	}
	e.session = nil
	return nil
}

// startQuestionTimerLocked begins the countdown for the question about to
// be presented. Caller holds the lock.
func (e *ProgressionEngine) startQuestionTimerLocked() {
	e.questionStartedAt = e.clock()
	e.timer.Start(e.questionSeconds, e.onTimerWarning, e.onTimerExpire)
}

// onTimerWarning runs on the timer goroutine without the engine lock
func (e *ProgressionEngine) onTimerWarning(remaining int) {
	e.emitter.Publish(models.GameEvent{
		Type:     models.EventTimerWarning,
		PathType: e.path,
		Seconds:  remaining,
	})
}

// onTimerExpire re-enters the serialized mutation path: an expired
// countdown counts as an incorrect answer on the current question
func (e *ProgressionEngine) onTimerExpire() {
	e.emitter.Publish(models.GameEvent{
		Type:     models.EventTimerExpired,
		PathType: e.path,
	})

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil || e.closed || e.paused || e.progress.IsCompleted {
		return
	}
	if e.batchIndex >= len(e.batch) {
		return
	}

	question := e.batch[e.batchIndex]
	if e.answeredThisSession[question.ID] {
		return
	}

	if _, err := e.resolveQuestionLocked(question, false, false); err != nil {
		e.reporter.ReportError("timer expiry "+string(e.path), err, SeverityError)
	}
}
