package service

import (
	"sync"

	"pawquest/internal/models"
)

// GameManager owns the single active progression engine. Starting a path
// acquires its play lock; starting a new one ends the previous session
// first, flushing its state. All accessors hand out the live engine so
// handlers never hold a stale reference across a restart.
type GameManager struct {
	mu sync.Mutex

	store    *StateStore
	pool     *QuestionPool
	emitter  *EventEmitter
	reporter ErrorReporter
	opts     EngineOptions

	engine *ProgressionEngine
	path   models.PathType
}

// NewGameManager creates a manager with no active session
func NewGameManager(store *StateStore, pool *QuestionPool, emitter *EventEmitter, reporter ErrorReporter, opts EngineOptions) *GameManager {
	return &GameManager{
		store:    store,
		pool:     pool,
		emitter:  emitter,
		reporter: reporter,
		opts:     opts,
	}
}

// StartPath ends any active session and starts a new one on the given path.
// The path's play lock is held for the life of the session.
func (m *GameManager) StartPath(path models.PathType, startFrom *models.Checkpoint) (*models.GameSession, error) {
	if !path.IsValid() {
		return nil, ErrInvalidPath
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.engine != nil {
		if err := m.closeActiveLocked(); err != nil {
			return nil, err
		}
	}

	if !m.store.AcquireLock(path) {
		return nil, ErrPathLocked
	}

	engine := NewProgressionEngine(m.store, m.pool, NewTimerController(), m.emitter, m.reporter, m.opts)
	session, err := engine.InitializePath(path, startFrom)
	if err != nil {
		m.store.ReleaseLock(path)
		return nil, err
	}

	m.engine = engine
	m.path = path
	return session, nil
}

// Active returns the live engine, or ErrNoActiveSession
func (m *GameManager) Active() (*ProgressionEngine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.engine == nil {
		return nil, ErrNoActiveSession
	}
	return m.engine, nil
}

// ExitSession ends the active session, flushing its state synchronously
func (m *GameManager) ExitSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.engine == nil {
		return ErrNoActiveSession
	}
	return m.closeActiveLocked()
}

// closeActiveLocked closes the engine and releases the path lock. Caller
// holds the lock.
func (m *GameManager) closeActiveLocked() error {
	err := m.engine.Close()
	m.store.ReleaseLock(m.path)
	m.engine = nil
	if err != nil {
		m.reporter.ReportError("exit session "+string(m.path), err, SeverityError)
	}
	return err
}

// Shutdown pauses and flushes the active session. Called when the process
// is about to stop; the session can be resumed on the next start from the
// persisted progress.
func (m *GameManager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.engine == nil {
		return nil
	}
	_ = m.engine.Pause()
	return m.closeActiveLocked()
}
