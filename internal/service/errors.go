package service

import (
	"errors"
	"log"
)

// Rejection errors for invalid operations. These are returned synchronously
// with no state mutation having occurred.
var (
	ErrNoActiveSession       = errors.New("no active game session")
	ErrSessionPaused         = errors.New("session is paused")
	ErrPathCompleted         = errors.New("path is already completed")
	ErrAlreadyAnswered       = errors.New("question already answered this session")
	ErrInsufficientInventory = errors.New("power-up not available")
	ErrLivesAtMax            = errors.New("lives already at maximum")
	ErrUnknownPowerUp        = errors.New("unknown power-up kind")
	ErrNoQuestions           = errors.New("no eligible questions available")
	ErrPathLocked            = errors.New("path is already being played")
	ErrInvalidPath           = errors.New("unknown path type")
)

// Severity levels for error reports
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// ErrorReporter is the error/telemetry sink. Implementations are
// fire-and-forget and must never panic.
type ErrorReporter interface {
	ReportError(context string, err error, severity string)
}

// LogReporter reports errors to the standard logger
type LogReporter struct{}

// NewLogReporter creates a log-backed error reporter
func NewLogReporter() *LogReporter {
	return &LogReporter{}
}

func (r *LogReporter) ReportError(context string, err error, severity string) {
	log.Printf("[%s] %s: %v", severity, context, err)
}
