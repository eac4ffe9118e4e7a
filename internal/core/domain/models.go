package domain

import (
	"fmt"
	"math/big"
	"time"
)

// ProgressEvent is a snapshot of a running search, emitted once every
// logInterval attempts and once at termination.
type ProgressEvent struct {
	Attempts       *big.Int
	TotalSpace     *big.Int
	Percent        float64
	Elapsed        time.Duration
	AttemptsPerSec float64 // 0 while Elapsed is still zero
	LastPassword   string
	Final          bool
}

// SearchOutcome is the terminal result of one search. It is produced exactly
// once, at the single exit point of the engine, and never mutated afterward.
type SearchOutcome struct {
	Status   SearchStatus // FOUND, EXHAUSTED or CANCELLED
	Password string       // set only when Status == FOUND
	Attempts *big.Int
	Elapsed  time.Duration
}

type SearchSettings struct {
	LogInterval int64
	OnProgress  func(ProgressEvent)
}

type RecoveryJob struct {
	ID              string
	Document        string
	Status          SearchStatus
	StartTime       time.Time
	EndTime         time.Time
	Outcome         *SearchOutcome
	ResourceMetrics ResourceMetrics
	ErrorMessage    string
}

type ResourceMetrics struct {
	CPUUsage       float64
	MemoryUsageMB  int64
	AttemptsPerSec int64
	TotalAttempts  int64
	LastUpdated    time.Time
}

// OracleError wraps a failure signalled by the unlock oracle that is not a
// plain wrong-password result. Attempts carries the progress made before the
// abort so the caller can resume with an adjusted alphabet or offset.
type OracleError struct {
	Attempts *big.Int
	Err      error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle failure after %s attempts: %v", e.Attempts, e.Err)
}

func (e *OracleError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrOracleFailure) work for wrapped oracle failures.
func (e *OracleError) Is(target error) bool {
	return target == ErrOracleFailure
}
