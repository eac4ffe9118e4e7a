package search

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"docCrackerBackend/internal/core/alphabet"
	"docCrackerBackend/internal/core/domain"
	"docCrackerBackend/internal/port"
)

const DefaultLogInterval = 10000

// Engine enumerates the Cartesian product of the normalized alphabets in
// lexicographic order (leftmost position slowest) and feeds every candidate
// to the unlock oracle. One Engine value serves one search at a time; all
// progress state lives in the stack frame of Run, so independent searches
// may run concurrently on separate Engine values.
type Engine struct {
	oracle   port.UnlockOracle
	settings domain.SearchSettings
}

func NewEngine(oracle port.UnlockOracle) *Engine {
	return &Engine{
		oracle: oracle,
		settings: domain.SearchSettings{
			LogInterval: DefaultLogInterval,
		},
	}
}

func (e *Engine) SetSettings(settings domain.SearchSettings) {
	if settings.LogInterval <= 0 {
		settings.LogInterval = DefaultLogInterval
	}
	e.settings = settings
}

// SpaceSize is the total candidate count: the product of the per-position
// alphabet lengths. Arbitrary precision, so alphabet sizes times password
// length can exceed 64-bit range without wrapping.
func SpaceSize(alphabets [][]string) *big.Int {
	size := big.NewInt(1)
	for _, symbols := range alphabets {
		size.Mul(size, big.NewInt(int64(len(symbols))))
	}
	return size
}

// Int64Size downcasts a space size for callers that need a bounded counter,
// e.g. progress displays. Sizes beyond 64-bit range are reported as
// ErrSpaceOverflow instead of wrapping silently.
func Int64Size(size *big.Int) (int64, error) {
	if !size.IsInt64() {
		return 0, fmt.Errorf("%w: space size %s exceeds int64", domain.ErrSpaceOverflow, size)
	}
	return size.Int64(), nil
}

// Run performs one exhaustive search over the candidate list. It terminates
// with StatusFound as soon as the oracle matches, StatusExhausted after the
// last candidate, or StatusCancelled when ctx is cancelled. A failed guess is
// an expected outcome and never retried; any non-boolean oracle signal aborts
// the run with a *domain.OracleError carrying the attempts made so far.
func (e *Engine) Run(ctx context.Context, doc port.DocumentHandle, list alphabet.CandidateList) (*domain.SearchOutcome, error) {
	alphabets, err := list.Normalize()
	if err != nil {
		return nil, err
	}

	size := SpaceSize(alphabets)
	start := time.Now()
	attempts := new(big.Int)

	if size.Sign() == 0 {
		return e.finish(domain.StatusExhausted, "", attempts, size, start), nil
	}

	// Odometer over the alphabet indices: the last position ticks fastest,
	// carries propagate left. This yields standard Cartesian-product order
	// matching left-to-right positional concatenation.
	indices := make([]int, len(alphabets))
	one := big.NewInt(1)
	var sinceLog int64

	for {
		password := assemble(alphabets, indices)

		ok, err := e.oracle.TryUnlock(doc, password)
		if err != nil {
			return nil, &domain.OracleError{Attempts: attempts, Err: err}
		}
		if ok {
			return e.finish(domain.StatusFound, password, attempts.Add(attempts, one), size, start), nil
		}

		attempts.Add(attempts, one)

		select {
		case <-ctx.Done():
			return e.finish(domain.StatusCancelled, "", attempts, size, start), nil
		default:
		}

		sinceLog++
		if sinceLog == e.settings.LogInterval {
			sinceLog = 0
			e.emit(attempts, size, start, password, false)
		}

		if !advance(indices, alphabets) {
			return e.finish(domain.StatusExhausted, "", attempts, size, start), nil
		}
	}
}

func assemble(alphabets [][]string, indices []int) string {
	var b strings.Builder
	for pos, idx := range indices {
		b.WriteString(alphabets[pos][idx])
	}
	return b.String()
}

// advance ticks the odometer once. It reports false when every position has
// wrapped, i.e. the space is exhausted.
func advance(indices []int, alphabets [][]string) bool {
	for pos := len(indices) - 1; pos >= 0; pos-- {
		indices[pos]++
		if indices[pos] < len(alphabets[pos]) {
			return true
		}
		indices[pos] = 0
	}
	return false
}

func (e *Engine) finish(status domain.SearchStatus, password string, attempts, size *big.Int, start time.Time) *domain.SearchOutcome {
	e.emit(attempts, size, start, password, true)
	return &domain.SearchOutcome{
		Status:   status,
		Password: password,
		Attempts: new(big.Int).Set(attempts),
		Elapsed:  time.Since(start),
	}
}

func (e *Engine) emit(attempts, size *big.Int, start time.Time, lastPassword string, final bool) {
	if e.settings.OnProgress == nil {
		return
	}

	elapsed := time.Since(start)
	event := domain.ProgressEvent{
		Attempts:     new(big.Int).Set(attempts),
		TotalSpace:   new(big.Int).Set(size),
		Percent:      percentOf(attempts, size),
		Elapsed:      elapsed,
		LastPassword: lastPassword,
		Final:        final,
	}
	// Guard the rate against a zero elapsed interval on the very first event.
	if secs := elapsed.Seconds(); secs > 0 {
		tried, _ := new(big.Float).SetInt(attempts).Float64()
		event.AttemptsPerSec = tried / secs
	}
	e.settings.OnProgress(event)
}

func percentOf(attempts, size *big.Int) float64 {
	if size.Sign() == 0 {
		return 100
	}
	ratio := new(big.Float).Quo(new(big.Float).SetInt(attempts), new(big.Float).SetInt(size))
	pct, _ := ratio.Float64()
	return pct * 100
}
