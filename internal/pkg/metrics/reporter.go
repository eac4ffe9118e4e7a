package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"docCrackerBackend/internal/core/domain"
)

// Reporter journals progress events per job and flushes them to a JSON log
// file, so a long search leaves an inspectable trail of its intervals.
type Reporter struct {
	mu      sync.Mutex
	logFile *os.File
	events  map[string][]reportEntry
}

type reportEntry struct {
	Timestamp      time.Time `json:"timestamp"`
	Attempts       string    `json:"attempts"`
	Percent        float64   `json:"percent"`
	ElapsedSeconds float64   `json:"elapsedSeconds"`
	AttemptsPerSec float64   `json:"attemptsPerSec"`
	LastPassword   string    `json:"lastPassword,omitempty"`
	Final          bool      `json:"final,omitempty"`
}

func NewReporter(logPath string) (*Reporter, error) {
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	return &Reporter{
		logFile: file,
		events:  make(map[string][]reportEntry),
	}, nil
}

func (r *Reporter) Record(jobID string, event domain.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events[jobID] = append(r.events[jobID], reportEntry{
		Timestamp:      time.Now(),
		Attempts:       event.Attempts.String(),
		Percent:        event.Percent,
		ElapsedSeconds: event.Elapsed.Seconds(),
		AttemptsPerSec: event.AttemptsPerSec,
		LastPassword:   event.LastPassword,
		Final:          event.Final,
	})
}

func (r *Reporter) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.events) == 0 {
		return nil
	}

	data, err := json.MarshalIndent(r.events, "", "  ")
	if err != nil {
		return err
	}

	if _, err := r.logFile.Write(append(data, '\n')); err != nil {
		return err
	}

	r.events = make(map[string][]reportEntry)
	return nil
}

func (r *Reporter) Close() error {
	if err := r.Flush(); err != nil {
		return fmt.Errorf("failed to flush progress journal: %w", err)
	}
	return r.logFile.Close()
}
