package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docCrackerBackend/internal/core/alphabet"
	"docCrackerBackend/internal/core/domain"
	"docCrackerBackend/internal/core/search"
	"docCrackerBackend/internal/pkg/metrics"
	"docCrackerBackend/internal/port"
)

const MetricsUpdateInterval = time.Second

// RecoveryService runs password searches as asynchronous jobs: one engine
// per job, resource metrics sampled while the job is live, progress logged
// and journaled. Jobs are held in memory only; the core owns no persisted
// state.
type RecoveryService struct {
	oracle   port.UnlockOracle
	metrics  *metrics.Collector
	reporter *metrics.Reporter
	log      *zap.SugaredLogger
	mu       sync.Mutex
	jobs     map[string]*recoveryJob
}

type recoveryJob struct {
	job    *domain.RecoveryJob
	cancel context.CancelFunc
	done   chan struct{}
}

func NewRecoveryService(oracle port.UnlockOracle, logger *zap.Logger, reporter *metrics.Reporter) *RecoveryService {
	return &RecoveryService{
		oracle:   oracle,
		metrics:  metrics.NewCollector(MetricsUpdateInterval),
		reporter: reporter,
		log:      logger.Sugar(),
		jobs:     make(map[string]*recoveryJob),
	}
}

// StartRecovery validates the candidate list, registers a job and launches
// the search in the background. InvalidAlphabet is detected here, before any
// attempt is made.
func (s *RecoveryService) StartRecovery(ctx context.Context, doc port.DocumentHandle, list alphabet.CandidateList, settings domain.SearchSettings) (*domain.RecoveryJob, error) {
	if _, err := list.Normalize(); err != nil {
		return nil, err
	}

	job := &domain.RecoveryJob{
		ID:        uuid.NewString(),
		Document:  fmt.Sprintf("%v", doc),
		Status:    domain.StatusRunning,
		StartTime: time.Now(),
	}

	jobCtx, cancel := context.WithCancel(ctx)
	active := &recoveryJob{
		job:    job,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	s.jobs[job.ID] = active
	s.mu.Unlock()

	s.metrics.StartCollection(job.ID)

	go s.runSearch(jobCtx, active, doc, list, settings)

	return s.snapshot(job.ID)
}

func (s *RecoveryService) runSearch(ctx context.Context, active *recoveryJob, doc port.DocumentHandle, list alphabet.CandidateList, settings domain.SearchSettings) {
	defer close(active.done)
	defer s.metrics.StopCollection(active.job.ID)

	jobID := active.job.ID
	userProgress := settings.OnProgress
	settings.OnProgress = func(event domain.ProgressEvent) {
		s.metrics.UpdateAttempts(jobID, event)
		if s.reporter != nil {
			s.reporter.Record(jobID, event)
		}
		s.logProgress(jobID, event)
		if userProgress != nil {
			userProgress(event)
		}
	}

	engine := search.NewEngine(s.oracle)
	engine.SetSettings(settings)

	outcome, err := engine.Run(ctx, doc, list)

	s.mu.Lock()
	defer s.mu.Unlock()

	active.job.EndTime = time.Now()
	if err != nil {
		active.job.Status = domain.StatusFailed
		active.job.ErrorMessage = err.Error()
		s.log.Errorw("recovery aborted", "job", jobID, "error", err)
		return
	}

	active.job.Status = outcome.Status
	active.job.Outcome = outcome
	if m, ok := s.metrics.GetMetrics(jobID); ok {
		active.job.ResourceMetrics = m
	}

	switch outcome.Status {
	case domain.StatusFound:
		s.log.Infow("password found",
			"job", jobID,
			"password", outcome.Password,
			"attempts", search.HumanReadableBig(outcome.Attempts, 0),
			"elapsed", outcome.Elapsed,
		)
	case domain.StatusExhausted:
		s.log.Infow("search space exhausted",
			"job", jobID,
			"attempts", search.HumanReadableBig(outcome.Attempts, 0),
			"elapsed", outcome.Elapsed,
		)
	case domain.StatusCancelled:
		s.log.Infow("recovery cancelled",
			"job", jobID,
			"attempts", search.HumanReadableBig(outcome.Attempts, 0),
			"elapsed", outcome.Elapsed,
		)
	}
}

func (s *RecoveryService) logProgress(jobID string, event domain.ProgressEvent) {
	if event.Final {
		return
	}
	s.log.Infof("job %s: tried %s (%.1f%%) of %s passwords in %.3f seconds (%s passwords/sec), latest %q",
		jobID,
		search.HumanReadableBig(event.Attempts, 0),
		event.Percent,
		search.HumanReadableBig(event.TotalSpace, 0),
		event.Elapsed.Seconds(),
		search.HumanReadableNumber(event.AttemptsPerSec, 0),
		event.LastPassword,
	)
}

// GetJob returns a copy of the job's current state.
func (s *RecoveryService) GetJob(jobID string) (*domain.RecoveryJob, error) {
	return s.snapshot(jobID)
}

// StopRecovery requests cooperative cancellation. The engine observes it
// once per candidate; the job settles into CANCELLED shortly after.
func (s *RecoveryService) StopRecovery(jobID string) error {
	s.mu.Lock()
	active, exists := s.jobs[jobID]
	s.mu.Unlock()
	if !exists {
		return domain.ErrJobNotFound
	}

	active.cancel()
	return nil
}

// AwaitOutcome blocks until the job terminates or ctx expires.
func (s *RecoveryService) AwaitOutcome(ctx context.Context, jobID string) (*domain.SearchOutcome, error) {
	s.mu.Lock()
	active, exists := s.jobs[jobID]
	s.mu.Unlock()
	if !exists {
		return nil, domain.ErrJobNotFound
	}

	select {
	case <-active.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if active.job.Status == domain.StatusFailed {
		return nil, fmt.Errorf("recovery failed: %s", active.job.ErrorMessage)
	}
	outcome := *active.job.Outcome
	return &outcome, nil
}

func (s *RecoveryService) snapshot(jobID string) (*domain.RecoveryJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, exists := s.jobs[jobID]
	if !exists {
		return nil, domain.ErrJobNotFound
	}
	copied := *active.job
	return &copied, nil
}
