package service

import (
	"context"

	"docCrackerBackend/internal/core/alphabet"
	"docCrackerBackend/internal/core/domain"
	"docCrackerBackend/internal/port"
)

type RecoveryServiceInterface interface {
	StartRecovery(ctx context.Context, doc port.DocumentHandle, list alphabet.CandidateList, settings domain.SearchSettings) (*domain.RecoveryJob, error)
	GetJob(jobID string) (*domain.RecoveryJob, error)
	StopRecovery(jobID string) error
	AwaitOutcome(ctx context.Context, jobID string) (*domain.SearchOutcome, error)
}
