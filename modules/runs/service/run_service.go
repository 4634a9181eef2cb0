package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yamada-labo/prospectline/modules/runs/model"
	"github.com/yamada-labo/prospectline/modules/runs/ports"
	"go.uber.org/zap"
)

// RunService records the outcome of every pipeline execution and serves
// the read-only audit log.
type RunService struct {
	repo ports.RunRepository
	log  *zap.Logger
}

// NewRunService creates a new run audit service.
func NewRunService(repo ports.RunRepository, log *zap.Logger) *RunService {
	return &RunService{repo: repo, log: log}
}

// RecordCompleted writes an audit entry for a successfully finished run.
// Failures to persist are logged, not propagated — the audit log must
// never hold up or fail the pipeline it is observing.
func (s *RunService) RecordCompleted(ctx context.Context, jobID, keyword string, targetCount, resultCount int, spreadsheetURL string, startedAt, finishedAt time.Time) {
	run := model.NewCompleted(uuid.New().String(), jobID, keyword, targetCount, resultCount, spreadsheetURL, startedAt, finishedAt)
	if err := s.repo.Create(ctx, run); err != nil {
		s.log.Warn("failed to record completed run", zap.String("job_id", jobID), zap.Error(err))
	}
}

// RecordFailed writes an audit entry for a failed run.
func (s *RunService) RecordFailed(ctx context.Context, jobID, keyword string, targetCount int, errorMessage string, startedAt, finishedAt time.Time) {
	run := model.NewFailed(uuid.New().String(), jobID, keyword, targetCount, errorMessage, startedAt, finishedAt)
	if err := s.repo.Create(ctx, run); err != nil {
		s.log.Warn("failed to record failed run", zap.String("job_id", jobID), zap.Error(err))
	}
}

// List returns a page of the audit log, newest-finished first.
func (s *RunService) List(ctx context.Context, opts *ports.ListOptions) ([]*model.Run, int, error) {
	return s.repo.List(ctx, opts)
}
