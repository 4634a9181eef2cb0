package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yamada-labo/prospectline/modules/jobs/model"
	"github.com/yamada-labo/prospectline/modules/jobs/ports"
)

// DefaultTTL is how long a finished job's status stays pollable before
// Redis reclaims the key.
const DefaultTTL = 24 * time.Hour

// JobService owns job lifecycle transitions. It has no opinion on what
// actually performs the search/scrape/save work — callers (the pipeline
// round controller) report progress back through this service.
type JobService struct {
	repo ports.JobRegistry
	ttl  time.Duration
}

// NewJobService creates a new job service.
func NewJobService(repo ports.JobRegistry, ttl time.Duration) *JobService {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JobService{repo: repo, ttl: ttl}
}

// Create registers a new pending job for the given keyword and target count.
func (s *JobService) Create(ctx context.Context, keyword string, targetCount int) (*model.Job, error) {
	keyword = strings.TrimSpace(keyword)
	if targetCount <= 0 {
		return nil, model.ErrInvalidTargetCount
	}

	job := model.New(uuid.New().String(), keyword, targetCount)
	if err := s.repo.Create(ctx, job, s.ttl); err != nil {
		return nil, err
	}
	return job, nil
}

// Get retrieves a job by id.
func (s *JobService) Get(ctx context.Context, jobID string) (*model.Job, error) {
	return s.repo.Get(ctx, jobID)
}

// Transition moves a job to a new status with an optional progress
// percentage and human-readable message, rejecting backward transitions.
func (s *JobService) Transition(ctx context.Context, jobID string, status model.Status, progress int, message string) error {
	job, err := s.repo.Get(ctx, jobID)
	if err != nil {
		return err
	}

	if !model.CanTransition(job.Status, status) {
		return model.ErrInvalidTransition
	}

	job.Status = status
	job.Progress = progress
	job.Message = message
	job.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, job, s.ttl)
}

// UpdateProgress refreshes a job's progress percentage and message without
// changing its status, for reporting incremental work within a single
// long-running phase (e.g. successive search rounds while still searching).
func (s *JobService) UpdateProgress(ctx context.Context, jobID string, progress int, message string) error {
	job, err := s.repo.Get(ctx, jobID)
	if err != nil {
		return err
	}
	job.Progress = progress
	job.Message = message
	job.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, job, s.ttl)
}

// SetQueriesInitial records the initial query pool generated for the job,
// kept for diagnostics when a run under-delivers.
func (s *JobService) SetQueriesInitial(ctx context.Context, jobID string, queries []string) error {
	job, err := s.repo.Get(ctx, jobID)
	if err != nil {
		return err
	}
	job.QueriesInitial = queries
	job.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, job, s.ttl)
}

// Complete marks a job as completed with its final result metadata.
func (s *JobService) Complete(ctx context.Context, jobID string, resultCount int, spreadsheetURL, csvArtifactKey, docxArtifactKey string) error {
	job, err := s.repo.Get(ctx, jobID)
	if err != nil {
		return err
	}
	if !model.CanTransition(job.Status, model.StatusCompleted) {
		return model.ErrInvalidTransition
	}

	job.Status = model.StatusCompleted
	job.Progress = 100
	job.ResultCount = resultCount
	job.SpreadsheetURL = spreadsheetURL
	job.CSVArtifactKey = csvArtifactKey
	job.DOCXArtifactKey = docxArtifactKey
	job.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, job, s.ttl)
}

// Fail marks a job as failed, regardless of its current status, unless it
// already reached a terminal state.
func (s *JobService) Fail(ctx context.Context, jobID string, cause error) error {
	job, err := s.repo.Get(ctx, jobID)
	if err != nil {
		return err
	}
	if !model.CanTransition(job.Status, model.StatusFailed) {
		return model.ErrInvalidTransition
	}

	job.Status = model.StatusFailed
	job.Error = cause.Error()
	job.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, job, s.ttl)
}
