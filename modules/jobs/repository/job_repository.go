package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yamada-labo/prospectline/modules/jobs/model"
)

const keyPrefix = "job:"

// JobRepository stores jobs as Redis hashes under job:<id>, relying on
// Redis' own EXPIRE for eviction instead of a sweep goroutine. Every write
// re-arms the expiry, so a job is evicted ttl after its last update, not
// ttl after created_at.
type JobRepository struct {
	client *redis.Client
}

// NewJobRepository creates a new Redis-backed job repository.
func NewJobRepository(client *redis.Client) *JobRepository {
	return &JobRepository{client: client}
}

func key(jobID string) string {
	return keyPrefix + jobID
}

// Create stores a newly-created job with the given TTL.
func (r *JobRepository) Create(ctx context.Context, job *model.Job, ttl time.Duration) error {
	return r.set(ctx, job, ttl)
}

// Get loads a job, returning model.ErrJobNotFound if it has expired or
// never existed.
func (r *JobRepository) Get(ctx context.Context, jobID string) (*model.Job, error) {
	fields, err := r.client.HGetAll(ctx, key(jobID)).Result()
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	if len(fields) == 0 {
		return nil, model.ErrJobNotFound
	}
	return fieldsToJob(fields)
}

// Update overwrites the stored job and refreshes its TTL.
func (r *JobRepository) Update(ctx context.Context, job *model.Job, ttl time.Duration) error {
	return r.set(ctx, job, ttl)
}

func (r *JobRepository) set(ctx context.Context, job *model.Job, ttl time.Duration) error {
	fields, err := jobToFields(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key(job.ID), fields)
	pipe.Expire(ctx, key(job.ID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("set job: %w", err)
	}
	return nil
}

// jobToFields flattens a Job into Redis hash fields. QueriesInitial is
// JSON-encoded since a hash field is a flat string.
func jobToFields(job *model.Job) (map[string]any, error) {
	queries, err := json.Marshal(job.QueriesInitial)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"id":                job.ID,
		"keyword":           job.Keyword,
		"target_count":      strconv.Itoa(job.TargetCount),
		"queries_initial":   string(queries),
		"status":            string(job.Status),
		"progress":          strconv.Itoa(job.Progress),
		"message":           job.Message,
		"error":             job.Error,
		"result_count":      strconv.Itoa(job.ResultCount),
		"spreadsheet_url":   job.SpreadsheetURL,
		"csv_artifact_key":  job.CSVArtifactKey,
		"docx_artifact_key": job.DOCXArtifactKey,
		"created_at":        job.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":        job.UpdatedAt.Format(time.RFC3339Nano),
	}, nil
}

func fieldsToJob(fields map[string]string) (*model.Job, error) {
	job := &model.Job{
		ID:              fields["id"],
		Keyword:         fields["keyword"],
		Status:          model.Status(fields["status"]),
		Message:         fields["message"],
		Error:           fields["error"],
		SpreadsheetURL:  fields["spreadsheet_url"],
		CSVArtifactKey:  fields["csv_artifact_key"],
		DOCXArtifactKey: fields["docx_artifact_key"],
	}

	if v := fields["target_count"]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse target_count: %w", err)
		}
		job.TargetCount = n
	}
	if v := fields["progress"]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse progress: %w", err)
		}
		job.Progress = n
	}
	if v := fields["result_count"]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse result_count: %w", err)
		}
		job.ResultCount = n
	}
	if v := fields["queries_initial"]; v != "" {
		if err := json.Unmarshal([]byte(v), &job.QueriesInitial); err != nil {
			return nil, fmt.Errorf("parse queries_initial: %w", err)
		}
	}
	if v := fields["created_at"]; v != "" {
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		job.CreatedAt = t
	}
	if v := fields["updated_at"]; v != "" {
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, fmt.Errorf("parse updated_at: %w", err)
		}
		job.UpdatedAt = t
	}

	return job, nil
}
