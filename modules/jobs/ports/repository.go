package ports

import (
	"context"
	"time"

	"github.com/yamada-labo/prospectline/modules/jobs/model"
)

// JobRegistry is the storage port for the async job lifecycle. Entries
// are expected to expire on their own (a TTL-backed implementation),
// since nothing ever explicitly deletes a finished job.
type JobRegistry interface {
	Create(ctx context.Context, job *model.Job, ttl time.Duration) error
	Get(ctx context.Context, jobID string) (*model.Job, error)
	Update(ctx context.Context, job *model.Job, ttl time.Duration) error
}
