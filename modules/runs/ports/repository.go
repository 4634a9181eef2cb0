package ports

import (
	"context"

	"github.com/yamada-labo/prospectline/modules/runs/model"
)

// ListOptions controls pagination over the run audit log.
type ListOptions struct {
	Limit  int
	Offset int
}

// RunRepository persists one audit entry per finished pipeline execution.
type RunRepository interface {
	Create(ctx context.Context, run *model.Run) error
	List(ctx context.Context, opts *ListOptions) ([]*model.Run, int, error)
}
