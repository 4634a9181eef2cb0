package ports

import (
	"context"

	"github.com/yamada-labo/prospectline/modules/jobs/model"
)

// Runner executes the search -> cleanse -> scrape -> save pipeline for a
// job that has just been accepted. It is expected to report progress back
// through the JobService itself rather than return a result synchronously.
type Runner interface {
	Run(ctx context.Context, job *model.Job)
}
