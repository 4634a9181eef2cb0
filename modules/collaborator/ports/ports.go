// Package ports declares the outbound capabilities the round controller
// leans on to find out what already exists and to hand off what it built.
package ports

import (
	"context"

	"github.com/yamada-labo/prospectline/modules/collaborator/model"
	scrapermodel "github.com/yamada-labo/prospectline/modules/scraper/model"
)

// ExistingDomainSource reports domains the caller has already collected,
// so a round doesn't re-surface them. A failing lookup is not fatal to
// the caller: it should be treated as an empty set.
type ExistingDomainSource interface {
	GetExistingDomains(ctx context.Context) (map[string]struct{}, error)
}

// ResultSink persists a finished batch of records somewhere durable and
// reports back where to find them.
type ResultSink interface {
	Save(ctx context.Context, records []*scrapermodel.EnrichedRecord, keyword string) (*model.SaveResult, error)
}

// ProgressReporter is an optional sink for human-facing status updates.
// The round controller calls it without a nil check; NoopReporter is the
// null object for jobs with no outward channel.
type ProgressReporter interface {
	OnStatus(ctx context.Context, status string, progress int, message string)
	OnFinal(ctx context.Context, records []*scrapermodel.EnrichedRecord, artifact []byte, artifactName string)
	OnError(ctx context.Context, message string)
}
