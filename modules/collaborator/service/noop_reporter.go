package service

import (
	"context"

	scrapermodel "github.com/yamada-labo/prospectline/modules/scraper/model"
)

// NoopReporter discards every event. Used when no chat or email channel
// was configured for a job.
type NoopReporter struct{}

func (NoopReporter) OnStatus(context.Context, string, int, string)                              {}
func (NoopReporter) OnFinal(context.Context, []*scrapermodel.EnrichedRecord, []byte, string)     {}
func (NoopReporter) OnError(context.Context, string)                                             {}
