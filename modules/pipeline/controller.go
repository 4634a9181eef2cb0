// Package pipeline wires the query pool, search aggregator, cleanser, and
// scraper into the round-based controller that a job's Runner invokes.
package pipeline

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	cleansermodel "github.com/yamada-labo/prospectline/modules/cleanser/model"
	cleanserservice "github.com/yamada-labo/prospectline/modules/cleanser/service"
	collaboratorports "github.com/yamada-labo/prospectline/modules/collaborator/ports"
	collaboratorservice "github.com/yamada-labo/prospectline/modules/collaborator/service"
	"github.com/yamada-labo/prospectline/internal/platform/sentry"
	jobmodel "github.com/yamada-labo/prospectline/modules/jobs/model"
	jobservice "github.com/yamada-labo/prospectline/modules/jobs/service"
	"github.com/yamada-labo/prospectline/modules/querypool"
	runsservice "github.com/yamada-labo/prospectline/modules/runs/service"
	scrapermodel "github.com/yamada-labo/prospectline/modules/scraper/model"
	scraperservice "github.com/yamada-labo/prospectline/modules/scraper/service"
	searchservice "github.com/yamada-labo/prospectline/modules/search/service"
	"go.uber.org/zap"
)

// overbookFactor buffers the round loop's accumulation target above the
// caller's requested count, to leave room for post-scrape rejection.
const overbookFactor = 1.15

// minRetryBudget floors the dynamic retry-round budget regardless of how
// small the target count is.
const minRetryBudget = 3

// Controller runs the search -> cleanse -> merge -> scrape -> save loop
// for one job and reports its progress back through JobService. It
// implements jobs/ports.Runner.
type Controller struct {
	jobs       *jobservice.JobService
	aggregator *searchservice.Aggregator
	cleanser   *cleanserservice.Cleanser
	scraper    *scraperservice.Scraper
	domains    collaboratorports.ExistingDomainSource
	sink       collaboratorports.ResultSink
	reporter   collaboratorports.ProgressReporter
	mirror     *collaboratorservice.ArtifactMirror
	runs       *runsservice.RunService
	log        *zap.Logger
}

// New builds a round controller. reporter may be collaboratorservice.NoopReporter{}.
func New(
	jobs *jobservice.JobService,
	aggregator *searchservice.Aggregator,
	cleanser *cleanserservice.Cleanser,
	scraper *scraperservice.Scraper,
	domains collaboratorports.ExistingDomainSource,
	sink collaboratorports.ResultSink,
	reporter collaboratorports.ProgressReporter,
	mirror *collaboratorservice.ArtifactMirror,
	runs *runsservice.RunService,
	log *zap.Logger,
) *Controller {
	return &Controller{
		jobs:       jobs,
		aggregator: aggregator,
		cleanser:   cleanser,
		scraper:    scraper,
		domains:    domains,
		sink:       sink,
		reporter:   reporter,
		mirror:     mirror,
		runs:       runs,
		log:        log,
	}
}

// Run drives one job end to end. It never returns an error: every failure
// path reports through JobService.Fail and the reporter, then returns.
func (c *Controller) Run(ctx context.Context, job *jobmodel.Job) {
	log := c.log
	if log != nil {
		log = log.With(zap.String("job_id", job.ID), zap.String("keyword", job.Keyword))
	}

	startedAt := time.Now().UTC()

	defer func() {
		if r := recover(); r != nil {
			if log != nil {
				log.Error("pipeline panicked", zap.Any("recovered", r))
			}
			sentry.Recover(r)
			c.fail(ctx, job.ID, job.Keyword, job.TargetCount, startedAt, "予期しないエラーが発生しました")
		}
	}()

	c.transition(ctx, job.ID, jobmodel.StatusSearching, 5, "既存データを確認中")
	c.reportStatus(ctx, "searching", 5, "既存データを確認中")

	existingDomains, err := c.domains.GetExistingDomains(ctx)
	if err != nil {
		// ExistingDomainSource implementations are expected to swallow
		// their own failures and return an empty set; this branch only
		// protects against a misbehaving implementation.
		existingDomains = map[string]struct{}{}
	}

	seenDomains := make(map[string]struct{}, len(existingDomains))
	for d := range existingDomains {
		seenDomains[d] = struct{}{}
	}
	seenNames := make(map[string]struct{})

	bufferedTarget := int(math.Ceil(float64(job.TargetCount) * overbookFactor))
	maxRetries := job.TargetCount / 10
	if maxRetries < minRetryBudget {
		maxRetries = minRetryBudget
	}

	pool := querypool.New(job.Keyword)
	var accumulated []*cleansermodel.Cleansed

	for round := 0; round <= maxRetries; round++ {
		queries := c.roundQueries(pool, job.Keyword, round)

		remaining := bufferedTarget - len(accumulated)
		searchTarget := remaining
		pagesPerQuery := 2
		if round >= 1 {
			searchTarget *= 2
			pagesPerQuery = 1
		}

		progress := 10 + (round*60)/(maxRetries+1)
		c.updateProgress(ctx, job.ID, progress, "検索中")
		c.reportStatus(ctx, "searching", progress, "検索中")

		candidates := c.aggregator.Search(ctx, queries, searchTarget, seenDomains, pagesPerQuery)
		if len(candidates) == 0 {
			break
		}

		cleansed := c.cleanser.Cleanse(ctx, candidates, job.Keyword, domainKeys(seenDomains))

		added := 0
		for _, item := range cleansed {
			if item.Domain == "" {
				continue
			}
			if _, exists := seenDomains[item.Domain]; exists {
				continue
			}
			name := cleanserservice.NormalizeCompanyName(item.CompanyName)
			if name != "" {
				if _, exists := seenNames[name]; exists {
					continue
				}
			}
			seenDomains[item.Domain] = struct{}{}
			if name != "" {
				seenNames[name] = struct{}{}
			}
			accumulated = append(accumulated, item)
			added++
		}

		if log != nil {
			log.Info("round complete",
				zap.Int("round", round), zap.Int("added", added), zap.Int("accumulated", len(accumulated)))
		}

		if len(accumulated) >= bufferedTarget {
			break
		}
		if round == maxRetries {
			break
		}
		if added == 0 {
			break
		}
		if len(accumulated) >= int(0.8*float64(bufferedTarget)) && added < 3 {
			break
		}
	}

	if len(accumulated) == 0 {
		c.fail(ctx, job.ID, job.Keyword, job.TargetCount, startedAt, "検索結果が0件でした")
		return
	}

	if len(accumulated) > bufferedTarget {
		accumulated = accumulated[:bufferedTarget]
	}

	c.transition(ctx, job.ID, jobmodel.StatusScraping, 75, "企業サイトを調査中")
	c.reportStatus(ctx, "scraping", 75, "企業サイトを調査中")

	scraped := c.scraper.Scrape(ctx, accumulated)

	results := make([]*scrapermodel.EnrichedRecord, 0, len(scraped))
	for _, r := range scraped {
		if r.ErrorKind == scrapermodel.ErrorKindOK {
			results = append(results, r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].HasContact() && !results[j].HasContact()
	})

	if len(results) > job.TargetCount {
		results = results[:job.TargetCount]
	}

	results = postScrapeCleanse(results)

	c.transition(ctx, job.ID, jobmodel.StatusSaving, 90, "保存中")
	c.reportStatus(ctx, "saving", 90, "保存中")

	spreadsheetURL := ""
	saveResult, err := c.sink.Save(ctx, results, job.Keyword)
	if err != nil {
		if log != nil {
			log.Warn("result sink save failed, returning records without a spreadsheet url", zap.Error(err))
		}
	} else {
		spreadsheetURL = saveResult.SpreadsheetURL
	}

	csvArtifact, err := collaboratorservice.BuildCSV(results)
	if err != nil && log != nil {
		log.Warn("csv artifact build failed", zap.Error(err))
	}
	csvKey := c.mirror.Mirror(ctx, collaboratorservice.CSVKey(job.ID), csvArtifact, "text/csv")

	docxArtifact, err := collaboratorservice.BuildDOCX(job.Keyword, results)
	if err != nil && log != nil {
		log.Warn("docx artifact build failed", zap.Error(err))
	}
	docxKey := c.mirror.Mirror(ctx, collaboratorservice.DOCXKey(job.ID), docxArtifact, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")

	if err := c.jobs.Complete(ctx, job.ID, len(results), spreadsheetURL, csvKey, docxKey); err != nil && log != nil {
		log.Error("failed to mark job completed", zap.Error(err))
	}

	if c.runs != nil {
		c.runs.RecordCompleted(ctx, job.ID, job.Keyword, job.TargetCount, len(results), spreadsheetURL, startedAt, time.Now().UTC())
	}

	c.reporter.OnFinal(ctx, results, csvArtifact, "result.csv")
}

// roundQueries picks the query batch for a round: round 0 uses the fixed
// initial-query generator, later rounds pull a shrinking batch from the
// shuffled cross-product pool.
func (c *Controller) roundQueries(pool *querypool.Pool, keyword string, round int) []string {
	if round == 0 {
		return querypool.InitialQueries(keyword)
	}
	batchSize := 20 - 2*round
	if batchSize < 8 {
		batchSize = 8
	}
	return pool.NextBatch(batchSize, nil)
}

func (c *Controller) transition(ctx context.Context, jobID string, status jobmodel.Status, progress int, message string) {
	if err := c.jobs.Transition(ctx, jobID, status, progress, message); err != nil && c.log != nil {
		c.log.Warn("job transition failed", zap.String("job_id", jobID), zap.Error(err))
	}
}

func (c *Controller) updateProgress(ctx context.Context, jobID string, progress int, message string) {
	if err := c.jobs.UpdateProgress(ctx, jobID, progress, message); err != nil && c.log != nil {
		c.log.Warn("job progress update failed", zap.String("job_id", jobID), zap.Error(err))
	}
}

func (c *Controller) reportStatus(ctx context.Context, status string, progress int, message string) {
	c.reporter.OnStatus(ctx, status, progress, message)
}

func (c *Controller) fail(ctx context.Context, jobID, keyword string, targetCount int, startedAt time.Time, message string) {
	if err := c.jobs.Fail(ctx, jobID, errors.New(message)); err != nil && c.log != nil {
		c.log.Warn("failed to mark job failed", zap.String("job_id", jobID), zap.Error(err))
	}
	if c.runs != nil {
		c.runs.RecordFailed(ctx, jobID, keyword, targetCount, message, startedAt, time.Now().UTC())
	}
	c.reporter.OnError(ctx, message)
}

func domainKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for d := range m {
		out = append(out, d)
	}
	return out
}

// postScrapeCleanse re-runs the deterministic normalizer and invalidity
// predicate against each surviving record's company name, dropping any
// that the LLM pass let through but a second, cheap pass catches.
func postScrapeCleanse(records []*scrapermodel.EnrichedRecord) []*scrapermodel.EnrichedRecord {
	out := make([]*scrapermodel.EnrichedRecord, 0, len(records))
	for _, r := range records {
		normalized := cleanserservice.NormalizeCompanyName(r.CompanyName)
		if normalized == "" || cleanserservice.IsInvalidCompanyName(normalized) {
			continue
		}
		r.CompanyName = normalized
		out = append(out, r)
	}
	return out
}
