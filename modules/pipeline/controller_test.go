package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cleanserservice "github.com/yamada-labo/prospectline/modules/cleanser/service"
	collaboratormodel "github.com/yamada-labo/prospectline/modules/collaborator/model"
	collaboratorservice "github.com/yamada-labo/prospectline/modules/collaborator/service"
	jobmodel "github.com/yamada-labo/prospectline/modules/jobs/model"
	jobports "github.com/yamada-labo/prospectline/modules/jobs/ports"
	jobservice "github.com/yamada-labo/prospectline/modules/jobs/service"
	scrapermodel "github.com/yamada-labo/prospectline/modules/scraper/model"
	scraperservice "github.com/yamada-labo/prospectline/modules/scraper/service"
	searchmodel "github.com/yamada-labo/prospectline/modules/search/model"
	searchports "github.com/yamada-labo/prospectline/modules/search/ports"
	searchservice "github.com/yamada-labo/prospectline/modules/search/service"
)

// fakeRegistry is an in-memory jobs/ports.JobRegistry, mirroring the one
// used to unit-test JobService.
type fakeRegistry struct {
	mu   sync.Mutex
	jobs map[string]*jobmodel.Job
}

func newFakeRegistry() *fakeRegistry { return &fakeRegistry{jobs: make(map[string]*jobmodel.Job)} }

func (f *fakeRegistry) Create(_ context.Context, job *jobmodel.Job, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *job
	f.jobs[job.ID] = &clone
	return nil
}

func (f *fakeRegistry) Get(_ context.Context, jobID string) (*jobmodel.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[jobID]
	if !ok {
		return nil, jobmodel.ErrJobNotFound
	}
	clone := *job
	return &clone, nil
}

func (f *fakeRegistry) Update(_ context.Context, job *jobmodel.Job, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.jobs[job.ID]; !ok {
		return jobmodel.ErrJobNotFound
	}
	clone := *job
	f.jobs[job.ID] = &clone
	return nil
}

var _ jobports.JobRegistry = (*fakeRegistry)(nil)

// fakeSearchProvider returns one page of fixed, plausible results for any
// query and an empty page thereafter, so the aggregator's paging loop
// terminates naturally.
type fakeSearchProvider struct {
	sites []string
}

func (f *fakeSearchProvider) Search(_ context.Context, query string, page int) ([]searchports.RawResult, error) {
	if page > 1 {
		return nil, nil
	}
	out := make([]searchports.RawResult, 0, len(f.sites))
	for i, site := range f.sites {
		out = append(out, searchports.RawResult{
			Title:   fmt.Sprintf("株式会社サンプル%d ｜ 公式サイト", i),
			Link:    site,
			Snippet: "会社概要",
		})
	}
	return out, nil
}

// fakeChatCompleter answers every batch with an empty cleaned envelope,
// so no candidate survives cleansing; echoingChatCompleter is the fake
// that returns candidates.
type fakeChatCompleter struct{}

func (fakeChatCompleter) Complete(_ context.Context, _, userPrompt string, _ float64) (string, error) {
	return `{"cleaned_companies": [], "valid_count": 0, "excluded_count": 0}`, nil
}

type echoingChatCompleter struct {
	candidates map[string]*searchmodel.Candidate
}

func (e *echoingChatCompleter) Complete(_ context.Context, _, _ string, _ float64) (string, error) {
	companies := ""
	first := true
	for _, c := range e.candidates {
		if !first {
			companies += ","
		}
		first = false
		companies += fmt.Sprintf(`{"company_name": %q, "url": %q, "domain": %q, "relevance_score": 0.9}`,
			c.CompanyName, c.URL, c.Domain)
	}
	return fmt.Sprintf(`{"cleaned_companies": [%s], "valid_count": %d, "excluded_count": 0}`, companies, len(e.candidates)), nil
}

type fakeDomainSource struct{}

func (fakeDomainSource) GetExistingDomains(context.Context) (map[string]struct{}, error) {
	return map[string]struct{}{}, nil
}

type fakeSink struct {
	mu      sync.Mutex
	records []*scrapermodel.EnrichedRecord
	keyword string
}

func (f *fakeSink) Save(_ context.Context, records []*scrapermodel.EnrichedRecord, keyword string) (*collaboratormodel.SaveResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = records
	f.keyword = keyword
	return &collaboratormodel.SaveResult{SpreadsheetURL: "https://docs.google.com/spreadsheets/d/test"}, nil
}

type recordingReporter struct {
	mu       sync.Mutex
	statuses []string
	final    bool
	errored  bool
}

func (r *recordingReporter) OnStatus(_ context.Context, status string, _ int, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, status)
}

func (r *recordingReporter) OnFinal(_ context.Context, _ []*scrapermodel.EnrichedRecord, _ []byte, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.final = true
}

func (r *recordingReporter) OnError(_ context.Context, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errored = true
}

func TestController_Run_EndToEnd_CompletesJob(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.Write([]byte(`<html><head><title>株式会社サンプル</title></head>
				<body>TEL: 03-1234-5678 <a href="/contact/">お問い合わせ</a></body></html>`))
		case "/contact/":
			w.Write([]byte(`<html><body><form>お問い合わせフォーム</form></body></html>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	provider := &fakeSearchProvider{sites: []string{server.URL + "/", server.URL + "/", server.URL + "/"}}
	aggregator := searchservice.NewAggregator(provider, nil)

	candByURL := map[string]*searchmodel.Candidate{}
	for i, site := range provider.sites {
		c, _ := searchmodel.New(fmt.Sprintf("株式会社サンプル%d", i), site, "")
		candByURL[site] = c
	}
	chat := &echoingChatCompleter{candidates: candByURL}
	cleanser := cleanserservice.NewCleanser(chat, 0, 0, nil)

	scraper := scraperservice.NewScraper(2, nil, false, nil)

	registry := newFakeRegistry()
	jobs := jobservice.NewJobService(registry, time.Hour)

	sink := &fakeSink{}
	reporter := &recordingReporter{}
	mirror := collaboratorservice.NewArtifactMirror(nil, nil)

	ctrl := New(jobs, aggregator, cleanser, scraper, fakeDomainSource{}, sink, reporter, mirror, nil, nil)

	job, err := jobs.Create(context.Background(), "東京 IT企業", 1)
	require.NoError(t, err)

	ctrl.Run(context.Background(), job)

	final, err := jobs.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, jobmodel.StatusCompleted, final.Status)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/test", final.SpreadsheetURL)
	assert.True(t, reporter.final)
	assert.False(t, reporter.errored)
}

func TestController_Run_ZeroSearchResultsFailsJob(t *testing.T) {
	provider := &fakeSearchProvider{sites: nil}
	aggregator := searchservice.NewAggregator(provider, nil)
	cleanser := cleanserservice.NewCleanser(fakeChatCompleter{}, 0, 0, nil)
	scraper := scraperservice.NewScraper(2, nil, false, nil)

	registry := newFakeRegistry()
	jobs := jobservice.NewJobService(registry, time.Hour)
	reporter := &recordingReporter{}
	mirror := collaboratorservice.NewArtifactMirror(nil, nil)

	ctrl := New(jobs, aggregator, cleanser, scraper, fakeDomainSource{}, &fakeSink{}, reporter, mirror, nil, nil)

	job, err := jobs.Create(context.Background(), "存在しないキーワード", 5)
	require.NoError(t, err)

	ctrl.Run(context.Background(), job)

	final, err := jobs.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, jobmodel.StatusFailed, final.Status)
	assert.True(t, reporter.errored)
}
