package model

import "time"

// Status is the lifecycle state of an asynchronous prospect-search job.
// A job only ever moves forward through this sequence, except that any
// state can transition directly to Failed.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSearching Status = "searching"
	StatusScraping  Status = "scraping"
	StatusSaving    Status = "saving"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// order gives each status except Failed its position in the forward
// sequence; used to reject a transition that would move a job backwards.
var order = map[Status]int{
	StatusPending:   0,
	StatusSearching: 1,
	StatusScraping:  2,
	StatusSaving:    3,
	StatusCompleted: 4,
}

// CanTransition reports whether moving from "from" to "to" is a legal
// forward step, or an escape to Failed from any non-terminal state.
func CanTransition(from, to Status) bool {
	if to == StatusFailed {
		return from != StatusCompleted && from != StatusFailed
	}
	fromRank, fromOK := order[from]
	toRank, toOK := order[to]
	if !fromOK || !toOK {
		return false
	}
	return toRank > fromRank
}

// Job tracks one keyword-to-spreadsheet run through the pipeline.
type Job struct {
	ID              string    `json:"id"`
	Keyword         string    `json:"keyword"`
	TargetCount     int       `json:"target_count"`
	QueriesInitial  []string  `json:"queries_initial,omitempty"`
	Status          Status    `json:"status"`
	Progress        int       `json:"progress"`
	Message         string    `json:"message,omitempty"`
	Error           string    `json:"error,omitempty"`
	ResultCount     int       `json:"result_count"`
	SpreadsheetURL  string    `json:"spreadsheet_url,omitempty"`
	CSVArtifactKey  string    `json:"csv_artifact_key,omitempty"`
	DOCXArtifactKey string    `json:"docx_artifact_key,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// New creates a job in the pending state.
func New(id, keyword string, targetCount int) *Job {
	now := time.Now().UTC()
	return &Job{
		ID:          id,
		Keyword:     keyword,
		TargetCount: targetCount,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// StatusView is the subset of a job exposed to status-polling clients.
type StatusView struct {
	ID          string `json:"id"`
	Status      Status `json:"status"`
	Progress    int    `json:"progress"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
	ResultCount int    `json:"result_count"`
}

// ToStatusView projects a Job down to its public status fields.
func (j *Job) ToStatusView() *StatusView {
	return &StatusView{
		ID:          j.ID,
		Status:      j.Status,
		Progress:    j.Progress,
		Message:     j.Message,
		Error:       j.Error,
		ResultCount: j.ResultCount,
	}
}

// ResultView is returned once a job has completed.
type ResultView struct {
	ID             string `json:"id"`
	Status         Status `json:"status"`
	ResultCount    int    `json:"result_count"`
	SpreadsheetURL string `json:"spreadsheet_url,omitempty"`
}

// ToResultView projects a Job down to its public result fields.
func (j *Job) ToResultView() *ResultView {
	return &ResultView{
		ID:             j.ID,
		Status:         j.Status,
		ResultCount:    j.ResultCount,
		SpreadsheetURL: j.SpreadsheetURL,
	}
}
