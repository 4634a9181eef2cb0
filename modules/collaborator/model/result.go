package model

// SaveResult is what a ResultSink hands back after persisting a batch.
type SaveResult struct {
	SpreadsheetURL string
}
