package model

// ErrorKind classifies why a candidate's enrichment terminated. "ok" is
// the only success state; every other value means the record carries no
// reliable contact data.
type ErrorKind string

const (
	ErrorKindOK              ErrorKind = "ok"
	ErrorKindTopPageFailed   ErrorKind = "top_page_failed"
	ErrorKindCompanyMismatch ErrorKind = "company_mismatch"
)

// EnrichedRecord is the terminal output of one candidate's scrape
// state machine run.
type EnrichedRecord struct {
	CompanyName string
	URL         string
	Domain      string
	ContactURL  string
	Phone       string
	ErrorKind   ErrorKind
}

// HasContact reports whether the record carries a contact URL or phone
// number — the sort key the round controller truncates on.
func (r *EnrichedRecord) HasContact() bool {
	return r.ContactURL != "" || r.Phone != ""
}
