package model

// Cleansed is a Candidate that has survived the batch chat-completion call
// and the deterministic post-normalization pass, with company_name
// rewritten to a canonical legal-entity form.
type Cleansed struct {
	CompanyName    string
	URL            string
	Domain         string
	RelevanceScore float64
}
