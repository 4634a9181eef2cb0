package data

// CorporateFormMarkers are the legal-entity-form tokens used by the
// company-likelihood heuristic. Mirrors the query-pool module's copy; the
// cleanser's list holds only the Japanese forms — each module owns its table rather than sharing
// one package, so a change to one stage's rules can't silently shift
// another's.
var CorporateFormMarkers = []string{
	"株式会社", "有限会社", "合同会社", "合名会社", "合資会社",
	"Inc.", "Co., Ltd.", "Ltd.", "LLC", "LLP",
}
