package service

import (
	"strings"

	"github.com/yamada-labo/prospectline/modules/search/data"
)

// acceptResult runs the ordered per-result filter from spec §4.2:
// domain denylist, title denylist, running-dedup, company-likelihood.
// seen is the running domain-dedup set shared across the whole aggregate
// call (pre-seeded with existing_domains).
func acceptResult(domain, title string, seen map[string]struct{}) bool {
	if domainDenied(domain) {
		return false
	}
	if titleDenied(title) {
		return false
	}
	if _, dup := seen[domain]; dup {
		return false
	}
	if !looksLikeCompany(domain, title) {
		return false
	}
	return true
}

func domainDenied(domain string) bool {
	for _, d := range data.DomainDenylist {
		if strings.Contains(domain, d) {
			return true
		}
	}
	for _, suffix := range data.DomainSuffixDenylist {
		if strings.HasSuffix(domain, suffix) {
			return true
		}
	}
	return false
}

func titleDenied(title string) bool {
	for _, pattern := range data.TitleDenylist {
		if strings.Contains(title, pattern) {
			return true
		}
	}
	return false
}

// looksLikeCompany implements the company-likelihood heuristic: skipped
// (always true) when the domain is a corporate TLD (.co.jp); otherwise
// rejects roundup-style titles, accepts titles with a corporate-form
// marker, and defers everything else to the downstream LLM.
func looksLikeCompany(domain, title string) bool {
	if strings.HasSuffix(domain, ".co.jp") {
		return true
	}

	for _, marker := range data.RoundupMarkers {
		if strings.Contains(title, marker) {
			return false
		}
	}
	if data.TopNPattern.MatchString(title) {
		return false
	}

	for _, marker := range data.CorporateFormMarkers {
		if strings.Contains(title, marker) {
			return true
		}
	}

	return true
}
