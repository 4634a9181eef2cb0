package service

import (
	"regexp"
	"strings"

	"github.com/yamada-labo/prospectline/modules/cleanser/data"
)

var clauseVerbTailPattern = regexp.MustCompile(`する$|から$|へ$|を$|の面から$`)

// firstCorporateFormIndex locates the byte offset of the first
// corporate-form marker in name, or -1 if none is present.
func firstCorporateFormIndex(name string) int {
	best := -1
	for _, marker := range data.CorporateFormMarkers {
		if idx := strings.Index(name, marker); idx != -1 && (best == -1 || idx < best) {
			best = idx
		}
	}
	return best
}

// IsInvalidCompanyName is the final safety net applied after
// normalization: true means the candidate is dropped. Every prior LLM or
// normalization mistake still has to clear this deterministic gate.
func IsInvalidCompanyName(name string) bool {
	length := len([]rune(name))
	if length < 3 || length > 40 {
		return true
	}

	if strings.ContainsAny(name, "|｜【】") {
		return true
	}

	if strings.HasSuffix(name, "...") || strings.HasSuffix(name, "…") {
		return true
	}

	if data.IsAssociation(name) || data.IsMedia(name) || data.IsEducation(name) ||
		data.IsRoundup(name) || data.IsCatchphrase(name) || data.IsRecruitment(name) {
		return true
	}

	if strings.ContainsAny(name, "！!。、") {
		return true
	}

	if idx := firstCorporateFormIndex(name); idx != -1 {
		before := name[:idx]
		if len([]rune(before)) > 20 {
			return true
		}
		if clauseVerbTailPattern.MatchString(before) {
			return true
		}
	}

	return !data.HasCorporateForm(name)
}
