package service

import (
	"regexp"
	"strings"

	"github.com/yamada-labo/prospectline/modules/cleanser/data"
)

var decorativePunctuation = regexp.MustCompile(`[\s　・、。！!？?「」『』【】（）()\-–—_/|｜:：]+`)

// normalizeForMatch lower-cases name, strips every corporate-form marker,
// and removes whitespace/decorative punctuation, leaving only the bare
// comparable token.
func normalizeForMatch(name string) string {
	name = strings.ToLower(name)
	for _, marker := range data.CorporateFormMarkers {
		name = strings.ReplaceAll(name, strings.ToLower(marker), "")
	}
	name = decorativePunctuation.ReplaceAllString(name, "")
	return name
}

// NameMatches reports whether pageTitle/pageSiteName/pageSectionText
// (header/footer/company/about section text) or, when the candidate name
// is long enough, the full bodyText carries evidence of candidateName.
// A candidate name under two characters is too ambiguous to check and is
// accepted unconditionally.
func NameMatches(candidateName, pageTitle, pageSiteName, pageSectionText, bodyText string) bool {
	normalizedCandidate := normalizeForMatch(candidateName)
	if len([]rune(normalizedCandidate)) < 2 {
		return true
	}

	if containsToken(pageTitle, normalizedCandidate) || containsToken(pageSiteName, normalizedCandidate) {
		return true
	}
	if containsToken(pageSectionText, normalizedCandidate) {
		return true
	}
	if len([]rune(normalizedCandidate)) >= 3 && containsToken(bodyText, normalizedCandidate) {
		return true
	}

	// symmetric fallback: the page's own declared name is a substring of
	// the (possibly longer) candidate name.
	normalizedTitle := normalizeForMatch(pageTitle)
	if len([]rune(normalizedTitle)) >= 2 && strings.Contains(normalizedCandidate, normalizedTitle) {
		return true
	}
	normalizedSiteName := normalizeForMatch(pageSiteName)
	if len([]rune(normalizedSiteName)) >= 2 && strings.Contains(normalizedCandidate, normalizedSiteName) {
		return true
	}

	return false
}

func containsToken(haystack, normalizedNeedle string) bool {
	if normalizedNeedle == "" {
		return false
	}
	return strings.Contains(normalizeForMatch(haystack), normalizedNeedle)
}
