package service

import (
	"net/url"
	"strings"
)

// contactKeywords are href/text substrings that mark a link as a likely
// contact page.
var contactKeywords = []string{
	"contact", "inquiry", "toiawase", "form", "mail", "support",
	"お問い合わせ", "お問合せ", "お問合わせ", "問い合わせ",
}

type linkCandidate struct {
	href string
	text string
}

// ExtractContactLink scans the page's <a href> links and returns the
// highest-scored contact link, absolutised against baseURL, or "" if no
// link plausibly leads to a contact page.
func ExtractContactLink(links []linkCandidate, baseURL string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}

	var best string
	bestScore := -1

	for _, link := range links {
		href := strings.TrimSpace(link.href)
		if href == "" {
			continue
		}
		lower := strings.ToLower(href)
		if strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "tel:") {
			continue
		}
		if strings.HasPrefix(href, "#") && href != "#contact" {
			continue
		}

		resolved, err := base.Parse(href)
		if err != nil {
			continue
		}
		if resolved.Hostname() != "" && !strings.EqualFold(resolved.Hostname(), base.Hostname()) {
			continue
		}

		lowerText := strings.ToLower(link.text)
		if !containsAnyKeyword(lower, contactKeywords) && !containsAnyKeyword(lowerText, contactKeywords) {
			continue
		}

		score := scoreContactLink(lower, lowerText, resolved.Path)
		if score <= 0 {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = resolved.String()
		}
	}

	return best
}

func containsAnyKeyword(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func scoreContactLink(lowerHref, lowerText, path string) int {
	score := 0

	for _, kw := range []string{"contact", "inquiry", "toiawase"} {
		if strings.Contains(lowerHref, kw) {
			score += 10
		}
	}
	for _, kw := range contactKeywords {
		if strings.Contains(lowerText, kw) {
			score += 8
			break
		}
	}
	if strings.Contains(lowerHref, "form") {
		score += 5
	}

	slashCount := strings.Count(strings.Trim(path, "/"), "/")
	if depth := 5 - slashCount; depth > 0 {
		score += depth
	}

	return score
}
