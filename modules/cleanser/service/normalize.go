package service

import (
	"regexp"
	"strings"

	"github.com/yamada-labo/prospectline/modules/cleanser/data"
	"golang.org/x/text/unicode/norm"
)

var (
	pipeSplitPattern      = regexp.MustCompile(`\s*[|｜│]\s*`)
	colonLongPattern      = regexp.MustCompile(`[。：:]`)
	bracketPairPattern    = regexp.MustCompile(`【[^】]*】|「[^」]*」`)
	bracketOpenOnly       = regexp.MustCompile(`【([^】]*)$`)
	parenPairPattern      = regexp.MustCompile(`\s*[（(][^）)]*[）)]\s*`)
	strayParenPattern     = regexp.MustCompile(`[（()）]`)
	trailingSuffixPattern = regexp.MustCompile(`の(?:ホームページ|公式サイト|公式ホームページ|ウェブサイト|HP|Webサイト|WEBサイト|オフィシャルサイト)$|へようこそ$`)
	leadingPrefixPattern  = regexp.MustCompile(`^(?:沿革|会社概要|企業情報|会社案内|トップページ|HOME|ホーム)\s*[:：\-|]\s*`)
	nodeCatchphrase       = regexp.MustCompile(`^.+なら(株式会社|有限会社|合同会社|合名会社|合資会社)`)
	spacedLettersPattern  = regexp.MustCompile(`\b[A-Za-z](?: [A-Za-z]){2,}\b`)
	multiSpacePattern     = regexp.MustCompile(` +`)
)

// clauseClauseThreshold is the rune count beyond which text surrounding a
// corporate-form marker is judged to be a sentence clause rather than
// part of the company name, and gets truncated to clauseClauseWindow
// characters. Mirrors the invalidity predicate's own long-preamble check.
const (
	clauseClauseThreshold = 20
	clauseClauseWindow    = 15
)

// NormalizeCompanyName runs the twelve-step deterministic post-processing
// pass over an LLM-produced company name, rewriting it to the bare legal
// entity it names. If only a bare corporate-form token survives, the
// empty string is returned so the invalidity predicate rejects it.
func NormalizeCompanyName(name string) string {
	// 1. full-width -> half-width compatibility fold.
	name = norm.NFKC.String(name)

	// 2. pipe-like separators.
	name = keepFragmentWithMarker(pipeSplitPattern.Split(name, -1))

	// 3. " - " separator.
	if strings.Contains(name, " - ") {
		name = keepFragmentWithMarker(strings.Split(name, " - "))
	}

	// 4. 。/：/: separator, only for long names.
	if len([]rune(name)) > 20 && colonLongPattern.MatchString(name) {
		name = keepFragmentWithMarker(colonLongPattern.Split(name, -1))
	}

	// 5. bracket-enclosed content.
	name = stripBracketedContent(name)

	// 6. parenthesised content, then stray parenthesis characters.
	name = parenPairPattern.ReplaceAllString(name, "")
	name = strayParenPattern.ReplaceAllString(name, "")

	// 7. trailing "official site" boilerplate.
	name = trailingSuffixPattern.ReplaceAllString(name, "")

	// 8. leading boilerplate prefixes.
	name = leadingPrefixPattern.ReplaceAllString(name, "")

	// 9. catchphrase "...なら<company>".
	if m := nodeCatchphrase.FindStringSubmatchIndex(name); m != nil {
		candidate := name[m[2]:]
		if data.HasCorporateForm(candidate) {
			name = candidate
		}
	}

	// 10. clause-embedded legal form, e.g. "XをY支援する合同会社".
	name = extractClauseForm(name)

	// 11. collapse single-letter-with-space runs ("S k y" -> "Sky").
	name = spacedLettersPattern.ReplaceAllStringFunc(name, func(s string) string {
		return strings.ReplaceAll(s, " ", "")
	})

	// 12. collapse whitespace and trim.
	name = strings.ReplaceAll(name, "　", " ")
	name = multiSpacePattern.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)

	if isBareCorporateForm(name) {
		return ""
	}
	return name
}

// keepFragmentWithMarker returns the first fragment carrying a
// corporate-form marker, falling back to the first fragment overall.
func keepFragmentWithMarker(fragments []string) string {
	if len(fragments) == 0 {
		return ""
	}
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if data.HasCorporateForm(f) {
			return f
		}
	}
	return strings.TrimSpace(fragments[0])
}

// stripBracketedContent removes 【…】/「…」 pairs outright; for an
// unterminated 【, it prefers whichever side of the bracket carries a
// corporate-form marker.
func stripBracketedContent(name string) string {
	if idx := bracketOpenOnly.FindStringSubmatchIndex(name); idx != nil && !strings.Contains(name, "】") {
		before := strings.TrimSpace(name[:idx[0]])
		after := strings.TrimSpace(name[idx[2]:])
		if data.HasCorporateForm(after) {
			return after
		}
		return before
	}
	return bracketPairPattern.ReplaceAllString(name, "")
}

// extractClauseForm handles names where a legal-form token is embedded in
// a longer clause ("株式会社Xは…" / "Xを支援する合同会社"): when the text
// before or after the marker runs past clauseClauseThreshold characters,
// it is truncated to its nearest clauseClauseWindow characters. Short
// surrounding text (an ordinary "Sky株式会社"-shaped name) is left alone.
func extractClauseForm(name string) string {
	start, end, ok := data.FindCorporateFormSpan(name)
	if !ok {
		return name
	}

	before := []rune(name[:start])
	after := []rune(name[end:])

	changed := false
	if len(before) > clauseClauseThreshold {
		before = before[len(before)-clauseClauseWindow:]
		changed = true
	}
	if len(after) > clauseClauseThreshold {
		after = after[:clauseClauseWindow]
		changed = true
	}
	if !changed {
		return name
	}

	return strings.TrimSpace(string(before) + name[start:end] + string(after))
}

// isBareCorporateForm reports whether name, once stripped of every
// corporate-form marker, has nothing left — i.e. it names no company.
func isBareCorporateForm(name string) bool {
	if name == "" {
		return false
	}
	stripped := name
	for {
		start, end, ok := data.FindCorporateFormSpan(stripped)
		if !ok {
			break
		}
		stripped = stripped[:start] + stripped[end:]
	}
	return strings.TrimSpace(stripped) == "" && data.HasCorporateForm(name)
}
