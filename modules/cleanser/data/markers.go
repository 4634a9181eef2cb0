// Package data holds the declarative marker and pattern tables the
// normalizer and invalidity predicate are built from. Grounded on
// services/llm_cleanser.py's _normalize_company_name and
// _is_invalid_company_name rule sets.
package data

import "regexp"

// CorporateFormMarkers lists the Japanese legal-entity suffixes/prefixes
// the normalizer and invalidity predicate treat as evidence of a real
// legal entity. Western forms (Inc., Co., Ltd., LLC, ...) are not in this
// list; only corporateFormPattern matches them. Kept local to this module rather than
// shared with modules/search or modules/querypool: each stage's
// corporate-form contract is independently testable and can drift without
// breaking another stage.
var CorporateFormMarkers = []string{
	"株式会社", "有限会社", "合同会社", "合名会社", "合資会社",
}

// corporateFormPattern matches any CorporateFormMarkers entry plus the
// Western forms Inc., Corp., Co., Ltd., LLC, LLP and Limited, case-folded.
var corporateFormPattern = regexp.MustCompile(`(?i)株式会社|有限会社|合同会社|合名会社|合資会社|Inc\.?|Corp\.?|Co\.?,?\s*Ltd\.?|LLC|LLP|Limited`)

// HasCorporateForm reports whether name carries any recognised
// legal-entity marker, Japanese or Western.
func HasCorporateForm(name string) bool {
	return corporateFormPattern.MatchString(name)
}

// FindCorporateFormSpan returns the byte offsets of the first recognised
// legal-entity marker in name, and false if none is present.
func FindCorporateFormSpan(name string) (start, end int, ok bool) {
	loc := corporateFormPattern.FindStringIndex(name)
	if loc == nil {
		return 0, 0, false
	}
	return loc[0], loc[1], true
}

// associationPattern flags associations, federations, and foundations —
// never sales prospects.
var associationPattern = regexp.MustCompile(`協会|連盟|懇話会|連合会|機構$|組合(?:せ)?`)

// mediaPattern flags periodicals and news outlets.
var mediaPattern = regexp.MustCompile(`^週刊|^日刊|^月刊|新聞社?$|ニュース$|メディア$`)

// educationPattern flags schools and training courses.
var educationPattern = regexp.MustCompile(`講座|養成|スクール$|アカデミー$|塾$|学校$|学園$`)

// roundupPattern flags "N選" roundup and comparison-site phrasing, plus
// "TOP<N>" roundup titles (e.g. "TOP10").
var roundupPattern = regexp.MustCompile(`(?i)\d+選|厳選|比較|おすすめ|ランキング|TOP\d+`)

// catchphraseTailPattern flags a "…なら<short tail>" catchphrase ending.
var catchphraseTailPattern = regexp.MustCompile(`なら.{0,5}$`)

// catchphraseVerbPattern flags catchphrase-style verb endings.
var catchphraseVerbPattern = regexp.MustCompile(`をお探し|を志す|を支援する|を実現|をサポート|を提供する`)

// recruitmentPattern flags job-hunting and recruitment copy.
var recruitmentPattern = regexp.MustCompile(`就活|キャリア|新卒|転職|求人|採用`)

// IsAssociation reports whether name matches an association/federation marker.
func IsAssociation(name string) bool { return associationPattern.MatchString(name) }

// IsMedia reports whether name matches a media/journal marker.
func IsMedia(name string) bool { return mediaPattern.MatchString(name) }

// IsEducation reports whether name matches an education/course marker.
func IsEducation(name string) bool { return educationPattern.MatchString(name) }

// IsRoundup reports whether name matches a roundup/comparison marker.
func IsRoundup(name string) bool { return roundupPattern.MatchString(name) }

// IsCatchphrase reports whether name matches a catchphrase marker.
func IsCatchphrase(name string) bool {
	return catchphraseTailPattern.MatchString(name) || catchphraseVerbPattern.MatchString(name)
}

// IsRecruitment reports whether name matches a recruitment marker.
func IsRecruitment(name string) bool { return recruitmentPattern.MatchString(name) }
