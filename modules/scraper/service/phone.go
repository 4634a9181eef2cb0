package service

import (
	"regexp"
	"strings"
)

var (
	telHrefPattern      = regexp.MustCompile(`tel:([0-9+\-]+)`)
	labeledPhonePattern = regexp.MustCompile(`(?:TEL|Tel|tel|電話|☎|℡|代表)[:\s：]*\(?(0\d{1,4})\)?[-\s.]?(\d{1,4})[-\s.]?(\d{3,4})`)
	barePhonePattern    = regexp.MustCompile(`\b(0\d{1,4})[-\s](\d{1,4})[-\s](\d{3,4})\b`)
)

// ExtractPhone runs the ordered, first-match-wins phone search over
// telHrefs (raw tel: targets) and pageText, validating and formatting
// the first candidate that FormatPhone accepts.
func ExtractPhone(telHrefs []string, pageText string) string {
	for _, href := range telHrefs {
		if m := telHrefPattern.FindStringSubmatch("tel:" + strings.TrimPrefix(href, "tel:")); m != nil {
			if formatted := FormatPhone(m[1]); formatted != "" {
				return formatted
			}
		}
	}

	if m := labeledPhonePattern.FindStringSubmatch(pageText); m != nil {
		if formatted := FormatPhone(m[1] + m[2] + m[3]); formatted != "" {
			return formatted
		}
	}

	if m := barePhonePattern.FindStringSubmatch(pageText); m != nil {
		if formatted := FormatPhone(m[1] + m[2] + m[3]); formatted != "" {
			return formatted
		}
	}

	return ""
}

// FormatPhone validates raw (possibly punctuated) phone digits and
// formats them per Japanese convention. Returns "" if invalid.
func FormatPhone(raw string) string {
	digits := onlyDigits(raw)

	if len(digits) != 10 && len(digits) != 11 {
		return ""
	}
	if digits[0] != '0' {
		return ""
	}
	if strings.Contains(digits, "0000") {
		return ""
	}

	switch {
	case strings.HasPrefix(digits, "03") && len(digits) == 10:
		return digits[:2] + "-" + digits[2:6] + "-" + digits[6:]
	case isMobilePrefix(digits) && len(digits) == 11:
		return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
	case strings.HasPrefix(digits, "0120") && len(digits) == 10:
		return digits[:4] + "-" + digits[4:7] + "-" + digits[7:]
	case len(digits) == 10:
		return digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
	default: // 11-digit non-mobile
		return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
	}
}

func isMobilePrefix(digits string) bool {
	for _, prefix := range []string{"090", "080", "070"} {
		if strings.HasPrefix(digits, prefix) {
			return true
		}
	}
	return false
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
