package attention

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanText collapses all whitespace (including full-width and no-break
// spaces) to single ASCII spaces and trims the result.
func CleanText(text string) string {
	value := strings.NewReplacer(
		" ", " ",
		"　", " ",
		"\r", " ",
		"\t", " ",
		"\n", " ",
	).Replace(text)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(value, " "))
}

// CleanCell cleans a single table cell, stripping the Excel text guard
// (="2330") the venues use to keep leading zeros in code columns.
func CleanCell(value string) string {
	text := strings.TrimSpace(value)
	if len(text) >= 3 && strings.HasPrefix(text, `="`) && strings.HasSuffix(text, `"`) {
		text = text[2 : len(text)-1]
	}
	return CleanText(text)
}

// NormalizeHeader strips all whitespace from a header cell so that
// differently padded venue headers compare equal.
func NormalizeHeader(text string) string {
	return whitespaceRe.ReplaceAllString(text, "")
}

var codeSeparatorRe = regexp.MustCompile(`[\s,]+`)

// SplitCodes tokenizes a whitespace or comma separated list of security
// codes, as entered at the exclusion prompt.
func SplitCodes(raw string) []string {
	var codes []string
	for _, token := range codeSeparatorRe.Split(strings.TrimSpace(raw), -1) {
		if token != "" {
			codes = append(codes, token)
		}
	}
	return codes
}
