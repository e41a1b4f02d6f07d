package attention

import "strings"

// Clause references appear in disclosures in two numeral systems, so each
// clause class lists both its ordinal-word and Arabic forms.
var (
	clause13Markers = []string{"第一款", "第二款", "第三款", "第1款", "第2款", "第3款"}
	clause10Markers = []string{"第十款", "第10款"}
)

func containsAny(text string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// HasClause13 reports whether the remark cites any of clauses 1 through 3.
func HasClause13(text string) bool {
	return containsAny(text, clause13Markers)
}

// HasClause10 reports whether the remark cites clause 10. Independent of
// HasClause13: one remark may cite both.
func HasClause10(text string) bool {
	return containsAny(text, clause10Markers)
}
