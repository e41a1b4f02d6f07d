package analysis

// IsWarrant reports whether a security code denotes a warrant (權證) or other
// non-equity instrument. Warrants carry 5 or more digits and never receive
// the self-disclosed earnings announcement this tool tracks, so they are
// filtered out of every report.
func IsWarrant(code string) bool {
	digits := 0
	for _, r := range code {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 5
}
