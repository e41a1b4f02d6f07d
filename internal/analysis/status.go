package analysis

// Status is the follow-up status assigned against the exclusion set.
type Status string

// Risk is the coarse risk rating derived from the status.
type Risk string

const (
	StatusAnnounced   Status = "(已) 已公告 (排除)"
	StatusUnannounced Status = "(未) 未公告 (高風險)"

	RiskLow  Risk = "低風險"
	RiskHigh Risk = "高風險"
)

// AssignStatus cross-references a security code against the caller-supplied
// set of codes whose earnings are already announced. Pure: nothing but the
// membership test affects the outcome.
func AssignStatus(code string, excluded map[string]struct{}) (Status, Risk) {
	if _, ok := excluded[code]; ok {
		return StatusAnnounced, RiskLow
	}
	return StatusUnannounced, RiskHigh
}
