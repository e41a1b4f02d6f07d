package attention

import (
	"regexp"
	"strconv"
)

// Remark signal patterns. A remark may concatenate several clause texts, so
// every pattern is matched globally and the numeric maximum wins.
var (
	// 成交量較...放大3倍 / 週轉率為5.5倍 / 之6倍
	volumeMultipleRe = regexp.MustCompile(`(?:放大|為|之)\s*([0-9]+(?:\.[0-9]+)?)\s*倍`)
	// 漲幅達28.5% / 漲幅12%
	gainPercentRe = regexp.MustCompile(`漲幅(?:達)?\s*([0-9]+(?:\.[0-9]+)?)%`)
)

// primaryClauseMarkers are the literal forms citing the first-clause
// (cumulative closing-price gain) regulatory basis. Both numeral styles are
// listed explicitly; this is containment, not extraction.
var primaryClauseMarkers = []string{"第一款", "第1款", "累積收盤價漲幅"}

// extractMax finds every match of a single-group numeric pattern and returns
// the largest value, or nil when nothing matches.
func extractMax(re *regexp.Regexp, text string) *float64 {
	var best *float64
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if best == nil || value > *best {
			v := value
			best = &v
		}
	}
	return best
}

// MaxVolumeMultiple returns the largest 放大N倍 volume multiple cited in the
// remark, or nil when the remark cites none.
func MaxVolumeMultiple(text string) *float64 {
	return extractMax(volumeMultipleRe, text)
}

// MaxGainPercent returns the largest 漲幅N% gain cited in the remark, or nil
// when the remark cites none.
func MaxGainPercent(text string) *float64 {
	return extractMax(gainPercentRe, text)
}

// HasPrimaryClause reports whether the remark cites the first-clause basis.
func HasPrimaryClause(text string) bool {
	return containsAny(text, primaryClauseMarkers)
}
