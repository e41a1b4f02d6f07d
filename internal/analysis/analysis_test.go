package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ycl-tw/attention-monitor/internal/attention"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// six consecutive weekdays used as the trading-date window in tests
var days = []time.Time{
	date(2026, time.January, 14),
	date(2026, time.January, 15),
	date(2026, time.January, 16),
	date(2026, time.January, 19),
	date(2026, time.January, 20),
	date(2026, time.January, 21),
}

func tseRow(code string, d time.Time, remark string) attention.Row {
	return attention.Row{Market: attention.MarketTSE, Code: code, Name: "測試" + code, Date: d, Remark: remark}
}

func otcRow(code string, d time.Time, remark string) attention.Row {
	return attention.Row{Market: attention.MarketOTC, Code: code, Name: "櫃測" + code, Date: d, Remark: remark}
}

func findRecord(t *testing.T, records []Record, code string) Record {
	t.Helper()
	for _, r := range records {
		if r.Code == code {
			return r
		}
	}
	t.Fatalf("record for %s not found in %v", code, records)
	return Record{}
}

func TestBuildReportCountTrigger(t *testing.T) {
	rows := []attention.Row{
		tseRow("2330", days[0], "第二款 漲幅達12%"),
		tseRow("2330", days[2], "第二款 成交量放大3倍"),
		tseRow("2330", days[3], "第三款"),
		tseRow("2330", days[4], "第二款 成交量放大5.5倍"),
	}

	records := BuildReport(rows, nil, Options{})
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, attention.MarketTSE, r.Market)
	assert.Equal(t, 4, r.OccurrenceCount)
	assert.Contains(t, r.TriggerReasons, ReasonTripleAttention)
	assert.True(t, r.LastAttentionDate.Equal(days[4]))
	require.NotNil(t, r.MaxVolumeMultiple)
	assert.InDelta(t, 5.5, *r.MaxVolumeMultiple, 1e-9)
	require.NotNil(t, r.MaxGainPercent)
	assert.InDelta(t, 12, *r.MaxGainPercent, 1e-9)
}

func TestBuildReportOTCCountTrigger(t *testing.T) {
	rows := []attention.Row{
		otcRow("6488", days[3], "第一款"),
		otcRow("6488", days[4], "第一款"),
		otcRow("6488", days[5], "第一款"),
		otcRow("4743", days[5], "第一款"), // single occurrence, no trigger
	}

	records := BuildReport(rows, nil, Options{})
	require.Len(t, records, 1)
	assert.Equal(t, "6488", records[0].Code)
	assert.Equal(t, []string{ReasonTripleAttention}, records[0].TriggerReasons)
}

func TestBuildReportClause10ExcludedFromCount(t *testing.T) {
	rows := []attention.Row{
		tseRow("3008", days[2], "第十款"),
		tseRow("3008", days[3], "第十款"),
		tseRow("3008", days[4], "第十款"),
		tseRow("3008", days[5], "第10款"),
	}

	// Four rows in the window, all clause 10: no count, no trigger.
	records := BuildReport(rows, nil, Options{})
	assert.Empty(t, records)

	records = BuildReport(rows, nil, Options{IncludeUntriggered: true})
	require.Len(t, records, 1)
	assert.Equal(t, 0, records[0].OccurrenceCount)
	assert.Empty(t, records[0].TriggerReasons)
}

func TestBuildReportLatestClause13Trigger(t *testing.T) {
	// The only row for 2603 sits on the global latest TSE date and cites
	// clause 2 alongside clause 10: excluded from the count, but the
	// clause 1-3 trigger still fires.
	rows := []attention.Row{
		tseRow("2330", days[4], "第一款"),
		tseRow("2603", days[5], "第二款 第十款"),
	}

	records := BuildReport(rows, nil, Options{})
	r := findRecord(t, records, "2603")
	assert.Equal(t, 0, r.OccurrenceCount)
	assert.Equal(t, []string{ReasonLatestClause13}, r.TriggerReasons)
}

func TestBuildReportLatestClause13NotOnOlderDate(t *testing.T) {
	rows := []attention.Row{
		tseRow("2330", days[5], "第十款"),      // sets the latest TSE date
		tseRow("2603", days[4], "第二款"),      // clause 1-3 but not latest date
		tseRow("2603", days[3], "第十款"),
	}

	records := BuildReport(rows, nil, Options{IncludeUntriggered: true})
	r := findRecord(t, records, "2603")
	assert.NotContains(t, r.TriggerReasons, ReasonLatestClause13)
}

func TestBuildReportClause13TriggerIsTSEOnly(t *testing.T) {
	rows := []attention.Row{
		otcRow("6488", days[5], "第二款"),
	}

	records := BuildReport(rows, nil, Options{IncludeUntriggered: true})
	require.Len(t, records, 1)
	assert.Empty(t, records[0].TriggerReasons)
}

func TestBuildReportBothReasonsOrdered(t *testing.T) {
	rows := []attention.Row{
		tseRow("2330", days[2], "第一款"),
		tseRow("2330", days[3], "第一款"),
		tseRow("2330", days[4], "第一款"),
		tseRow("2330", days[5], "第二款"),
	}

	records := BuildReport(rows, nil, Options{})
	require.Len(t, records, 1)
	assert.Equal(t, []string{ReasonTripleAttention, ReasonLatestClause13}, records[0].TriggerReasons)
	assert.Equal(t, ReasonTripleAttention+ReasonSeparator+ReasonLatestClause13, records[0].Reason())
}

func TestBuildReportClause10StillFeedsAggregates(t *testing.T) {
	rows := []attention.Row{
		tseRow("2330", days[3], "第一款 漲幅達20%"),
		tseRow("2330", days[4], "第一款"),
		tseRow("2330", days[5], "第一款 第十款 累積收盤價漲幅達35.5% 成交量放大9倍"),
	}

	records := BuildReport(rows, nil, Options{})
	require.Len(t, records, 1)

	r := records[0]
	// The clause 10 row is excluded from the count...
	assert.Equal(t, 2, r.OccurrenceCount)
	// ...but still feeds the signal maxima, the primary-clause flag and
	// the last attention date.
	assert.True(t, r.PrimaryClauseEver)
	require.NotNil(t, r.MaxGainPercent)
	assert.InDelta(t, 35.5, *r.MaxGainPercent, 1e-9)
	require.NotNil(t, r.MaxVolumeMultiple)
	assert.InDelta(t, 9, *r.MaxVolumeMultiple, 1e-9)
	assert.True(t, r.LastAttentionDate.Equal(days[5]))
}

func TestBuildReportWindowIsSixDates(t *testing.T) {
	older := date(2026, time.January, 6)
	rows := []attention.Row{
		// Three occurrences, but one falls outside the six-date window
		// once all six window dates are present in the row set.
		tseRow("1101", older, "第一款"),
		tseRow("1101", days[0], "第一款"),
		tseRow("1101", days[1], "第一款"),
	}
	for i, d := range days {
		rows = append(rows, tseRow("9900"+string(rune('0'+i)), d, "第十款"))
	}

	records := BuildReport(rows, nil, Options{IncludeUntriggered: true})
	r := findRecord(t, records, "1101")
	assert.Equal(t, 2, r.OccurrenceCount)
	assert.Empty(t, r.TriggerReasons)
	// last attention date is not window-restricted, but for 1101 the
	// newest contributing row is days[1]
	assert.True(t, r.LastAttentionDate.Equal(days[1]))
}

func TestBuildReportWarrantNeverSurfaces(t *testing.T) {
	rows := []attention.Row{
		tseRow("30061", days[3], "第一款"),
		tseRow("30061", days[4], "第一款"),
		tseRow("30061", days[5], "第一款"),
	}

	records := BuildReport(rows, nil, Options{IncludeUntriggered: true})
	assert.Empty(t, records)
}

func TestBuildReportStatusAssignment(t *testing.T) {
	rows := []attention.Row{
		tseRow("2330", days[3], "第一款"),
		tseRow("2330", days[4], "第一款"),
		tseRow("2330", days[5], "第一款"),
		tseRow("2317", days[3], "第一款"),
		tseRow("2317", days[4], "第一款"),
		tseRow("2317", days[5], "第一款"),
	}
	excluded := map[string]struct{}{"2330": {}}

	records := BuildReport(rows, excluded, Options{})
	require.Len(t, records, 2)

	announced := findRecord(t, records, "2330")
	assert.Equal(t, StatusAnnounced, announced.Status)
	assert.Equal(t, RiskLow, announced.Risk)

	unannounced := findRecord(t, records, "2317")
	assert.Equal(t, StatusUnannounced, unannounced.Status)
	assert.Equal(t, RiskHigh, unannounced.Risk)
}

func TestBuildReportSorting(t *testing.T) {
	rows := []attention.Row{
		otcRow("4743", days[5], "第一款"),
		tseRow("2603", days[5], "第一款"),
		tseRow("1101", days[5], "第一款"),
		otcRow("3105", days[5], "第一款"),
	}

	records := BuildReport(rows, nil, Options{IncludeUntriggered: true})
	require.Len(t, records, 4)
	assert.Equal(t, "1101", records[0].Code)
	assert.Equal(t, "2603", records[1].Code)
	assert.Equal(t, "3105", records[2].Code)
	assert.Equal(t, "4743", records[3].Code)
	assert.Equal(t, attention.MarketTSE, records[0].Market)
	assert.Equal(t, attention.MarketOTC, records[2].Market)
}

func TestBuildReportDeterministic(t *testing.T) {
	rows := []attention.Row{
		otcRow("4743", days[4], "第一款 漲幅達8%"),
		tseRow("2330", days[3], "第一款"),
		tseRow("2330", days[4], "第一款"),
		tseRow("2330", days[5], "第一款"),
		otcRow("4743", days[3], "第一款"),
		otcRow("4743", days[5], "第一款"),
	}

	first := BuildReport(rows, nil, Options{})
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildReport(rows, nil, Options{}))
	}
}

func TestBuildReportEmptyInput(t *testing.T) {
	assert.Nil(t, BuildReport(nil, nil, Options{}))
	assert.Nil(t, BuildReport([]attention.Row{}, nil, Options{}))
}

func TestBuildReportDuplicateSameDayRowsEachCount(t *testing.T) {
	rows := []attention.Row{
		tseRow("2330", days[5], "第一款"),
		tseRow("2330", days[5], "第二款"),
		tseRow("2330", days[4], "第一款"),
	}

	records := BuildReport(rows, nil, Options{})
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].OccurrenceCount)
	assert.Contains(t, records[0].TriggerReasons, ReasonTripleAttention)
}
