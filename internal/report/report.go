// Package report renders analysis records for the console and writes the CSV
// artifact.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/ycl-tw/attention-monitor/internal/analysis"
)

// Columns is the fixed artifact column order.
var Columns = []string{
	"市場",
	"代號",
	"名稱",
	"風險評級",
	"觸發原因",
	"最後注意日",
	"六日次數",
	"最大量增倍數",
	"最大漲幅(%)",
	"狀態",
}

// formatNumber renders an optional numeric signal, trimming trailing zeros.
// Absent values render as the given placeholder ("-" on screen, empty in the
// file artifact).
func formatNumber(value *float64, missing string) string {
	if value == nil {
		return missing
	}
	text := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", *value), "0"), ".")
	return text
}

func formatDate(value time.Time) string {
	return value.Format("2006-01-02")
}

// buildRows flattens records into table cells in Columns order. forExcel
// wraps codes in the ="..." guard so spreadsheets keep leading zeros.
func buildRows(records []analysis.Record, missing string, forExcel bool) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		code := r.Code
		if forExcel {
			code = fmt.Sprintf(`="%s"`, r.Code)
		}
		rows = append(rows, []string{
			string(r.Market),
			code,
			r.Name,
			string(r.Risk),
			r.Reason(),
			formatDate(r.LastAttentionDate),
			fmt.Sprintf("%d", r.OccurrenceCount),
			formatNumber(r.MaxVolumeMultiple, missing),
			formatNumber(r.MaxGainPercent, missing),
			string(r.Status),
		})
	}
	return rows
}
