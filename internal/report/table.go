package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ycl-tw/attention-monitor/internal/analysis"
)

// WriteTable renders the records as an aligned console table.
func WriteTable(w io.Writer, records []analysis.Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, strings.Join(Columns, "\t")); err != nil {
		return err
	}
	for _, row := range buildRows(records, "-", false) {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}
