package parser

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/ycl-tw/attention-monitor/internal/attention"
)

// ParseCSV parses the venue CSV export. The exports prepend title and note
// lines around the data table and pad rows unevenly, so field counts are not
// enforced and blank lines are dropped before the header search.
func ParseCSV(text string, market attention.Market) (*Result, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStructure, err)
	}

	var grid [][]string
	for _, record := range records {
		blank := true
		for _, cell := range record {
			if strings.TrimSpace(cell) != "" {
				blank = false
				break
			}
		}
		if !blank {
			grid = append(grid, record)
		}
	}

	return parseGrid(grid, market)
}
