package parser

import (
	"fmt"

	"github.com/ycl-tw/attention-monitor/internal/attention"
)

// Result carries the rows parsed from one document plus the number of rows
// dropped for malformed dates, surfaced for diagnostics.
type Result struct {
	Rows    []attention.Row
	Skipped int
}

// Venue column headers. Positions differ between TWSE and TPEX documents;
// they are resolved from the located header row, never guessed.
const (
	headerCode   = "證券代號"
	headerName   = "證券名稱"
	headerRemark = "注意交易資訊"
	headerDate   = "日期"
	headerDate2  = "公告日期"
)

type columnMap struct {
	code   int
	name   int
	remark int
	date   int
}

func (m columnMap) max() int {
	max := m.code
	for _, idx := range []int{m.name, m.remark, m.date} {
		if idx > max {
			max = idx
		}
	}
	return max
}

// findHeaderRow locates the first row carrying the three mandatory headers.
func findHeaderRow(grid [][]string) int {
	for idx, row := range grid {
		found := 0
		for _, cell := range row {
			switch attention.NormalizeHeader(cell) {
			case headerCode, headerName, headerRemark:
				found++
			}
		}
		if found == 3 {
			return idx
		}
	}
	return -1
}

func mapColumns(header []string) (columnMap, error) {
	index := func(names ...string) int {
		for _, name := range names {
			for i, cell := range header {
				if attention.NormalizeHeader(cell) == name {
					return i
				}
			}
		}
		return -1
	}

	m := columnMap{
		code:   index(headerCode),
		name:   index(headerName),
		remark: index(headerRemark),
		date:   index(headerDate, headerDate2),
	}
	if m.code < 0 || m.name < 0 || m.remark < 0 || m.date < 0 {
		return columnMap{}, fmt.Errorf("%w: required columns missing", ErrStructure)
	}
	return m, nil
}

// parseGrid maps a fully populated 2D grid onto the unified row schema.
// Rows with an unparseable date are skipped and counted; zero surviving rows
// is a structure failure.
func parseGrid(grid [][]string, market attention.Market) (*Result, error) {
	headerIdx := findHeaderRow(grid)
	if headerIdx < 0 {
		return nil, fmt.Errorf("%w: header row not found", ErrStructure)
	}
	columns, err := mapColumns(grid[headerIdx])
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, row := range grid[headerIdx+1:] {
		if len(row) <= columns.max() {
			continue
		}
		code := attention.CleanCell(row[columns.code])
		if code == "" {
			continue
		}
		date, err := attention.ParseROCDate(row[columns.date])
		if err != nil {
			result.Skipped++
			continue
		}
		result.Rows = append(result.Rows, attention.Row{
			Market: market,
			Code:   code,
			Name:   attention.CleanCell(row[columns.name]),
			Date:   date,
			Remark: attention.CleanText(row[columns.remark]),
		})
	}
	if len(result.Rows) == 0 {
		return nil, fmt.Errorf("%w: no data rows under header", ErrStructure)
	}
	return result, nil
}
