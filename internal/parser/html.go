package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ycl-tw/attention-monitor/internal/attention"
)

var brTagRe = regexp.MustCompile(`(?i)<br\s*/?>`)

// ParseHTML parses the venue HTML page. The first table that yields a header
// row and at least one data row wins. TPEX renders repeated code/name cells
// as rowspan merges and multi-clause remarks as <br>-separated segments, so
// each table is expanded into a fully populated grid before schema mapping.
func ParseHTML(htmlText string, market attention.Market) (*Result, error) {
	// Turn <br> into text newlines up front so multi-clause remark cells
	// survive as one space-joined string after whitespace normalization.
	htmlText = brTagRe.ReplaceAllString(htmlText, "\n")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStructure, err)
	}

	var result *Result
	lastErr := fmt.Errorf("%w: no table in document", ErrStructure)
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		grid := expandTable(table)
		parsed, err := parseGrid(grid, market)
		if err != nil {
			lastErr = err
			return true
		}
		result = parsed
		return false
	})
	if result == nil {
		return nil, lastErr
	}
	return result, nil
}

// pendingSpan is the carry-forward state for one grid column while a rowspan
// is still covering rows below its origin.
type pendingSpan struct {
	text      string
	remaining int
}

// expandTable flattens a table into a 2D grid, propagating merged cells to
// every row and column they logically cover. Straight iterative fill:
// left to right within a row, top to bottom across rows.
func expandTable(table *goquery.Selection) [][]string {
	var grid [][]string
	var carry []*pendingSpan

	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var out []string
		col := 0

		fillCarried := func() {
			for col < len(carry) && carry[col] != nil {
				out = append(out, carry[col].text)
				carry[col].remaining--
				if carry[col].remaining <= 0 {
					carry[col] = nil
				}
				col++
			}
		}

		tr.ChildrenFiltered("td, th").Each(func(_ int, cell *goquery.Selection) {
			fillCarried()
			text := attention.CleanText(cell.Text())
			colspan := intAttr(cell, "colspan")
			rowspan := intAttr(cell, "rowspan")
			for span := 0; span < colspan; span++ {
				if span == 0 {
					out = append(out, text)
				} else {
					out = append(out, "")
				}
				if rowspan > 1 {
					for col >= len(carry) {
						carry = append(carry, nil)
					}
					carry[col] = &pendingSpan{text: text, remaining: rowspan - 1}
				}
				col++
			}
		})
		fillCarried()
		grid = append(grid, out)
	})
	return grid
}

func intAttr(cell *goquery.Selection, name string) int {
	raw, ok := cell.Attr(name)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
