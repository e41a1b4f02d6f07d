package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ycl-tw/attention-monitor/internal/analysis"
)

// DefaultFilename derives the artifact name from the earliest and latest
// dates of the analysis window, e.g. output/attention_20260106_20260113.csv.
func DefaultFilename(outputDir string, windowDates []time.Time) string {
	if len(windowDates) == 0 {
		name := fmt.Sprintf("attention_%s.csv", time.Now().Format("20060102"))
		return filepath.Join(outputDir, name)
	}
	earliest, latest := windowDates[0], windowDates[0]
	for _, d := range windowDates[1:] {
		if d.Before(earliest) {
			earliest = d
		}
		if d.After(latest) {
			latest = d
		}
	}
	name := fmt.Sprintf("attention_%s_%s.csv",
		earliest.Format("20060102"), latest.Format("20060102"))
	return filepath.Join(outputDir, name)
}

// WriteCSV writes the artifact: UTF-8 with a byte-order mark so spreadsheet
// imports pick the right encoding, absent numerics as empty strings, codes
// guarded for Excel. Returns the written path.
func WriteCSV(records []analysis.Record, path string) (string, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString("\ufeff"); err != nil {
		return "", fmt.Errorf("write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(Columns); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, row := range buildRows(records, "", true) {
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("flush output: %w", err)
	}
	return path, nil
}
