// Package records keeps the self-disclosed earnings announcement records the
// exclusion set is derived from. Storage is a flat append-only CSV; the tool
// has no other persistent state.
package records

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const dateLayout = "20060102"

// Record is one earnings announcement: a security disclosed its EarningsMonth
// figures on AnnouncementDate.
type Record struct {
	Code             string
	EarningsMonth    string // YYYYMM
	AnnouncementDate time.Time
}

// Store reads and appends earnings records in a CSV file.
type Store struct {
	path string
}

// NewStore creates a store over the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads all records. A missing file is an empty store; rows that do not
// parse are skipped so a hand-edited file cannot poison a run.
func (s *Store) Load() ([]Record, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open records file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read records file: %w", err)
	}

	var records []Record
	for i, row := range rows {
		if len(row) < 3 {
			continue
		}
		code := strings.TrimSpace(strings.TrimPrefix(row[0], "\ufeff"))
		month := strings.TrimSpace(row[1])
		if i == 0 && code == "code" {
			continue // header
		}
		date, err := time.Parse(dateLayout, strings.TrimSpace(row[2]))
		if err != nil || code == "" || len(month) != 6 {
			continue
		}
		records = append(records, Record{
			Code:             code,
			EarningsMonth:    month,
			AnnouncementDate: date,
		})
	}
	return records, nil
}

// Append writes one record, creating the file (with header and BOM) on first
// use.
func (s *Store) Append(record Record) error {
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create records dir: %w", err)
		}
	}

	_, statErr := os.Stat(s.path)
	isNew := os.IsNotExist(statErr)

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open records file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if isNew {
		if _, err := file.WriteString("\ufeff"); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
		if err := writer.Write([]string{"code", "earnings_month", "announcement_date"}); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := writer.Write([]string{
		record.Code,
		record.EarningsMonth,
		record.AnnouncementDate.Format(dateLayout),
	}); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

// Exists reports whether an identical record is already stored.
func (s *Store) Exists(code, month string, date time.Time) (bool, error) {
	records, err := s.Load()
	if err != nil {
		return false, err
	}
	for _, r := range records {
		if r.Code == code && r.EarningsMonth == month && r.AnnouncementDate.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

// AnnouncedIn derives the exclusion set: codes with an announcement in the
// reference date's month, not later than the reference date itself.
func AnnouncedIn(records []Record, ref time.Time) map[string]struct{} {
	excluded := make(map[string]struct{})
	for _, r := range records {
		if r.AnnouncementDate.After(ref) {
			continue
		}
		if r.AnnouncementDate.Year() == ref.Year() && r.AnnouncementDate.Month() == ref.Month() {
			excluded[r.Code] = struct{}{}
		}
	}
	return excluded
}
