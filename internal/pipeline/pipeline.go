// Package pipeline orchestrates one analysis run: fetch both venues with
// tabular-first fallback, combine rows, restrict to the caller window and
// evaluate the trigger rules.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/ycl-tw/attention-monitor/internal/analysis"
	"github.com/ycl-tw/attention-monitor/internal/attention"
	"github.com/ycl-tw/attention-monitor/internal/parser"
	"github.com/ycl-tw/attention-monitor/pkg/logger"
)

// lookbackDays is how far back the venue queries reach; generous so that six
// distinct trading dates are always covered across holidays.
const lookbackDays = 30

// VenueFetcher fetches one venue's disclosures in either document form.
// The pipeline tries the tabular form first and falls back to HTML once.
type VenueFetcher interface {
	FetchCSV(ctx context.Context, start, end time.Time) (*parser.Result, error)
	FetchHTML(ctx context.Context, start, end time.Time) (*parser.Result, error)
}

type venue struct {
	name    string
	fetcher VenueFetcher
}

// Pipeline runs the fetch-parse-analyze sequence.
type Pipeline struct {
	venues []venue
	logger *logger.Logger
}

// New creates a pipeline over the TWSE and TPEX fetchers.
func New(twseFetcher, tpexFetcher VenueFetcher, log *logger.Logger) *Pipeline {
	return &Pipeline{
		venues: []venue{
			{name: "TWSE", fetcher: twseFetcher},
			{name: "TPEX", fetcher: tpexFetcher},
		},
		logger: log,
	}
}

// RunOptions parameterizes one run.
type RunOptions struct {
	EndDate            time.Time // reference date; zero means today
	Days               int       // caller-facing window of distinct dates
	Excluded           map[string]struct{}
	IncludeUntriggered bool
}

// RunResult carries the aggregate records plus run diagnostics.
type RunResult struct {
	Records     []analysis.Record
	WindowDates []time.Time
	Warnings    []string
	RowCount    int
	Skipped     int
}

// Run executes one full analysis pass. A single venue failing is a warning;
// both venues yielding nothing is ErrNoData.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	end := opts.EndDate
	if end.IsZero() {
		end = time.Now().UTC().Truncate(24 * time.Hour)
	}
	start := end.AddDate(0, 0, -lookbackDays)

	result := &RunResult{}
	var rows []attention.Row
	for _, v := range p.venues {
		parsed, warnings := p.fetchVenue(ctx, v, start, end)
		result.Warnings = append(result.Warnings, warnings...)
		if parsed == nil {
			continue
		}
		rows = append(rows, parsed.Rows...)
		result.Skipped += parsed.Skipped
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w (between %s and %s)",
			parser.ErrNoData, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	result.RowCount = len(rows)

	filtered, windowDates := attention.FilterByLatestDates(rows, opts.Days)
	result.WindowDates = windowDates
	result.Records = analysis.BuildReport(filtered, opts.Excluded, analysis.Options{
		IncludeUntriggered: opts.IncludeUntriggered,
	})

	p.logger.WithFields(map[string]interface{}{
		"rows":    result.RowCount,
		"skipped": result.Skipped,
		"window":  len(windowDates),
		"records": len(result.Records),
	}).Info("Analysis run completed")

	return result, nil
}

// fetchVenue tries the tabular form, then falls back to HTML once. A venue
// failing both forms yields nil rows and the accumulated diagnostics.
func (p *Pipeline) fetchVenue(ctx context.Context, v venue, start, end time.Time) (*parser.Result, []string) {
	var warnings []string

	parsed, err := v.fetcher.FetchCSV(ctx, start, end)
	if err == nil {
		return parsed, nil
	}
	warnings = append(warnings, fmt.Sprintf("%s tabular form failed: %v", v.name, err))
	p.logger.WithError(err).WithField("venue", v.name).Warn("Tabular form failed, falling back to HTML")

	parsed, err = v.fetcher.FetchHTML(ctx, start, end)
	if err == nil {
		return parsed, warnings
	}
	warnings = append(warnings, fmt.Sprintf("%s HTML form failed: %v", v.name, err))
	p.logger.WithError(err).WithField("venue", v.name).Error("Venue failed both document forms")

	return nil, warnings
}
