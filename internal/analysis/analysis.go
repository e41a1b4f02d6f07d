// Package analysis evaluates the attention-stock trigger rules over the
// combined disclosure rows of both venues and produces one aggregate record
// per security.
package analysis

import (
	"sort"
	"strings"
	"time"

	"github.com/ycl-tw/attention-monitor/internal/attention"
)

// WindowSize is the number of most recent distinct trading dates the trigger
// rules look at. Engine-internal; independent of the caller-facing --days
// restriction applied before analysis.
const WindowSize = 6

// Trigger reason strings, in output order.
const (
	ReasonTripleAttention = "近六日三次注意"
	ReasonLatestClause13  = "昨日第一到第三款"
	ReasonSeparator       = "；"
)

// Options controls report construction.
type Options struct {
	// IncludeUntriggered keeps aggregate records whose security fired no
	// trigger. Off by default: only flagged securities surface.
	IncludeUntriggered bool
}

// Record is the per-security aggregate produced by one analysis run.
type Record struct {
	Market            attention.Market `json:"market"`
	Code              string           `json:"code"`
	Name              string           `json:"name"`
	LastAttentionDate time.Time        `json:"last_attention_date"`
	TriggerReasons    []string         `json:"trigger_reasons"`
	OccurrenceCount   int              `json:"occurrence_count"`
	MaxVolumeMultiple *float64         `json:"max_volume_multiple,omitempty"`
	MaxGainPercent    *float64         `json:"max_gain_percent,omitempty"`
	PrimaryClauseEver bool             `json:"primary_clause_ever"`
	Status            Status           `json:"status"`
	Risk              Risk             `json:"risk"`
}

// Reason joins the fired trigger reasons with the full-width separator.
func (r Record) Reason() string {
	return strings.Join(r.TriggerReasons, ReasonSeparator)
}

// Triggered reports whether any trigger fired for this record.
func (r Record) Triggered() bool {
	return len(r.TriggerReasons) > 0
}

type groupKey struct {
	market attention.Market
	code   string
}

// BuildReport evaluates the trigger rules over the combined row set and
// returns one record per (market, code), sorted by market (TSE first) then
// code. The excluded set holds codes whose earnings are already announced.
//
// The two "latest date" notions are deliberately separate: the trading-date
// window comes from the combined rows of both venues, while the clause 1-3
// rule keys on the single most recent date present in TSE rows overall.
func BuildReport(rows []attention.Row, excluded map[string]struct{}, opts Options) []Record {
	if len(rows) == 0 {
		return nil
	}

	window := attention.LatestDates(rows, WindowSize)
	windowSet := make(map[time.Time]struct{}, len(window))
	for _, d := range window {
		windowSet[d] = struct{}{}
	}

	var tseLatest time.Time
	for _, row := range rows {
		if row.Market == attention.MarketTSE && row.Date.After(tseLatest) {
			tseLatest = row.Date
		}
	}

	grouped := make(map[groupKey][]attention.AnnotatedRow)
	for _, row := range rows {
		key := groupKey{market: row.Market, code: row.Code}
		grouped[key] = append(grouped[key], attention.Annotate(row))
	}

	var records []Record
	for key, items := range grouped {
		if IsWarrant(key.code) {
			continue
		}

		last := items[0]
		for _, item := range items[1:] {
			if item.Date.After(last.Date) {
				last = item
			}
		}

		count := 0
		for _, item := range items {
			if _, inWindow := windowSet[item.Date]; !inWindow {
				continue
			}
			// Clause 10 disclosures never count toward the window rule.
			if item.Clause10 {
				continue
			}
			count++
		}

		latestClause13 := false
		if key.market == attention.MarketTSE && !tseLatest.IsZero() {
			for _, item := range items {
				if item.Date.Equal(tseLatest) && item.Clause13 {
					latestClause13 = true
					break
				}
			}
		}

		var reasons []string
		if count >= 3 {
			reasons = append(reasons, ReasonTripleAttention)
		}
		if latestClause13 {
			reasons = append(reasons, ReasonLatestClause13)
		}

		if len(reasons) == 0 && !opts.IncludeUntriggered {
			continue
		}

		record := Record{
			Market:            key.market,
			Code:              key.code,
			Name:              last.Name,
			LastAttentionDate: last.Date,
			TriggerReasons:    reasons,
			OccurrenceCount:   count,
		}
		for _, item := range items {
			record.MaxVolumeMultiple = maxValue(record.MaxVolumeMultiple, item.VolumeMultiple)
			record.MaxGainPercent = maxValue(record.MaxGainPercent, item.GainPercent)
			if item.PrimaryClause {
				record.PrimaryClauseEver = true
			}
		}
		record.Status, record.Risk = AssignStatus(key.code, excluded)

		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Market != records[j].Market {
			return marketOrder(records[i].Market) < marketOrder(records[j].Market)
		}
		return records[i].Code < records[j].Code
	})
	return records
}

func marketOrder(m attention.Market) int {
	switch m {
	case attention.MarketTSE:
		return 0
	case attention.MarketOTC:
		return 1
	default:
		return 99
	}
}

func maxValue(current, candidate *float64) *float64 {
	if candidate == nil {
		return current
	}
	if current == nil || *candidate > *current {
		v := *candidate
		return &v
	}
	return current
}
