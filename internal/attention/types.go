package attention

import "time"

// Market identifies the disclosing venue.
type Market string

const (
	// MarketTSE is the Taiwan Stock Exchange (上市).
	MarketTSE Market = "TSE"
	// MarketOTC is the Taipei Exchange (上櫃).
	MarketOTC Market = "OTC"
)

// Row is a single attention-stock disclosure entry in the unified schema.
// Dates are always canonical (common era, UTC midnight) by the time a row
// leaves the parser; ROC-calendar tokens never escape that boundary.
type Row struct {
	Market Market
	Code   string
	Name   string
	Date   time.Time
	Remark string // 注意交易資訊 free text, whitespace-normalized
}

// AnnotatedRow is a Row plus the signals derived from its remark text.
// Derived fields are re-derivable and never written back to the row.
type AnnotatedRow struct {
	Row

	VolumeMultiple *float64 // 放大N倍, max over all matches
	GainPercent    *float64 // 漲幅N%, max over all matches
	PrimaryClause  bool     // 第一款 / 累積收盤價漲幅 basis
	Clause13       bool     // cites any of 第一到第三款
	Clause10       bool     // cites 第十款
}

// Annotate derives all remark signals for a row.
func Annotate(row Row) AnnotatedRow {
	return AnnotatedRow{
		Row:            row,
		VolumeMultiple: MaxVolumeMultiple(row.Remark),
		GainPercent:    MaxGainPercent(row.Remark),
		PrimaryClause:  HasPrimaryClause(row.Remark),
		Clause13:       HasClause13(row.Remark),
		Clause10:       HasClause10(row.Remark),
	}
}
