// Package parser turns the two venue document forms (CSV export and HTML
// page) into unified attention rows.
package parser

import "errors"

var (
	// ErrDecode marks content that does not decode under the declared
	// character encoding; the caller falls back to the HTML form.
	ErrDecode = errors.New("content does not decode under declared encoding")

	// ErrStructure marks a document without the expected table or columns;
	// venue-level failure, reported upward.
	ErrStructure = errors.New("expected table structure not found")

	// ErrNoData marks a run in which no venue yielded any row.
	ErrNoData = errors.New("no attention rows from any venue")
)
