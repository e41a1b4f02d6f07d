// Package twse fetches attention-stock disclosures from the Taiwan Stock
// Exchange (上市).
package twse

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/ycl-tw/attention-monitor/internal/attention"
	"github.com/ycl-tw/attention-monitor/internal/parser"
	"github.com/ycl-tw/attention-monitor/pkg/httputil"
	"github.com/ycl-tw/attention-monitor/pkg/logger"
)

const noticePath = "/rwd/zh/announcement/notice"

// Client handles communication with the TWSE announcement endpoint.
// TWSE 注意股票公告只由此客戶端取得。
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new TWSE client
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

func (c *Client) noticeURL(start, end time.Time, response string) string {
	params := url.Values{}
	params.Set("querytype", "1")
	params.Set("stockNo", "")
	params.Set("selectType", "")
	params.Set("startDate", start.Format("20060102"))
	params.Set("endDate", end.Format("20060102"))
	params.Set("sortKind", "STKNO")
	params.Set("response", response)
	return fmt.Sprintf("%s%s?%s", c.baseURL, noticePath, params.Encode())
}

// FetchCSV fetches and parses the tabular export. The export is declared
// cp950 and decoded before parsing; a decode failure tells the caller to
// fall back to the HTML form.
func (c *Client) FetchCSV(ctx context.Context, start, end time.Time) (*parser.Result, error) {
	raw, err := c.httpClient.GetBytes(ctx, c.noticeURL(start, end, "csv"))
	if err != nil {
		return nil, fmt.Errorf("TWSE CSV fetch failed: %w", err)
	}
	text, err := parser.DecodeBig5(raw)
	if err != nil {
		return nil, fmt.Errorf("TWSE CSV decode failed: %w", err)
	}
	result, err := parser.ParseCSV(text, attention.MarketTSE)
	if err != nil {
		return nil, fmt.Errorf("TWSE CSV parse failed: %w", err)
	}
	c.logRows("csv", result)
	return result, nil
}

// FetchHTML fetches and parses the HTML form. Always UTF-8.
func (c *Client) FetchHTML(ctx context.Context, start, end time.Time) (*parser.Result, error) {
	raw, err := c.httpClient.GetBytes(ctx, c.noticeURL(start, end, "html"))
	if err != nil {
		return nil, fmt.Errorf("TWSE HTML fetch failed: %w", err)
	}
	result, err := parser.ParseHTML(string(raw), attention.MarketTSE)
	if err != nil {
		return nil, fmt.Errorf("TWSE HTML parse failed: %w", err)
	}
	c.logRows("html", result)
	return result, nil
}

func (c *Client) logRows(format string, result *parser.Result) {
	c.logger.WithFields(map[string]interface{}{
		"venue":   "TWSE",
		"format":  format,
		"rows":    len(result.Rows),
		"skipped": result.Skipped,
	}).Debug("Fetched attention rows")
}
