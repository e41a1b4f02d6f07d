// Package tpex fetches attention-stock disclosures from the Taipei Exchange
// (上櫃).
package tpex

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

const bulletinPath = "/www/zh-tw/bulletin/attention"

// Client handles communication with the TPEX bulletin endpoint.
// TPEX 注意股票公告只由此客戶端取得。
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new TPEX client
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

func (c *Client) bulletinURL(start, end time.Time, response string) string {
	params := url.Values{}
	params.Set("startDate", start.Format("2006/01/02"))
	params.Set("endDate", end.Format("2006/01/02"))
	params.Set("code", "")
	params.Set("cate", "")
	params.Set("type", "all")
	params.Set("order", "date")
	params.Set("id", "")
	params.Set("response", response)
	return fmt.Sprintf("%s%s?%s", c.baseURL, bulletinPath, params.Encode())
}

// FetchCSV fetches and parses the tabular export (declared cp950).
func (c *Client) FetchCSV(ctx context.Context, start, end time.Time) (*parser.Result, error) {
	raw, err := c.httpClient.GetBytes(ctx, c.bulletinURL(start, end, "csv"))
	if err != nil {
		return nil, fmt.Errorf("TPEX CSV fetch failed: %w", err)
	}
	text, err := parser.DecodeBig5(raw)
	if err != nil {
		return nil, fmt.Errorf("TPEX CSV decode failed: %w", err)
	}
	result, err := parser.ParseCSV(text, attention.MarketOTC)
	if err != nil {
		return nil, fmt.Errorf("TPEX CSV parse failed: %w", err)
	}
	c.logRows("csv", result)
	return result, nil
}

// FetchHTML fetches and parses the HTML form. The TPEX page renders merged
// code/name cells, which the parser expands before schema mapping.
func (c *Client) FetchHTML(ctx context.Context, start, end time.Time) (*parser.Result, error) {
	raw, err := c.httpClient.GetBytes(ctx, c.bulletinURL(start, end, "html"))
	if err != nil {
		return nil, fmt.Errorf("TPEX HTML fetch failed: %w", err)
	}
	result, err := parser.ParseHTML(string(raw), attention.MarketOTC)
	if err != nil {
		return nil, fmt.Errorf("TPEX HTML parse failed: %w", err)
	}
	c.logRows("html", result)
	return result, nil
}

func (c *Client) logRows(format string, result *parser.Result) {
	c.logger.WithFields(map[string]interface{}{
		"venue":   "TPEX",
		"format":  format,
		"rows":    len(result.Rows),
		"skipped": result.Skipped,
	}).Debug("Fetched attention rows")
}
