package commands

import (
	"github.com/spf13/cobra"

	"github.com/ycl-tw/attention-monitor/internal/external/tpex"
	"github.com/ycl-tw/attention-monitor/internal/external/twse"
	"github.com/ycl-tw/attention-monitor/internal/pipeline"
	"github.com/ycl-tw/attention-monitor/internal/records"
	"github.com/ycl-tw/attention-monitor/pkg/config"
	"github.com/ycl-tw/attention-monitor/pkg/httputil"
	"github.com/ycl-tw/attention-monitor/pkg/logger"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "attention",
	Short: "注意股票監控 - TWSE/TPEX attention stock monitor",
	Long: `Attention stock monitor

上市/上櫃注意股票公告的抓取、正規化與觸發規則分析。

Usage:
  go run ./cmd/attention [command]

Examples:
  go run ./cmd/attention analyze
  go run ./cmd/attention analyze --days 6 --date 2026-01-21
  go run ./cmd/attention api
  go run ./cmd/attention schedule
  go run ./cmd/attention records add 2330 202512 2026-01-05`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// appContext bundles the wiring every subcommand needs.
type appContext struct {
	cfg      *config.Config
	logger   *logger.Logger
	pipeline *pipeline.Pipeline
	store    *records.Store
}

// newAppContext loads config and wires the pipeline dependencies.
func newAppContext() (*appContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)
	httpClient := httputil.New(cfg, log)

	twseClient := twse.NewClient(httpClient, log, cfg.TWSE.BaseURL)
	tpexClient := tpex.NewClient(httpClient, log, cfg.TPEX.BaseURL)

	return &appContext{
		cfg:      cfg,
		logger:   log,
		pipeline: pipeline.New(twseClient, tpexClient, log),
		store:    records.NewStore(cfg.RecordsFile),
	}, nil
}
