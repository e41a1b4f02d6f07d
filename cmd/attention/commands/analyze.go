package commands

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ycl-tw/attention-monitor/internal/attention"
	"github.com/ycl-tw/attention-monitor/internal/pipeline"
	"github.com/ycl-tw/attention-monitor/internal/records"
	"github.com/ycl-tw/attention-monitor/internal/report"
)

const exclusionPrompt = "請輸入今日已公布自結的股票代號（用空白分隔）："

var (
	analyzeDays               int
	analyzeDate               string
	analyzeOutput             string
	analyzeIncludeUntriggered bool
	analyzePrompt             bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "抓取兩市場公告並產生注意股票報表",
	Long: `Fetch attention disclosures from both venues, evaluate the trigger
rules and write the report.

這個命令會:
- 抓取 TWSE/TPEX 注意股票公告 (CSV 優先, HTML 備援)
- 限縮到最近 N 個交易日
- 評估觸發規則並輸出報表 (console + CSV)

Example:
  go run ./cmd/attention analyze
  go run ./cmd/attention analyze --days 6 --date 2026-01-21 --prompt`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().IntVar(&analyzeDays, "days", 0, "number of distinct trading dates to analyze (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeDate, "date", "", "reference date YYYY-MM-DD (default today)")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "", "CSV output path (default derived from window dates)")
	analyzeCmd.Flags().BoolVar(&analyzeIncludeUntriggered, "include-untriggered", false, "keep securities that fired no trigger")
	analyzeCmd.Flags().BoolVar(&analyzePrompt, "prompt", false, "prompt for additional announced codes")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	days := app.cfg.Days
	if analyzeDays > 0 {
		days = analyzeDays
	}

	endDate := time.Time{}
	if analyzeDate != "" {
		endDate, err = time.Parse("2006-01-02", analyzeDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q, use YYYY-MM-DD", analyzeDate)
		}
	}

	ref := endDate
	if ref.IsZero() {
		ref = time.Now().UTC()
	}

	stored, err := app.store.Load()
	if err != nil {
		return fmt.Errorf("load earnings records: %w", err)
	}
	excluded := records.AnnouncedIn(stored, ref)
	app.logger.WithFields(map[string]interface{}{
		"records":  len(stored),
		"excluded": len(excluded),
	}).Info("Loaded earnings records")

	if analyzePrompt {
		fmt.Print(exclusionPrompt)
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			for _, code := range attention.SplitCodes(scanner.Text()) {
				excluded[code] = struct{}{}
			}
		}
	}

	result, err := app.pipeline.Run(cmd.Context(), pipeline.RunOptions{
		EndDate:            endDate,
		Days:               days,
		Excluded:           excluded,
		IncludeUntriggered: analyzeIncludeUntriggered,
	})
	if err != nil {
		return err
	}
	for _, warning := range result.Warnings {
		app.logger.WithField("warning", warning).Warn("Venue degraded")
	}

	if err := report.WriteTable(os.Stdout, result.Records); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	outputPath := analyzeOutput
	if outputPath == "" {
		outputPath = report.DefaultFilename(app.cfg.OutputDir, result.WindowDates)
	}
	path, err := report.WriteCSV(result.Records, outputPath)
	if err != nil {
		return fmt.Errorf("write CSV: %w", err)
	}

	app.logger.WithFields(map[string]interface{}{
		"records": len(result.Records),
		"path":    path,
	}).Info("Report written")
	return nil
}
