package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ycl-tw/attention-monitor/internal/records"
)

// recordsCmd groups the earnings record subcommands
var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "自結公告紀錄管理",
	Long: `Manage the self-disclosed earnings announcement records that feed
the exclusion set.

Example:
  go run ./cmd/attention records add 2330 202512 2026-01-05
  go run ./cmd/attention records list`,
}

// recordsAddCmd appends one record
var recordsAddCmd = &cobra.Command{
	Use:   "add CODE MONTH DATE",
	Short: "新增一筆自結公告紀錄",
	Args:  cobra.ExactArgs(3),
	RunE:  runRecordsAdd,
}

// recordsListCmd prints all records
var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "列出所有自結公告紀錄",
	Args:  cobra.NoArgs,
	RunE:  runRecordsList,
}

func init() {
	rootCmd.AddCommand(recordsCmd)
	recordsCmd.AddCommand(recordsAddCmd)
	recordsCmd.AddCommand(recordsListCmd)
}

func runRecordsAdd(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}

	code, month, dateStr := args[0], args[1], args[2]
	if len(month) != 6 {
		return fmt.Errorf("month must be YYYYMM, got %q", month)
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD, got %q", dateStr)
	}

	exists, err := app.store.Exists(code, month, date)
	if err != nil {
		return err
	}
	if exists {
		app.logger.WithField("code", code).Info("Record already exists, skipping")
		return nil
	}

	if err := app.store.Append(records.Record{
		Code:             code,
		EarningsMonth:    month,
		AnnouncementDate: date,
	}); err != nil {
		return err
	}

	app.logger.WithFields(map[string]interface{}{
		"code":  code,
		"month": month,
		"date":  dateStr,
	}).Info("Record added")
	return nil
}

func runRecordsList(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}

	stored, err := app.store.Load()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "代號\t自結月份\t公告日")
	for _, r := range stored {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Code, r.EarningsMonth, r.AnnouncementDate.Format("2006-01-02"))
	}
	return tw.Flush()
}
