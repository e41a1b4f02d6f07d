package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ycl-tw/attention-monitor/internal/scheduler"
	"github.com/ycl-tw/attention-monitor/internal/scheduler/jobs"
)

var scheduleSpec string

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "以排程定期產生報表",
	Long: `Run the analysis pipeline on a cron schedule and write the CSV
artifact after each pass.

Example:
  go run ./cmd/attention schedule
  go run ./cmd/attention schedule --cron "0 0 15 * * 1-5"`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVar(&scheduleSpec, "cron", "", "cron spec with seconds field (default from config)")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}

	spec := app.cfg.CronSpec
	if scheduleSpec != "" {
		spec = scheduleSpec
	}

	sched := scheduler.New(app.logger)
	job := jobs.NewDailyReportJob(
		app.pipeline,
		app.store,
		app.cfg.Days,
		app.cfg.OutputDir,
		spec,
		app.logger,
	)
	if err := sched.AddJob(job); err != nil {
		return err
	}

	sched.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	app.logger.WithField("signal", sig.String()).Info("Shutdown signal received")

	sched.Stop()
	return nil
}
