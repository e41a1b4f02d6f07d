package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/ycl-tw/attention-monitor/internal/pipeline"
	"github.com/ycl-tw/attention-monitor/internal/records"
	"github.com/ycl-tw/attention-monitor/internal/report"
	"github.com/ycl-tw/attention-monitor/pkg/logger"
)

// DailyReportJob runs one analysis pass and writes the CSV artifact.
type DailyReportJob struct {
	pipeline  *pipeline.Pipeline
	store     *records.Store
	days      int
	outputDir string
	schedule  string
	logger    *logger.Logger
}

// NewDailyReportJob creates the daily report job
func NewDailyReportJob(
	p *pipeline.Pipeline,
	store *records.Store,
	days int,
	outputDir string,
	schedule string,
	log *logger.Logger,
) *DailyReportJob {
	return &DailyReportJob{
		pipeline:  p,
		store:     store,
		days:      days,
		outputDir: outputDir,
		schedule:  schedule,
		logger:    log,
	}
}

// Name returns the job name
func (j *DailyReportJob) Name() string {
	return "daily-attention-report"
}

// Schedule returns the cron schedule expression
func (j *DailyReportJob) Schedule() string {
	return j.schedule
}

// Run executes one analysis pass and writes the artifact.
func (j *DailyReportJob) Run(ctx context.Context) error {
	stored, err := j.store.Load()
	if err != nil {
		return fmt.Errorf("load earnings records: %w", err)
	}
	now := time.Now().UTC()

	result, err := j.pipeline.Run(ctx, pipeline.RunOptions{
		Days:     j.days,
		Excluded: records.AnnouncedIn(stored, now),
	})
	if err != nil {
		return fmt.Errorf("analysis run: %w", err)
	}

	for _, warning := range result.Warnings {
		j.logger.WithField("warning", warning).Warn("Venue degraded during scheduled run")
	}

	path, err := report.WriteCSV(result.Records, report.DefaultFilename(j.outputDir, result.WindowDates))
	if err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"records": len(result.Records),
		"path":    path,
	}).Info("Daily attention report written")
	return nil
}
