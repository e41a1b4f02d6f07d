package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ycl-tw/attention-monitor/internal/api"
	"github.com/ycl-tw/attention-monitor/internal/api/handlers"
)

var apiPort string

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "啟動報表 API 伺服器",
	Long: `Start the read-only report API server.

Endpoints:
  GET /health          - Health check
  GET /api/v1/report   - Run one analysis pass and return the aggregate records

Example:
  go run ./cmd/attention api
  go run ./cmd/attention api --port 8080`,
	RunE: runAPIServer,
}

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default from config)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	app, err := newAppContext()
	if err != nil {
		return err
	}
	if apiPort != "" {
		app.cfg.Port = apiPort
	}

	reportHandler := handlers.NewReportHandler(app.pipeline, app.store, app.cfg.Days, app.logger)
	router := api.NewRouter(reportHandler, app.logger)
	server := api.New(app.cfg, app.logger, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		app.logger.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
