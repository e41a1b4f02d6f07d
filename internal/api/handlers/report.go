package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ycl-tw/attention-monitor/internal/analysis"
	"github.com/ycl-tw/attention-monitor/internal/parser"
	"github.com/ycl-tw/attention-monitor/internal/pipeline"
	"github.com/ycl-tw/attention-monitor/internal/records"
	"github.com/ycl-tw/attention-monitor/pkg/logger"
)

// ReportHandler serves the aggregate attention report.
type ReportHandler struct {
	pipeline *pipeline.Pipeline
	store    *records.Store
	days     int
	logger   *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(p *pipeline.Pipeline, store *records.Store, days int, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		pipeline: p,
		store:    store,
		days:     days,
		logger:   log,
	}
}

type reportResponse struct {
	GeneratedAt time.Time         `json:"generated_at"`
	WindowDates []string          `json:"window_dates"`
	Warnings    []string          `json:"warnings,omitempty"`
	Records     []analysis.Record `json:"records"`
}

// GetReport runs one fetch+analyze pass and returns the aggregate records.
// GET /api/v1/report?days=6&include_untriggered=false
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	days := h.days
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}
	includeUntriggered := r.URL.Query().Get("include_untriggered") == "true"

	stored, err := h.store.Load()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load earnings records")
		respondError(w, http.StatusInternalServerError, "Failed to load earnings records")
		return
	}
	now := time.Now().UTC()

	result, err := h.pipeline.Run(ctx, pipeline.RunOptions{
		Days:               days,
		Excluded:           records.AnnouncedIn(stored, now),
		IncludeUntriggered: includeUntriggered,
	})
	if err != nil {
		h.logger.WithError(err).Error("Analysis run failed")
		if errors.Is(err, parser.ErrNoData) {
			respondError(w, http.StatusBadGateway, "No attention rows from any venue")
			return
		}
		respondError(w, http.StatusInternalServerError, "Analysis run failed")
		return
	}

	resp := reportResponse{
		GeneratedAt: now,
		Warnings:    result.Warnings,
		Records:     result.Records,
	}
	for _, d := range result.WindowDates {
		resp.WindowDates = append(resp.WindowDates, d.Format("2006-01-02"))
	}

	respondJSON(w, http.StatusOK, resp)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
