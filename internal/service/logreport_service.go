package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/divvyup/divvyup/internal/logpipe"
	"github.com/divvyup/divvyup/internal/models"
)

// LogReportService exposes the log ingestion pipeline over JSON HTTP.
type LogReportService struct {
	pipeline *logpipe.Pipeline
}

// NewLogReportService creates a LogReportService backed by the pipeline.
func NewLogReportService(pipeline *logpipe.Pipeline) *LogReportService {
	return &LogReportService{pipeline: pipeline}
}

// RegisterRoutes attaches the log report endpoint to the router.
func (s *LogReportService) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/v1/logs/report", s.handleLogReport).Methods(http.MethodPost)
}

type logReportRequest struct {
	ParallelFileProcessingCount int      `json:"parallelFileProcessingCount"`
	LogFiles                    []string `json:"logFiles"`
}

type logReportResponse struct {
	Response []models.BucketEntry `json:"response"`
}

func (s *LogReportService) handleLogReport(w http.ResponseWriter, r *http.Request) {
	var req logReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	report, err := s.pipeline.Process(r.Context(), req.LogFiles, req.ParallelFileProcessingCount)
	if err != nil {
		slog.Error("Log processing failed", "files", len(req.LogFiles), "error", err)
		writeFailure(w, logReportStatus(err), err.Error())
		return
	}

	slog.Info("Log processing done", "files", len(req.LogFiles), "buckets", len(report))
	writeJSON(w, http.StatusOK, logReportResponse{Response: report})
}

// logReportStatus maps the pipeline's failure kinds onto HTTP statuses:
// bad requests are the caller's to fix, upstream fetch failures are a bad
// gateway, and unparseable upstream content is unprocessable.
func logReportStatus(err error) int {
	switch {
	case errors.Is(err, logpipe.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, logpipe.ErrFetch):
		return http.StatusBadGateway
	case errors.Is(err, logpipe.ErrParse):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
