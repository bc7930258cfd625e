// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/telerisk/internal/app"
	"github.com/okian/telerisk/internal/domain/batch"
	"github.com/okian/telerisk/internal/domain/model"
	"github.com/okian/telerisk/internal/domain/report"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	AssessProject(ctx context.Context, p model.ProjectData, sectorIDs []string) (*report.Report, error)
	AssessBatch(ctx context.Context, reqs []batch.Request) (*service.BatchResult, error)
	SampleProject(kind string) (model.ProjectData, error)
	SectorInformation(ctx context.Context) []service.SectorInfo
	UAEContext(ctx context.Context) service.UAEContext
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	assessHandler  *AssessHandler
	catalogHandler *CatalogHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		assessHandler:  NewAssessHandler(deps),
		catalogHandler: NewCatalogHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/sectors", MetricsMiddleware(s.catalogHandler.HandleSectors, "sectors"))
	mux.HandleFunc("/context", MetricsMiddleware(s.catalogHandler.HandleContext, "context"))
	mux.HandleFunc("/samples", MetricsMiddleware(s.catalogHandler.HandleListSamples, "samples"))
	mux.HandleFunc("/samples/", MetricsMiddleware(s.assessHandler.HandleSample, "sample"))
	mux.HandleFunc("/assess", MetricsMiddleware(s.assessHandler.HandleAssess, "assess"))
	mux.HandleFunc("/assess/batch", MetricsMiddleware(s.assessHandler.HandleBatch, "assess_batch"))
}

type errorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Issues  []string `json:"issues,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	resp := errorResponse{Code: code, Message: msg}
	if err != nil {
		resp.Message = err.Error()
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			resp.Issues = verr.Issues
		}
	}
	writeJSON(w, status, resp)
}

// writeServiceError translates service errors into status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidProject):
		writeError(w, http.StatusBadRequest, "invalid_project", err)
	case errors.Is(err, service.ErrBatchTooLarge):
		writeError(w, http.StatusBadRequest, "batch_too_large", err)
	case errors.Is(err, service.ErrUnknownSample):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(w, http.StatusGatewayTimeout, "timeout", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
