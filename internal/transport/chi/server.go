// Package chi exposes the resolution engine over HTTP. The engine stays
// pure; this layer owns decoding, validation, error mapping, and metrics.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/triporama/placedex/internal/domain"
	"github.com/triporama/placedex/internal/domain/place"
	"github.com/triporama/placedex/internal/metrics"
	dedupeuc "github.com/triporama/placedex/internal/usecase/dedupe"
	displayuc "github.com/triporama/placedex/internal/usecase/display"
	healthuc "github.com/triporama/placedex/internal/usecase/health"
	"github.com/triporama/placedex/internal/usecase/merge"
	"github.com/triporama/placedex/internal/usecase/rank"
	"github.com/triporama/placedex/internal/usecase/resolve"
)

const maxBatchCandidates = 200

// Catalog is the stored-catalog surface the server needs: a snapshot for
// dedupe planning when the request supplies no records.
type Catalog interface {
	ListAll(ctx context.Context) ([]place.Record, error)
}

// Suggester generates unverified place candidates for a city and category.
type Suggester interface {
	Suggest(ctx context.Context, city, country, category string) ([]place.Candidate, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the engine services to HTTP handlers.
type Server struct {
	resolver      *resolve.Service
	allocator     *displayuc.Service
	detector      *dedupeuc.Service
	ranker        *rank.Service
	planner       *merge.Planner
	catalog       Catalog   // may be nil
	suggester     Suggester // may be nil
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates the HTTP API server. catalog may be nil, in which case
// dedupe planning requires records in the request body.
func NewServer(
	resolver *resolve.Service,
	allocator *displayuc.Service,
	detector *dedupeuc.Service,
	ranker *rank.Service,
	planner *merge.Planner,
	catalog Catalog,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		resolver:  resolver,
		allocator: allocator,
		detector:  detector,
		ranker:    ranker,
		planner:   planner,
		catalog:   catalog,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, "not_found"),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, "rate_limited"),
		sentinelHandler(domain.ErrSuggestQuotaExceeded, http.StatusPaymentRequired, "suggest_quota_exceeded"),
		sentinelHandler(domain.ErrSuggestProviderError, http.StatusBadGateway, "suggest_provider_error"),
		sentinelHandler(domain.ErrSuggestNotConfigured, http.StatusNotImplemented, "suggest_not_configured"),
	}
	return s
}

// WithSuggester wires an optional candidate suggestion provider.
func (s *Server) WithSuggester(suggester Suggester) *Server {
	s.suggester = suggester
	return s
}

// Routes registers all handlers on the given router.
func (s *Server) Routes(r chirouter.Router) {
	r.Route("/api/v1", func(r chirouter.Router) {
		r.Post("/resolve", s.Resolve)
		r.Post("/dedupe/plan", s.DedupePlan)
		r.Post("/suggest", s.Suggest)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Resolve handles POST /api/v1/resolve.
func (s *Server) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	if len(req.Candidates) == 0 || len(req.Candidates) > maxBatchCandidates {
		writeError(w, http.StatusBadRequest, "validation_failed",
			fmt.Sprintf("candidates count must be between 1 and %d", maxBatchCandidates))
		return
	}

	candidates := make([]place.Candidate, len(req.Candidates))
	for i, c := range req.Candidates {
		candidates[i] = candidateFromDTO(c)
	}
	live := make([]place.Record, len(req.LiveRecords))
	for i, rec := range req.LiveRecords {
		live[i] = recordFromDTO(rec)
	}
	cached := make([]place.Record, len(req.CachedRecords))
	for i, rec := range req.CachedRecords {
		cached[i] = recordFromDTO(rec)
	}
	categories := categoriesFromDTO(req.Categories)

	start := time.Now()
	results, unmatched := s.resolver.MatchBatch(candidates, live, cached)
	allocation := s.allocator.Allocate(results, unmatched, categories)

	var titles []string
	for _, spec := range categories {
		titles = append(titles, spec.Title)
	}
	needsSupplement := s.resolver.NeedsSupplement(results, titles)

	metrics.ResolveDuration.Observe(time.Since(start).Seconds())
	for _, res := range results {
		metrics.ResolveCandidatesTotal.WithLabelValues(string(res.MatchedFrom)).Inc()
	}
	if needsSupplement {
		metrics.SupplementSignalsTotal.Inc()
	}

	resp := resolveResponse{
		Results:         make([]matchResultDTO, len(results)),
		Buckets:         bucketsToDTO(allocation),
		NeedsSupplement: needsSupplement,
	}
	for i, res := range results {
		resp.Results[i] = matchResultToDTO(res)
	}
	for _, cand := range unmatched {
		resp.Unmatched = append(resp.Unmatched, candidateToDTO(cand))
	}

	writeJSON(w, http.StatusOK, resp)
}

// DedupePlan handles POST /api/v1/dedupe/plan.
func (s *Server) DedupePlan(w http.ResponseWriter, r *http.Request) {
	var req dedupePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	var records []place.Record
	if len(req.Records) > 0 {
		records = make([]place.Record, len(req.Records))
		for i, rec := range req.Records {
			records[i] = recordFromDTO(rec)
		}
	} else {
		if s.catalog == nil {
			writeError(w, http.StatusBadRequest, "validation_failed",
				"records are required when no catalog store is configured")
			return
		}
		var err error
		records, err = s.catalog.ListAll(r.Context())
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
	}

	groups := s.detector.FindGroups(records)

	byID := make(map[string]place.Record, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}
	for i := range groups {
		groups[i] = s.ranker.AssignCanonical(groups[i], byID)
	}

	deleteIDs := s.planner.PlanDeletions(groups)

	metrics.DedupeGroupsFound.Set(float64(len(groups)))
	metrics.DedupeDeletionsPlanned.Set(float64(len(deleteIDs)))

	writeJSON(w, http.StatusOK, dedupePlanResponse{
		Groups:    groupsToDTO(groups),
		DeleteIDs: deleteIDs,
	})
}

// Suggest handles POST /api/v1/suggest.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	if req.City == "" || req.Category == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "city and category are required")
		return
	}

	if s.suggester == nil {
		s.handleDomainError(w, domain.ErrSuggestNotConfigured)
		return
	}

	candidates, err := s.suggester.Suggest(r.Context(), req.City, req.Country, req.Category)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := suggestResponse{Candidates: make([]candidateDTO, len(candidates))}
	for i, c := range candidates {
		resp.Candidates[i] = candidateToDTO(c)
	}
	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrRateLimited,
		domain.ErrSuggestQuotaExceeded,
		domain.ErrSuggestProviderError,
		domain.ErrSuggestNotConfigured,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
