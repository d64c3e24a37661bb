package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks. The engine itself is pure and always
// healthy; only the optional collaborators are probed.
type Service struct {
	catalog CatalogPinger
	suggest SuggestChecker
}

// New creates a Service. Either collaborator can be nil.
func New(catalog CatalogPinger, suggest SuggestChecker) *Service {
	return &Service{catalog: catalog, suggest: suggest}
}

// Check runs health checks against all wired components.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{"engine": CheckOK}

	if s.catalog != nil {
		if err := s.catalog.Ping(ctx); err != nil {
			checks["catalog"] = CheckError
		} else {
			checks["catalog"] = CheckOK
		}
	}

	if s.suggest != nil {
		if err := s.suggest.HealthCheck(ctx); err != nil {
			checks["suggest"] = CheckError
		} else {
			checks["suggest"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
