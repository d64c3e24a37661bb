package health

import "context"

// CatalogPinger checks catalog store availability.
type CatalogPinger interface {
	Ping(ctx context.Context) error
}

// SuggestChecker checks suggestion provider availability.
type SuggestChecker interface {
	HealthCheck(ctx context.Context) error
}
