// Package match holds the outcome of resolving one candidate against a catalog.
package match

import "github.com/triporama/placedex/internal/domain/place"

// Provenance records which catalog a match came from.
type Provenance string

const (
	// FromNone means no eligible record was found.
	FromNone Provenance = "none"
	// FromLive means the record came from the live provider query.
	FromLive Provenance = "live"
	// FromCache means the record came from the cached catalog store.
	FromCache Provenance = "cache"
)

// Result links a candidate to its best eligible catalog record, if any.
// Record is nil and Score is 0 when MatchedFrom is FromNone.
type Result struct {
	Candidate   place.Candidate
	Record      *place.Record
	Score       float64
	MatchedFrom Provenance
}

// Matched reports whether an eligible record was found.
func (r Result) Matched() bool {
	return r.Record != nil && r.MatchedFrom != FromNone
}
