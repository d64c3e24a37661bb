// Package rank scores authoritative records by completeness, provenance, and
// freshness, and picks canonical records within duplicate groups.
package rank

import (
	"time"

	"github.com/triporama/placedex/internal/domain/dedupe"
	"github.com/triporama/placedex/internal/domain/place"
)

// Completeness and freshness weights. The absolute values only matter
// relative to each other; they order records within one grouping pass.
const (
	externalIDBonus   = 100.0
	ratingBonus       = 50.0
	ratingCountCap    = 50.0
	openingHoursBonus = 30.0
	coverImageBonus   = 20.0
	recencyCap        = 50.0
)

// sourceTierBonus is the fixed trust table per provenance tier.
var sourceTierBonus = map[place.Source]float64{
	place.SourceProviderImport: 100,
	place.SourcePartnerLink:    80,
	place.SourceEditorial:      70,
	place.SourceCommunity:      50,
	place.SourceMock:           10,
	place.SourceSeed:           5,
}

// Service is the record ranker.
type Service struct {
	now func() time.Time
}

// New creates a ranker using the wall clock.
func New() *Service {
	return &Service{now: time.Now}
}

// NewWithClock creates a ranker with an injected clock, for deterministic
// recency scoring.
func NewWithClock(now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{now: now}
}

// Score returns the deterministic weighted sum for one record.
func (s *Service) Score(rec place.Record) float64 {
	var score float64

	if rec.ExternalID != "" {
		score += externalIDBonus
	}
	if rec.HasRating() {
		score += ratingBonus
		countBonus := float64(rec.RatingCount) / 10
		if countBonus > ratingCountCap {
			countBonus = ratingCountCap
		}
		score += countBonus
	}
	if rec.OpeningHours != "" {
		score += openingHoursBonus
	}
	if rec.CoverImage != "" {
		score += coverImageBonus
	}

	score += sourceTierBonus[rec.Source] // unknown tiers map to 0

	score += s.recencyBonus(rec.UpdatedAt)

	return score
}

// recencyBonus decays one point per day since the last update, floored at 0.
// A zero UpdatedAt earns nothing; a future timestamp earns the full cap.
func (s *Service) recencyBonus(updatedAt time.Time) float64 {
	if updatedAt.IsZero() {
		return 0
	}
	days := s.now().Sub(updatedAt).Hours() / 24
	if days < 0 {
		days = 0
	}
	bonus := recencyCap - days
	if bonus < 0 {
		return 0
	}
	return bonus
}

// PickCanonical returns the ID of the highest-scoring record. Ties keep the
// first record in input order. Empty input yields "".
func (s *Service) PickCanonical(records []place.Record) string {
	if len(records) == 0 {
		return ""
	}
	bestID := records[0].ID
	bestScore := s.Score(records[0])
	for _, rec := range records[1:] {
		if score := s.Score(rec); score > bestScore {
			bestID = rec.ID
			bestScore = score
		}
	}
	return bestID
}

// AssignCanonical re-picks a group's canonical from the supplied record
// index. Members missing from the index keep the group unchanged — the
// canonical must always be a member the caller can account for.
func (s *Service) AssignCanonical(g dedupe.Group, byID map[string]place.Record) dedupe.Group {
	members := make([]place.Record, 0, len(g.RecordIDs))
	for _, id := range g.RecordIDs {
		rec, ok := byID[id]
		if !ok {
			return g
		}
		members = append(members, rec)
	}
	if canonical := s.PickCanonical(members); canonical != "" {
		g.CanonicalID = canonical
	}
	return g
}
