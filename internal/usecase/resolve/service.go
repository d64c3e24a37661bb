// Package resolve matches loose place candidates against authoritative
// catalogs. Pure in-memory computation: the caller supplies every record and
// the service holds no state between calls.
package resolve

import (
	"github.com/triporama/placedex/internal/domain/geo"
	"github.com/triporama/placedex/internal/domain/match"
	"github.com/triporama/placedex/internal/domain/place"
	"github.com/triporama/placedex/internal/domain/text"
)

// Config holds the resolver thresholds.
type Config struct {
	// MinNameSimilarity gates eligibility on normalized name similarity.
	MinNameSimilarity float64
	// MaxDistanceMeters gates eligibility on great-circle distance.
	MaxDistanceMeters float64
	// NameWeight and DistanceWeight blend the combined score. The distance
	// term is binary: any record inside the radius earns the full distance
	// weight, a carry-over simplification kept on purpose.
	NameWeight     float64
	DistanceWeight float64
	// MinPerCategory and MinTotal drive the supplement signal.
	MinPerCategory int
	MinTotal       int
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		MinNameSimilarity: 0.70,
		MaxDistanceMeters: 500,
		NameWeight:        0.7,
		DistanceWeight:    0.3,
		MinPerCategory:    2,
		MinTotal:          5,
	}
}

// Service is the match resolver.
type Service struct {
	cfg Config
}

// New creates a resolver. Zero-valued config fields fall back to defaults.
func New(cfg Config) *Service {
	def := DefaultConfig()
	if cfg.MinNameSimilarity <= 0 {
		cfg.MinNameSimilarity = def.MinNameSimilarity
	}
	if cfg.MaxDistanceMeters <= 0 {
		cfg.MaxDistanceMeters = def.MaxDistanceMeters
	}
	if cfg.NameWeight <= 0 {
		cfg.NameWeight = def.NameWeight
	}
	if cfg.DistanceWeight <= 0 {
		cfg.DistanceWeight = def.DistanceWeight
	}
	if cfg.MinPerCategory <= 0 {
		cfg.MinPerCategory = def.MinPerCategory
	}
	if cfg.MinTotal <= 0 {
		cfg.MinTotal = def.MinTotal
	}
	return &Service{cfg: cfg}
}

// tagged pairs a catalog record with the provenance of the set it came from.
type tagged struct {
	record *place.Record
	from   match.Provenance
}

// Match resolves one candidate against a single catalog. The whole catalog is
// treated as live provenance; callers that need live/cache attribution use
// MatchBatch.
func (s *Service) Match(cand place.Candidate, catalog []place.Record) match.Result {
	combined := make([]tagged, len(catalog))
	for i := range catalog {
		combined[i] = tagged{record: &catalog[i], from: match.FromLive}
	}
	return s.matchTagged(cand, combined)
}

// MatchBatch resolves every candidate against the concatenation of the live
// and cached catalogs (live first), tagging provenance per record. Returns
// the match results plus the candidates that found no eligible record.
func (s *Service) MatchBatch(
	candidates []place.Candidate, live, cached []place.Record,
) ([]match.Result, []place.Candidate) {
	combined := make([]tagged, 0, len(live)+len(cached))
	for i := range live {
		combined = append(combined, tagged{record: &live[i], from: match.FromLive})
	}
	for i := range cached {
		combined = append(combined, tagged{record: &cached[i], from: match.FromCache})
	}

	results := make([]match.Result, 0, len(candidates))
	var unmatched []place.Candidate
	for _, cand := range candidates {
		res := s.matchTagged(cand, combined)
		results = append(results, res)
		if !res.Matched() {
			unmatched = append(unmatched, cand)
		}
	}
	return results, unmatched
}

// matchTagged picks the highest-scoring eligible record. Ties keep the first
// record encountered, so the outcome is deterministic given catalog order.
func (s *Service) matchTagged(cand place.Candidate, catalog []tagged) match.Result {
	noMatch := match.Result{Candidate: cand, MatchedFrom: match.FromNone}
	if !cand.Valid() {
		return noMatch
	}

	best := noMatch
	for _, entry := range catalog {
		rec := entry.record
		if !rec.Valid() {
			continue
		}
		nameSim := text.Similarity(cand.Name, rec.Name)
		if nameSim < s.cfg.MinNameSimilarity {
			continue
		}
		dist := geo.Distance(cand.Latitude, cand.Longitude, rec.Latitude, rec.Longitude)
		if dist > s.cfg.MaxDistanceMeters {
			continue
		}

		score := s.cfg.NameWeight*nameSim + s.cfg.DistanceWeight
		if score > best.Score {
			best = match.Result{
				Candidate:   cand,
				Record:      rec,
				Score:       score,
				MatchedFrom: entry.from,
			}
		}
	}
	return best
}

// NeedsSupplement reports whether the caller should fetch more candidates
// from another source. With categories, any category whose matched count
// falls below the per-category minimum triggers the signal; without, the
// total matched count is checked against the flat minimum. The results carry
// their candidates, so grouping uses the candidate's declared category.
func (s *Service) NeedsSupplement(results []match.Result, categories []string) bool {
	if len(categories) > 0 {
		perCategory := make(map[string]int, len(categories))
		for _, res := range results {
			if res.Matched() {
				perCategory[res.Candidate.Category]++
			}
		}
		for _, cat := range categories {
			if perCategory[cat] < s.cfg.MinPerCategory {
				return true
			}
		}
		return false
	}

	matched := 0
	for _, res := range results {
		if res.Matched() {
			matched++
		}
	}
	return matched < s.cfg.MinTotal
}
