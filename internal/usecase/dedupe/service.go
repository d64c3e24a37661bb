// Package dedupe finds groups of catalog records that likely describe the
// same physical place.
package dedupe

import (
	"github.com/triporama/placedex/internal/domain/dedupe"
	"github.com/triporama/placedex/internal/domain/geo"
	"github.com/triporama/placedex/internal/domain/place"
	"github.com/triporama/placedex/internal/domain/text"
)

// Config holds the detector thresholds. Distances are planar delta-degrees,
// not meters: the pre-filter and the rules use the cheap Euclidean degree
// norm, unlike the resolver's Haversine metric (a known, documented
// discrepancy between the two paths).
type Config struct {
	// PreFilterDeg is the coarse proximity gate (~55 m at mid-latitudes).
	PreFilterDeg float64
	// NearDeg pairs with NearNameSim: very close and near-identical names.
	NearDeg     float64
	NearNameSim float64
	// ExactNameDeg admits exact name matches at a wider radius.
	ExactNameDeg float64
	// CategoryDeg pairs with CategoryNameSim for same-category records.
	CategoryDeg     float64
	CategoryNameSim float64
	// IncludeSingletons controls whether ungrouped records are returned as
	// singleton groups with themselves as canonical.
	IncludeSingletons bool
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		PreFilterDeg:    0.0005, // ~55 m
		NearDeg:         0.0001, // ~10 m
		NearNameSim:     0.8,
		ExactNameDeg:    0.0003, // ~30 m
		CategoryDeg:     0.0002, // ~20 m
		CategoryNameSim: 0.7,
	}
}

// Service is the duplicate detector.
type Service struct {
	cfg Config
}

// New creates a detector. Zero-valued thresholds fall back to defaults;
// IncludeSingletons is honored as given.
func New(cfg Config) *Service {
	def := DefaultConfig()
	if cfg.PreFilterDeg <= 0 {
		cfg.PreFilterDeg = def.PreFilterDeg
	}
	if cfg.NearDeg <= 0 {
		cfg.NearDeg = def.NearDeg
	}
	if cfg.NearNameSim <= 0 {
		cfg.NearNameSim = def.NearNameSim
	}
	if cfg.ExactNameDeg <= 0 {
		cfg.ExactNameDeg = def.ExactNameDeg
	}
	if cfg.CategoryDeg <= 0 {
		cfg.CategoryDeg = def.CategoryDeg
	}
	if cfg.CategoryNameSim <= 0 {
		cfg.CategoryNameSim = def.CategoryNameSim
	}
	return &Service{cfg: cfg}
}

// FindGroups scans the catalog for likely duplicates. Greedy O(n²) pass in
// input order: each ungrouped record seeds a group and absorbs every later
// ungrouped record satisfying the duplicate predicate against the seed. The
// seed becomes the group's initial canonical; the ranker may re-pick it.
// Acceptable for catalogs in the low tens of thousands; a spatial grid would
// be the next step past that.
func (s *Service) FindGroups(catalog []place.Record) []dedupe.Group {
	grouped := make([]bool, len(catalog))
	var groups []dedupe.Group

	for i := range catalog {
		if grouped[i] {
			continue
		}
		seed := &catalog[i]
		if !seed.Valid() {
			// Fail open: a malformed record never groups with anything.
			if s.cfg.IncludeSingletons {
				groups = append(groups, singleton(seed.ID))
			}
			grouped[i] = true
			continue
		}

		members := []string{seed.ID}
		for j := i + 1; j < len(catalog); j++ {
			if grouped[j] {
				continue
			}
			other := &catalog[j]
			if !other.Valid() {
				continue
			}
			if s.isDuplicate(seed, other) {
				members = append(members, other.ID)
				grouped[j] = true
			}
		}
		grouped[i] = true

		if len(members) > 1 || s.cfg.IncludeSingletons {
			groups = append(groups, dedupe.Group{RecordIDs: members, CanonicalID: seed.ID})
		}
	}
	return groups
}

// isDuplicate applies the blended classification rules to a pre-filtered pair.
func (s *Service) isDuplicate(a, b *place.Record) bool {
	delta := geo.PlanarDeltaDeg(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
	if delta > s.cfg.PreFilterDeg {
		return false
	}

	nameSim := text.BlendedSimilarity(a.Name, b.Name)

	switch {
	case delta < s.cfg.NearDeg && nameSim > s.cfg.NearNameSim:
		return true
	case delta < s.cfg.ExactNameDeg && nameSim == 1.0:
		return true
	case delta < s.cfg.CategoryDeg && nameSim > s.cfg.CategoryNameSim &&
		a.CategorySlug != "" && a.CategorySlug == b.CategorySlug:
		return true
	}
	return false
}

func singleton(id string) dedupe.Group {
	return dedupe.Group{RecordIDs: []string{id}, CanonicalID: id}
}
