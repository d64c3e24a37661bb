// Package display buckets match results and unmatched fallbacks into bounded,
// UI-ready groups.
package display

import (
	"sort"

	"github.com/triporama/placedex/internal/domain/display"
	"github.com/triporama/placedex/internal/domain/match"
	"github.com/triporama/placedex/internal/domain/place"
	"github.com/triporama/placedex/internal/domain/text"
)

// Config holds the allocator bounds.
type Config struct {
	// MaxPerBucket caps every bucket and the flat list.
	MaxPerBucket int
	// MinPerBucket is the smallest categorized bucket worth showing; smaller
	// buckets are dropped entirely.
	MinPerBucket int
}

// DefaultConfig returns the production bounds.
func DefaultConfig() Config {
	return Config{MaxPerBucket: 5, MinPerBucket: 2}
}

// Service is the display allocator.
type Service struct {
	cfg Config
}

// New creates an allocator. Zero-valued config fields fall back to defaults.
func New(cfg Config) *Service {
	def := DefaultConfig()
	if cfg.MaxPerBucket <= 0 {
		cfg.MaxPerBucket = def.MaxPerBucket
	}
	if cfg.MinPerBucket <= 0 {
		cfg.MinPerBucket = def.MinPerBucket
	}
	return &Service{cfg: cfg}
}

// Allocate buckets results for presentation. With category specs it walks
// each category's candidate names in order; without, it returns a single
// untitled bucket of the best matches backfilled with unverified candidates.
func (s *Service) Allocate(
	results []match.Result,
	unmatched []place.Candidate,
	categories []display.CategorySpec,
) display.Allocation {
	if len(categories) > 0 {
		return s.allocateCategorized(results, unmatched, categories)
	}
	return s.allocateFlat(results, unmatched)
}

func (s *Service) allocateCategorized(
	results []match.Result,
	unmatched []place.Candidate,
	categories []display.CategorySpec,
) display.Allocation {
	var buckets []display.Bucket
	for _, spec := range categories {
		bucket := display.Bucket{Title: spec.Title}
		for _, name := range spec.CandidateNames {
			if len(bucket.Items) >= s.cfg.MaxPerBucket {
				break
			}
			if res, ok := findResult(results, name); ok {
				bucket.Items = append(bucket.Items, verifiedItem(res, spec.Title))
				continue
			}
			if cand, ok := findCandidate(unmatched, name); ok {
				bucket.Items = append(bucket.Items, unverifiedItem(cand, spec.Title))
			}
		}
		// A category with a single resolvable place is not shown.
		if len(bucket.Items) >= s.cfg.MinPerBucket {
			buckets = append(buckets, bucket)
		}
	}
	return display.Allocation{Buckets: buckets}
}

func (s *Service) allocateFlat(
	results []match.Result, unmatched []place.Candidate,
) display.Allocation {
	matched := make([]match.Result, 0, len(results))
	for _, res := range results {
		if res.Matched() {
			matched = append(matched, res)
		}
	}
	// Stable: equal scores keep their input order.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Score > matched[j].Score
	})

	bucket := display.Bucket{}
	for _, res := range matched {
		if len(bucket.Items) >= s.cfg.MaxPerBucket {
			break
		}
		bucket.Items = append(bucket.Items, verifiedItem(res, ""))
	}
	for _, cand := range unmatched {
		if len(bucket.Items) >= s.cfg.MaxPerBucket {
			break
		}
		bucket.Items = append(bucket.Items, unverifiedItem(cand, ""))
	}

	if len(bucket.Items) == 0 {
		return display.Allocation{}
	}
	return display.Allocation{Buckets: []display.Bucket{bucket}}
}

// findResult locates a matched result by case-insensitive candidate name.
func findResult(results []match.Result, name string) (match.Result, bool) {
	want := text.Normalize(name)
	if want == "" {
		return match.Result{}, false
	}
	for _, res := range results {
		if res.Matched() && text.Normalize(res.Candidate.Name) == want {
			return res, true
		}
	}
	return match.Result{}, false
}

// findCandidate locates an unmatched candidate by case-insensitive name.
func findCandidate(unmatched []place.Candidate, name string) (place.Candidate, bool) {
	want := text.Normalize(name)
	if want == "" {
		return place.Candidate{}, false
	}
	for _, cand := range unmatched {
		if text.Normalize(cand.Name) == want {
			return cand, true
		}
	}
	return place.Candidate{}, false
}

func verifiedItem(res match.Result, category string) display.Item {
	return display.Item{
		Name:      res.Record.Name,
		Latitude:  res.Record.Latitude,
		Longitude: res.Record.Longitude,
		Verified:  true,
		RecordID:  res.Record.ID,
		Score:     res.Score,
		Category:  category,
	}
}

func unverifiedItem(cand place.Candidate, category string) display.Item {
	return display.Item{
		Name:      cand.Name,
		Latitude:  cand.Latitude,
		Longitude: cand.Longitude,
		Verified:  false,
		Category:  category,
	}
}
