// Package placedex is the embedded entry point to the place resolution
// engine: candidate-to-record matching, display allocation, duplicate
// detection, and merge planning, all in-process with no I/O.
package placedex

import (
	"github.com/triporama/placedex/internal/domain/place"
	dedupeuc "github.com/triporama/placedex/internal/usecase/dedupe"
	displayuc "github.com/triporama/placedex/internal/usecase/display"
	"github.com/triporama/placedex/internal/usecase/merge"
	"github.com/triporama/placedex/internal/usecase/rank"
	"github.com/triporama/placedex/internal/usecase/resolve"
)

// Engine bundles the resolution and catalog-hygiene services behind one
// handle. It holds no mutable state; calls may run concurrently.
type Engine struct {
	resolver  *resolve.Service
	allocator *displayuc.Service
	detector  *dedupeuc.Service
	ranker    *rank.Service
	planner   *merge.Planner
}

type engineConfig struct {
	resolver resolve.Config
	display  displayuc.Config
	dedupe   dedupeuc.Config
}

// Option configures the engine. Unset values keep the documented defaults.
type Option func(*engineConfig)

// WithMinNameSimilarity overrides the match eligibility name threshold.
func WithMinNameSimilarity(v float64) Option {
	return func(c *engineConfig) { c.resolver.MinNameSimilarity = v }
}

// WithMaxDistanceMeters overrides the match eligibility distance ceiling.
func WithMaxDistanceMeters(v float64) Option {
	return func(c *engineConfig) { c.resolver.MaxDistanceMeters = v }
}

// WithSupplementThresholds overrides the minimum verified places per
// category and in total before a resolution asks for more candidates.
func WithSupplementThresholds(perCategory, total int) Option {
	return func(c *engineConfig) {
		c.resolver.MinPerCategory = perCategory
		c.resolver.MinTotal = total
	}
}

// WithBucketBounds overrides the display bucket size bounds.
func WithBucketBounds(minPerBucket, maxPerBucket int) Option {
	return func(c *engineConfig) {
		c.display.MinPerBucket = minPerBucket
		c.display.MaxPerBucket = maxPerBucket
	}
}

// WithDedupeThresholds overrides the duplicate-detector delta-degree and
// name-similarity thresholds.
func WithDedupeThresholds(cfg dedupeuc.Config) Option {
	return func(c *engineConfig) { c.dedupe = cfg }
}

// WithSingletonGroups makes the duplicate sweep report singleton groups too.
func WithSingletonGroups() Option {
	return func(c *engineConfig) { c.dedupe.IncludeSingletons = true }
}

// New creates an Engine with the documented default thresholds, adjusted by
// the given options.
func New(opts ...Option) *Engine {
	cfg := &engineConfig{}
	for _, o := range opts {
		o(cfg)
	}
	return &Engine{
		resolver:  resolve.New(cfg.resolver),
		allocator: displayuc.New(cfg.display),
		detector:  dedupeuc.New(cfg.dedupe),
		ranker:    rank.New(),
		planner:   merge.New(),
	}
}

// Match resolves one candidate against a catalog snapshot.
func (e *Engine) Match(cand Candidate, catalog []Record) MatchResult {
	res := e.resolver.Match(candidateToDomain(cand), recordsToDomain(catalog))
	return matchResultFromDomain(res)
}

// Resolve matches a candidate batch against the live and cached catalogs,
// allocates display buckets, and reports whether more candidates are needed.
func (e *Engine) Resolve(
	candidates []Candidate, live, cached []Record, categories []CategorySpec,
) Resolution {
	domCands := make([]place.Candidate, len(candidates))
	for i, c := range candidates {
		domCands[i] = candidateToDomain(c)
	}
	domCategories := categoriesToDomain(categories)

	results, unmatched := e.resolver.MatchBatch(
		domCands, recordsToDomain(live), recordsToDomain(cached),
	)
	allocation := e.allocator.Allocate(results, unmatched, domCategories)

	var titles []string
	for _, spec := range domCategories {
		titles = append(titles, spec.Title)
	}

	out := Resolution{
		Results:         make([]MatchResult, len(results)),
		Buckets:         bucketsFromDomain(allocation),
		NeedsSupplement: e.resolver.NeedsSupplement(results, titles),
	}
	for i, res := range results {
		out.Results[i] = matchResultFromDomain(res)
	}
	for _, cand := range unmatched {
		out.Unmatched = append(out.Unmatched, candidateFromDomain(cand))
	}
	return out
}

// PlanMerges sweeps a catalog snapshot for duplicates, picks a canonical
// record per group, and lists the record IDs to delete.
func (e *Engine) PlanMerges(records []Record) MergePlan {
	domRecords := recordsToDomain(records)
	groups := e.detector.FindGroups(domRecords)

	byID := make(map[string]place.Record, len(domRecords))
	for _, rec := range domRecords {
		byID[rec.ID] = rec
	}
	for i := range groups {
		groups[i] = e.ranker.AssignCanonical(groups[i], byID)
	}

	return MergePlan{
		Groups:    groupsFromDomain(groups),
		DeleteIDs: e.planner.PlanDeletions(groups),
	}
}
