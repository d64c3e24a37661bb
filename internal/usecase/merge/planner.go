// Package merge turns duplicate groups into an ordered deletion plan.
package merge

import "github.com/triporama/placedex/internal/domain/dedupe"

// Planner decides which records are safe to delete once a canonical has been
// chosen per group.
type Planner struct{}

// New creates a merge planner.
func New() *Planner {
	return &Planner{}
}

// PlanDeletions returns, per group and in group order, every member ID except
// the canonical. The canonical is never included, and the same grouping
// always produces the same list. Groups violating their invariants are
// skipped whole rather than half-deleted. Chunking the result into
// storage-sized batches is the caller's job.
func (p *Planner) PlanDeletions(groups []dedupe.Group) []string {
	var ids []string
	for _, g := range groups {
		if g.Validate() != nil {
			continue
		}
		for _, id := range g.RecordIDs {
			if id != g.CanonicalID {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// Chunk splits ids into batches of at most size, preserving order. Size 0 or
// negative yields a single batch.
func Chunk(ids []string, size int) [][]string {
	if len(ids) == 0 {
		return nil
	}
	if size <= 0 {
		return [][]string{ids}
	}
	var out [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		out = append(out, ids[start:end])
	}
	return out
}
