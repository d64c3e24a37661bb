// Package dedupe holds the duplicate-group contract shared by the detector,
// the ranker, and the merge planner.
package dedupe

import "fmt"

// Group is a set of catalog record IDs believed to denote one physical place,
// plus the chosen canonical ID. Every record belongs to at most one group and
// the canonical ID is always a member.
type Group struct {
	RecordIDs   []string
	CanonicalID string
}

// Singleton reports whether the group holds a single record.
func (g Group) Singleton() bool { return len(g.RecordIDs) == 1 }

// Contains reports whether id is a member of the group.
func (g Group) Contains(id string) bool {
	for _, rid := range g.RecordIDs {
		if rid == id {
			return true
		}
	}
	return false
}

// Validate checks the group invariants: at least one member, canonical set,
// canonical among members.
func (g Group) Validate() error {
	if len(g.RecordIDs) == 0 {
		return fmt.Errorf("group has no members")
	}
	if g.CanonicalID == "" {
		return fmt.Errorf("group has no canonical ID")
	}
	if !g.Contains(g.CanonicalID) {
		return fmt.Errorf("canonical ID %q is not a group member", g.CanonicalID)
	}
	return nil
}
