// Package display holds the UI-ready output contract of the allocator:
// bounded, ordered buckets of verified and unverified items.
package display

// Item is one place entry ready for presentation. Verified items are backed
// by an authoritative record; unverified items carry only the candidate.
type Item struct {
	Name      string
	Latitude  float64
	Longitude float64
	Verified  bool
	RecordID  string  // empty when unverified
	Score     float64 // match score, 0 for unverified items
	Category  string  // bucket title, empty in flat mode
}

// Bucket is an ordered, size-bounded group of items under a category title.
type Bucket struct {
	Title string
	Items []Item
}

// CategorySpec is the caller-supplied ordering for one category: a title and
// the candidate names to consider, in display order.
type CategorySpec struct {
	Title          string
	CandidateNames []string
}

// Allocation is the allocator output: kept buckets in input order. Flat-mode
// output is a single untitled bucket.
type Allocation struct {
	Buckets []Bucket
}

// Flatten returns all items across kept buckets in order.
func (a Allocation) Flatten() []Item {
	var out []Item
	for _, b := range a.Buckets {
		out = append(out, b.Items...)
	}
	return out
}
