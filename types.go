package placedex

import (
	"time"

	"github.com/triporama/placedex/internal/domain/dedupe"
	"github.com/triporama/placedex/internal/domain/display"
	"github.com/triporama/placedex/internal/domain/match"
	"github.com/triporama/placedex/internal/domain/place"
)

// Candidate is a loosely-specified place description from a recommender.
type Candidate struct {
	Name      string
	Latitude  float64
	Longitude float64
	City      string
	Country   string
	Category  string
	Tags      map[string][]string
}

// Record is an authoritative catalog entry.
type Record struct {
	ID           string
	ExternalID   string
	Name         string
	Latitude     float64
	Longitude    float64
	City         string
	Country      string
	CategorySlug string
	Rating       *float64
	RatingCount  int
	CoverImage   string
	OpeningHours string
	Source       string
	UpdatedAt    time.Time
}

// MatchResult links a candidate to its best eligible record, if any.
type MatchResult struct {
	Candidate   Candidate
	Record      *Record // nil when unmatched
	Score       float64
	MatchedFrom string // "live", "cache" or "none"
}

// Matched reports whether an eligible record was found.
func (r MatchResult) Matched() bool { return r.Record != nil }

// Item is one place entry ready for presentation.
type Item struct {
	Name      string
	Latitude  float64
	Longitude float64
	Verified  bool
	RecordID  string
	Score     float64
	Category  string
}

// Bucket is an ordered, size-bounded group of items under a category title.
type Bucket struct {
	Title string
	Items []Item
}

// CategorySpec names a category and its candidate names in display order.
type CategorySpec struct {
	Title          string
	CandidateNames []string
}

// Group is one set of records judged to describe the same place.
type Group struct {
	RecordIDs   []string
	CanonicalID string
}

// Resolution is the full outcome of resolving a candidate batch.
type Resolution struct {
	Results         []MatchResult
	Unmatched       []Candidate
	Buckets         []Bucket
	NeedsSupplement bool
}

// MergePlan is the outcome of a duplicate sweep over a catalog snapshot.
type MergePlan struct {
	Groups    []Group
	DeleteIDs []string
}

func candidateToDomain(c Candidate) place.Candidate {
	return place.Candidate{
		Name:      c.Name,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		City:      c.City,
		Country:   c.Country,
		Category:  c.Category,
		Tags:      place.Tags(c.Tags).Clean(),
	}
}

func candidateFromDomain(c place.Candidate) Candidate {
	return Candidate{
		Name:      c.Name,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		City:      c.City,
		Country:   c.Country,
		Category:  c.Category,
		Tags:      c.Tags,
	}
}

func recordToDomain(r Record) place.Record {
	return place.Record{
		ID:           r.ID,
		ExternalID:   r.ExternalID,
		Name:         r.Name,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		City:         r.City,
		Country:      r.Country,
		CategorySlug: r.CategorySlug,
		Rating:       r.Rating,
		RatingCount:  r.RatingCount,
		CoverImage:   r.CoverImage,
		OpeningHours: r.OpeningHours,
		Source:       place.Source(r.Source),
		UpdatedAt:    r.UpdatedAt,
	}
}

func recordFromDomain(r place.Record) Record {
	return Record{
		ID:           r.ID,
		ExternalID:   r.ExternalID,
		Name:         r.Name,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		City:         r.City,
		Country:      r.Country,
		CategorySlug: r.CategorySlug,
		Rating:       r.Rating,
		RatingCount:  r.RatingCount,
		CoverImage:   r.CoverImage,
		OpeningHours: r.OpeningHours,
		Source:       string(r.Source),
		UpdatedAt:    r.UpdatedAt,
	}
}

func recordsToDomain(records []Record) []place.Record {
	out := make([]place.Record, len(records))
	for i, r := range records {
		out[i] = recordToDomain(r)
	}
	return out
}

func matchResultFromDomain(r match.Result) MatchResult {
	out := MatchResult{
		Candidate:   candidateFromDomain(r.Candidate),
		Score:       r.Score,
		MatchedFrom: string(r.MatchedFrom),
	}
	if r.Record != nil {
		rec := recordFromDomain(*r.Record)
		out.Record = &rec
	}
	return out
}

func bucketsFromDomain(a display.Allocation) []Bucket {
	buckets := make([]Bucket, len(a.Buckets))
	for i, b := range a.Buckets {
		items := make([]Item, len(b.Items))
		for j, it := range b.Items {
			items[j] = Item{
				Name:      it.Name,
				Latitude:  it.Latitude,
				Longitude: it.Longitude,
				Verified:  it.Verified,
				RecordID:  it.RecordID,
				Score:     it.Score,
				Category:  it.Category,
			}
		}
		buckets[i] = Bucket{Title: b.Title, Items: items}
	}
	return buckets
}

func groupsFromDomain(groups []dedupe.Group) []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = Group{RecordIDs: g.RecordIDs, CanonicalID: g.CanonicalID}
	}
	return out
}

func categoriesToDomain(specs []CategorySpec) []display.CategorySpec {
	if len(specs) == 0 {
		return nil
	}
	out := make([]display.CategorySpec, len(specs))
	for i, s := range specs {
		out[i] = display.CategorySpec{Title: s.Title, CandidateNames: s.CandidateNames}
	}
	return out
}
