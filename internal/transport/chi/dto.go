package chi

import (
	"time"

	"github.com/triporama/placedex/internal/domain/dedupe"
	"github.com/triporama/placedex/internal/domain/display"
	"github.com/triporama/placedex/internal/domain/match"
	"github.com/triporama/placedex/internal/domain/place"
)

type candidateDTO struct {
	Name      string              `json:"name"`
	Latitude  float64             `json:"latitude"`
	Longitude float64             `json:"longitude"`
	City      string              `json:"city,omitempty"`
	Country   string              `json:"country,omitempty"`
	Category  string              `json:"category,omitempty"`
	Tags      map[string][]string `json:"tags,omitempty"`
}

type recordDTO struct {
	ID           string     `json:"id"`
	ExternalID   string     `json:"external_id,omitempty"`
	Name         string     `json:"name"`
	Latitude     float64    `json:"latitude"`
	Longitude    float64    `json:"longitude"`
	City         string     `json:"city,omitempty"`
	Country      string     `json:"country,omitempty"`
	CategorySlug string     `json:"category_slug,omitempty"`
	Rating       *float64   `json:"rating,omitempty"`
	RatingCount  int        `json:"rating_count,omitempty"`
	CoverImage   string     `json:"cover_image,omitempty"`
	OpeningHours string     `json:"opening_hours,omitempty"`
	Source       string     `json:"source,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

type categorySpecDTO struct {
	Title          string   `json:"title"`
	CandidateNames []string `json:"candidate_names"`
}

type resolveRequest struct {
	Candidates    []candidateDTO    `json:"candidates"`
	LiveRecords   []recordDTO       `json:"live_records"`
	CachedRecords []recordDTO       `json:"cached_records"`
	Categories    []categorySpecDTO `json:"categories,omitempty"`
}

type matchResultDTO struct {
	Candidate   candidateDTO `json:"candidate"`
	MatchedFrom string       `json:"matched_from"`
	Score       float64      `json:"score"`
	Record      *recordDTO   `json:"record,omitempty"`
}

type itemDTO struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Verified  bool    `json:"verified"`
	RecordID  string  `json:"record_id,omitempty"`
	Score     float64 `json:"score,omitempty"`
	Category  string  `json:"category,omitempty"`
}

type bucketDTO struct {
	Title string    `json:"title,omitempty"`
	Items []itemDTO `json:"items"`
}

type resolveResponse struct {
	Results         []matchResultDTO `json:"results"`
	Unmatched       []candidateDTO   `json:"unmatched,omitempty"`
	Buckets         []bucketDTO      `json:"buckets"`
	NeedsSupplement bool             `json:"needs_supplement"`
}

type dedupePlanRequest struct {
	// Records may be empty, in which case the stored catalog is used.
	Records []recordDTO `json:"records,omitempty"`
}

type groupDTO struct {
	RecordIDs   []string `json:"record_ids"`
	CanonicalID string   `json:"canonical_id"`
}

type dedupePlanResponse struct {
	Groups    []groupDTO `json:"groups"`
	DeleteIDs []string   `json:"delete_ids,omitempty"`
}

type suggestRequest struct {
	City     string `json:"city"`
	Country  string `json:"country,omitempty"`
	Category string `json:"category"`
}

type suggestResponse struct {
	Candidates []candidateDTO `json:"candidates"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func candidateFromDTO(d candidateDTO) place.Candidate {
	return place.Candidate{
		Name:      d.Name,
		Latitude:  d.Latitude,
		Longitude: d.Longitude,
		City:      d.City,
		Country:   d.Country,
		Category:  d.Category,
		Tags:      place.Tags(d.Tags).Clean(),
	}
}

func candidateToDTO(c place.Candidate) candidateDTO {
	return candidateDTO{
		Name:      c.Name,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		City:      c.City,
		Country:   c.Country,
		Category:  c.Category,
		Tags:      c.Tags,
	}
}

func recordFromDTO(d recordDTO) place.Record {
	rec := place.Record{
		ID:           d.ID,
		ExternalID:   d.ExternalID,
		Name:         d.Name,
		Latitude:     d.Latitude,
		Longitude:    d.Longitude,
		City:         d.City,
		Country:      d.Country,
		CategorySlug: d.CategorySlug,
		Rating:       d.Rating,
		RatingCount:  d.RatingCount,
		CoverImage:   d.CoverImage,
		OpeningHours: d.OpeningHours,
		Source:       place.Source(d.Source),
	}
	if d.UpdatedAt != nil {
		rec.UpdatedAt = *d.UpdatedAt
	}
	return rec
}

func recordToDTO(r place.Record) recordDTO {
	dto := recordDTO{
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
	}
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		dto.UpdatedAt = &t
	}
	return dto
}

func matchResultToDTO(r match.Result) matchResultDTO {
	dto := matchResultDTO{
		Candidate:   candidateToDTO(r.Candidate),
		MatchedFrom: string(r.MatchedFrom),
		Score:       r.Score,
	}
	if r.Record != nil {
		rec := recordToDTO(*r.Record)
		dto.Record = &rec
	}
	return dto
}

func bucketsToDTO(a display.Allocation) []bucketDTO {
	buckets := make([]bucketDTO, len(a.Buckets))
	for i, b := range a.Buckets {
		items := make([]itemDTO, len(b.Items))
		for j, it := range b.Items {
			items[j] = itemDTO{
				Name:      it.Name,
				Latitude:  it.Latitude,
				Longitude: it.Longitude,
				Verified:  it.Verified,
				RecordID:  it.RecordID,
				Score:     it.Score,
				Category:  it.Category,
			}
		}
		buckets[i] = bucketDTO{Title: b.Title, Items: items}
	}
	return buckets
}

func groupsToDTO(groups []dedupe.Group) []groupDTO {
	out := make([]groupDTO, len(groups))
	for i, g := range groups {
		out[i] = groupDTO{RecordIDs: g.RecordIDs, CanonicalID: g.CanonicalID}
	}
	return out
}

func categoriesFromDTO(specs []categorySpecDTO) []display.CategorySpec {
	if len(specs) == 0 {
		return nil
	}
	out := make([]display.CategorySpec, len(specs))
	for i, s := range specs {
		out[i] = display.CategorySpec{Title: s.Title, CandidateNames: s.CandidateNames}
	}
	return out
}
