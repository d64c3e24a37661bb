// Package place holds the data contracts the resolution engine operates on:
// unverified candidate suggestions and authoritative catalog records.
package place

import (
	"time"

	"github.com/triporama/placedex/internal/domain/geo"
	"github.com/triporama/placedex/internal/domain/text"
)

// Candidate is a loosely-specified place description from an external
// recommender. It is immutable input and is never persisted by the engine.
type Candidate struct {
	Name      string
	Latitude  float64
	Longitude float64
	City      string
	Country   string
	Category  string
	Tags      Tags
}

// Valid reports whether the candidate has a usable name and coordinates.
// Invalid candidates fail open: they simply never match.
func (c Candidate) Valid() bool {
	return text.Normalize(c.Name) != "" && geo.ValidateCoordinates(c.Latitude, c.Longitude)
}

// Record is an authoritative place entry supplied per call from a live
// provider query or the cached catalog store.
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
	Source       Source
	UpdatedAt    time.Time
}

// Valid reports whether the record has a usable name and coordinates.
// Invalid records yield similarity 0 / distance +Inf so one bad upstream
// entry cannot poison a whole resolution or grouping pass.
func (r Record) Valid() bool {
	return text.Normalize(r.Name) != "" && geo.ValidateCoordinates(r.Latitude, r.Longitude)
}

// HasRating reports whether a rating value is present.
func (r Record) HasRating() bool { return r.Rating != nil }
