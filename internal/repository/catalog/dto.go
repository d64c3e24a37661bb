package catalog

import (
	"strconv"
	"time"

	"github.com/triporama/placedex/internal/domain/place"
)

const (
	fieldExternalID   = "external_id"
	fieldName         = "name"
	fieldLatitude     = "lat"
	fieldLongitude    = "lon"
	fieldCity         = "city"
	fieldCountry      = "country"
	fieldCategorySlug = "category_slug"
	fieldRating       = "rating"
	fieldRatingCount  = "rating_count"
	fieldCoverImage   = "cover_image"
	fieldOpeningHours = "opening_hours"
	fieldSource       = "source"
	fieldUpdatedAt    = "updated_at"
)

func recordToFields(rec place.Record) map[string]string {
	fields := map[string]string{
		fieldName:      rec.Name,
		fieldLatitude:  strconv.FormatFloat(rec.Latitude, 'f', -1, 64),
		fieldLongitude: strconv.FormatFloat(rec.Longitude, 'f', -1, 64),
	}
	if rec.ExternalID != "" {
		fields[fieldExternalID] = rec.ExternalID
	}
	if rec.City != "" {
		fields[fieldCity] = rec.City
	}
	if rec.Country != "" {
		fields[fieldCountry] = rec.Country
	}
	if rec.CategorySlug != "" {
		fields[fieldCategorySlug] = rec.CategorySlug
	}
	if rec.Rating != nil {
		fields[fieldRating] = strconv.FormatFloat(*rec.Rating, 'f', -1, 64)
	}
	if rec.RatingCount > 0 {
		fields[fieldRatingCount] = strconv.Itoa(rec.RatingCount)
	}
	if rec.CoverImage != "" {
		fields[fieldCoverImage] = rec.CoverImage
	}
	if rec.OpeningHours != "" {
		fields[fieldOpeningHours] = rec.OpeningHours
	}
	if rec.Source != "" {
		fields[fieldSource] = string(rec.Source)
	}
	if !rec.UpdatedAt.IsZero() {
		fields[fieldUpdatedAt] = rec.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return fields
}

// recordFromFields tolerates malformed numeric fields by leaving the zero
// value in place; downstream scoring fails open on invalid records anyway.
func recordFromFields(fields map[string]string) place.Record {
	rec := place.Record{
		ExternalID:   fields[fieldExternalID],
		Name:         fields[fieldName],
		City:         fields[fieldCity],
		Country:      fields[fieldCountry],
		CategorySlug: fields[fieldCategorySlug],
		CoverImage:   fields[fieldCoverImage],
		OpeningHours: fields[fieldOpeningHours],
		Source:       place.Source(fields[fieldSource]),
	}
	if v, err := strconv.ParseFloat(fields[fieldLatitude], 64); err == nil {
		rec.Latitude = v
	}
	if v, err := strconv.ParseFloat(fields[fieldLongitude], 64); err == nil {
		rec.Longitude = v
	}
	if raw, ok := fields[fieldRating]; ok {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			rec.Rating = &v
		}
	}
	if v, err := strconv.Atoi(fields[fieldRatingCount]); err == nil {
		rec.RatingCount = v
	}
	if t, err := time.Parse(time.RFC3339, fields[fieldUpdatedAt]); err == nil {
		rec.UpdatedAt = t
	}
	return rec
}
