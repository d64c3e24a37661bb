package placedex

import "testing"

func TestEngine_Match(t *testing.T) {
	e := New()

	res := e.Match(
		Candidate{Name: "Blue Bottle Coffee", Latitude: 37.7763, Longitude: -122.4233},
		[]Record{
			{ID: "rec-1", Name: "Blue Bottle Coffee", Latitude: 37.7764, Longitude: -122.4234},
			{ID: "rec-2", Name: "Unrelated Diner", Latitude: 37.7764, Longitude: -122.4234},
		},
	)

	if !res.Matched() {
		t.Fatal("expected a match")
	}
	if res.Record.ID != "rec-1" {
		t.Errorf("matched %s, want rec-1", res.Record.ID)
	}
	if res.MatchedFrom != "live" {
		t.Errorf("matched_from = %s, want live", res.MatchedFrom)
	}
	if res.Score <= 0.9 {
		t.Errorf("score = %g, want > 0.9 for an exact name", res.Score)
	}
}

func TestEngine_Match_ThresholdOptions(t *testing.T) {
	// ~156m east at this latitude
	catalog := []Record{
		{ID: "rec-1", Name: "Corner Cafe", Latitude: 48.8566, Longitude: 2.3542},
	}
	cand := Candidate{Name: "Corner Cafe", Latitude: 48.8566, Longitude: 2.3522}

	if res := New().Match(cand, catalog); !res.Matched() {
		t.Fatal("expected a match under the default 500m ceiling")
	}
	if res := New(WithMaxDistanceMeters(100)).Match(cand, catalog); res.Matched() {
		t.Error("expected no match under a 100m ceiling")
	}
}

func TestEngine_Resolve(t *testing.T) {
	e := New()

	out := e.Resolve(
		[]Candidate{
			{Name: "Tartine Bakery", Latitude: 37.7614, Longitude: -122.4241},
			{Name: "Nowhere Cafe", Latitude: 10.0, Longitude: 10.0},
		},
		nil,
		[]Record{
			{ID: "rec-2", Name: "Tartine Bakery", Latitude: 37.7615, Longitude: -122.4242},
		},
		nil,
	)

	if len(out.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out.Results))
	}
	if out.Results[0].MatchedFrom != "cache" {
		t.Errorf("matched_from = %s, want cache", out.Results[0].MatchedFrom)
	}
	if len(out.Unmatched) != 1 || out.Unmatched[0].Name != "Nowhere Cafe" {
		t.Errorf("unexpected unmatched: %+v", out.Unmatched)
	}
	if !out.NeedsSupplement {
		t.Error("one verified place is below the default minimum total")
	}
	if len(out.Buckets) != 1 {
		t.Fatalf("expected one flat bucket, got %d", len(out.Buckets))
	}
}

func TestEngine_Resolve_Categorized(t *testing.T) {
	e := New(WithSupplementThresholds(1, 1))

	out := e.Resolve(
		[]Candidate{
			{Name: "Septime", Latitude: 48.8532, Longitude: 2.3834},
		},
		[]Record{
			{ID: "r1", Name: "Septime", Latitude: 48.8533, Longitude: 2.3835},
		},
		nil,
		[]CategorySpec{
			{Title: "Dinner", CandidateNames: []string{"Septime"}},
		},
	)

	if len(out.Buckets) != 1 || out.Buckets[0].Title != "Dinner" {
		t.Fatalf("unexpected buckets: %+v", out.Buckets)
	}
	if out.NeedsSupplement {
		t.Error("thresholds of 1/1 are satisfied")
	}
}

func TestEngine_PlanMerges(t *testing.T) {
	e := New()

	plan := e.PlanMerges([]Record{
		{ID: "a", ExternalID: "ext-a", Name: "Cafe Kitsune", Latitude: 48.86650, Longitude: 2.36010},
		{ID: "b", Name: "Cafe Kitsune", Latitude: 48.86655, Longitude: 2.36015},
		{ID: "c", Name: "Far Away Bar", Latitude: 41.0, Longitude: 2.0},
	})

	if len(plan.Groups) != 1 {
		t.Fatalf("expected 1 group, got %+v", plan.Groups)
	}
	if plan.Groups[0].CanonicalID != "a" {
		t.Errorf("canonical = %s, want a", plan.Groups[0].CanonicalID)
	}
	if len(plan.DeleteIDs) != 1 || plan.DeleteIDs[0] != "b" {
		t.Errorf("delete_ids = %v, want [b]", plan.DeleteIDs)
	}
}

func TestEngine_PlanMerges_Singletons(t *testing.T) {
	records := []Record{
		{ID: "solo", Name: "Lone Star", Latitude: 30.0, Longitude: -97.0},
	}

	if plan := New().PlanMerges(records); len(plan.Groups) != 0 {
		t.Errorf("expected no groups by default, got %+v", plan.Groups)
	}
	plan := New(WithSingletonGroups()).PlanMerges(records)
	if len(plan.Groups) != 1 || plan.Groups[0].CanonicalID != "solo" {
		t.Errorf("unexpected singleton plan: %+v", plan.Groups)
	}
	if len(plan.DeleteIDs) != 0 {
		t.Errorf("singletons must plan no deletions, got %v", plan.DeleteIDs)
	}
}
