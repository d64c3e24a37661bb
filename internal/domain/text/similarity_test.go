package text

import "testing"

func almost(a, b float64) bool {
	const eps = 1e-9
	if a > b {
		return a-b < eps
	}
	return b-a < eps
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Eiffel Tower  ", "eiffel tower"},
		{"LA\t CABRA", "la cabra"},
		{"one  two   three", "one two three"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSimilarity_Reflexive(t *testing.T) {
	for _, s := range []string{"Eiffel Tower", "La Cabra", "Pont Neuf", "  Mercado  Central "} {
		if got := Similarity(s, s); got != 1 {
			t.Errorf("Similarity(%q, %q) = %f, want 1", s, s, got)
		}
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"Eiffel Tower", "Eifel Tower"},
		{"La Cabra", "La Cabra Annex"},
		{"Cafe", "Bar"},
	}
	for _, p := range pairs {
		a := Similarity(p[0], p[1])
		b := Similarity(p[1], p[0])
		if !almost(a, b) {
			t.Errorf("asymmetric: Similarity(%q,%q)=%f vs %f", p[0], p[1], a, b)
		}
		if a < 0 || a > 1 {
			t.Errorf("Similarity(%q,%q)=%f out of [0,1]", p[0], p[1], a)
		}
	}
}

func TestSimilarity_Empty(t *testing.T) {
	if got := Similarity("", ""); got != 1 {
		t.Errorf("both empty = %f, want 1", got)
	}
	if got := Similarity("Louvre", ""); got != 0 {
		t.Errorf("one empty = %f, want 0", got)
	}
	if got := Similarity("", "Louvre"); got != 0 {
		t.Errorf("one empty = %f, want 0", got)
	}
	// Whitespace-only normalizes to empty.
	if got := Similarity("   ", "Louvre"); got != 0 {
		t.Errorf("whitespace-only = %f, want 0", got)
	}
}

func TestSimilarity_EditDistance(t *testing.T) {
	// "kitten" -> "sitting": distance 3, max len 7.
	want := 1 - 3.0/7.0
	if got := Similarity("kitten", "sitting"); !almost(got, want) {
		t.Errorf("Similarity(kitten, sitting) = %f, want %f", got, want)
	}
}

func TestSimilarity_CaseAndWhitespaceInsensitive(t *testing.T) {
	if got := Similarity("EIFFEL  TOWER", "eiffel tower"); got != 1 {
		t.Errorf("got %f, want 1", got)
	}
}

func TestBlendedSimilarity_Exact(t *testing.T) {
	if got := BlendedSimilarity("La Cabra", "LA CABRA"); got != 1 {
		t.Errorf("got %f, want 1", got)
	}
}

func TestBlendedSimilarity_Containment(t *testing.T) {
	// "la cabra" (8 runes) inside "la cabra annex" (14 runes).
	want := 8.0 / 14.0
	if got := BlendedSimilarity("La Cabra", "La Cabra Annex"); !almost(got, want) {
		t.Errorf("got %f, want %f", got, want)
	}
}

func TestBlendedSimilarity_FallsBackToEditDistance(t *testing.T) {
	got := BlendedSimilarity("kitten", "sitting")
	want := Similarity("kitten", "sitting")
	if !almost(got, want) {
		t.Errorf("got %f, want %f", got, want)
	}
}

func TestBlendedSimilarity_EmptyNeverOne(t *testing.T) {
	if got := BlendedSimilarity("", ""); got != 0 {
		t.Errorf("both empty = %f, want 0", got)
	}
	if got := BlendedSimilarity("La Cabra", "  "); got != 0 {
		t.Errorf("one empty = %f, want 0", got)
	}
}

func TestLevenshtein_Unicode(t *testing.T) {
	// Rune-based: "café" vs "cafe" is a single substitution over 4 runes.
	want := 1 - 1.0/4.0
	if got := Similarity("café", "cafe"); !almost(got, want) {
		t.Errorf("got %f, want %f", got, want)
	}
}
