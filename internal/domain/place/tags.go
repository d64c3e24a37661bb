package place

// Tags is a typed tag bag: known string keys mapping to string values.
// Upstream recommenders emit arbitrary key/value-list pairs; Clean validates
// at the boundary instead of trusting them implicitly.
type Tags map[string][]string

// knownTagKeys is the documented open set of tag keys the product understands.
// Unknown keys are dropped at the boundary, not stored.
var knownTagKeys = map[string]bool{
	"cuisine":   true,
	"ambience":  true,
	"price":     true,
	"feature":   true,
	"dietary":   true,
	"best_time": true,
}

// KnownTagKey reports whether the key belongs to the documented set.
func KnownTagKey(key string) bool { return knownTagKeys[key] }

// Clean returns a copy containing only known keys with non-empty values.
// A nil or all-unknown bag yields nil.
func (t Tags) Clean() Tags {
	var out Tags
	for key, values := range t {
		if !knownTagKeys[key] || len(values) == 0 {
			continue
		}
		kept := make([]string, 0, len(values))
		for _, v := range values {
			if v != "" {
				kept = append(kept, v)
			}
		}
		if len(kept) == 0 {
			continue
		}
		if out == nil {
			out = make(Tags)
		}
		out[key] = kept
	}
	return out
}
