package claim

import "strings"

// MapFields searches text for each rule independently and returns a map whose
// key set is exactly the rule names. First match wins per field; one field's
// match never consumes another field's search region, so labels may appear in
// any order or be duplicated. An unmatched field maps to NotFound.
func MapFields(text string, rules []FieldRule) map[string]string {
	out := make(map[string]string, len(rules))
	for _, r := range rules {
		out[r.Name] = NotFound
		m := r.Pattern.FindStringSubmatch(text)
		if m == nil || r.Group >= len(m) {
			continue
		}
		if v := strings.TrimSpace(m[r.Group]); v != "" {
			out[r.Name] = v
		}
	}
	return out
}
