package model

import "strings"

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// NormalizeTags trims tags and drops empty and duplicate entries, keeping the first occurrence.
// It never returns nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
