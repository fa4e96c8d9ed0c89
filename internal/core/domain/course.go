package domain

import "strings"

// NormalizeCourses turns raw course input into an ordered list with no two
// entries equal under case-insensitive comparison. A single string becomes a
// one-element list; non-string and blank entries are dropped; entries are
// trimmed and the first-seen casing of each key is kept. The result is never nil.
func NormalizeCourses(input any) []string {
	var raw []any
	switch v := input.(type) {
	case nil:
	case string:
		raw = []any{v}
	case []string:
		raw = make([]any, len(v))
		for i, s := range v {
			raw[i] = s
		}
	case []any:
		raw = v
	}

	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

// MergeCourses appends incoming courses to existing ones. Existing entries
// keep their position and casing; incoming entries matching an existing one
// case-insensitively are dropped.
func MergeCourses(existing, incoming []string) []string {
	all := make([]string, 0, len(existing)+len(incoming))
	all = append(all, existing...)
	all = append(all, incoming...)
	return NormalizeCourses(all)
}
