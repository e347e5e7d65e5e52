package domain

import (
	"strings"
	"unicode"

	"github.com/goliatone/go-slug"
)

// Status is a proposal lifecycle stage such as "Draft" or "Implemented".
type Status string

// DefaultStatuses lists the lifecycle stages in their canonical order.
var DefaultStatuses = []string{
	"Draft",
	"Feasibility",
	"SC Review Pending",
	"Vote Pending",
	"Approved",
	"Rejected",
	"Implemented",
	"Deleted",
}

// StatusSet is an ordered, immutable set of allowed statuses. It is passed
// explicitly to every pipeline that needs it.
type StatusSet struct {
	values []Status
	lookup map[Status]struct{}
}

// NewStatusSet builds a set from the supplied names, preserving order and
// dropping blanks and duplicates.
func NewStatusSet(names ...string) StatusSet {
	set := StatusSet{lookup: make(map[Status]struct{}, len(names))}
	for _, name := range names {
		status := Status(strings.TrimSpace(name))
		if status == "" {
			continue
		}
		if _, ok := set.lookup[status]; ok {
			continue
		}
		set.lookup[status] = struct{}{}
		set.values = append(set.values, status)
	}
	return set
}

// Contains reports whether value is a member of the set. Matching is exact.
func (s StatusSet) Contains(value string) bool {
	_, ok := s.lookup[Status(value)]
	return ok
}

// Len returns the number of statuses in the set.
func (s StatusSet) Len() int { return len(s.values) }

// Values returns the statuses in configured order.
func (s StatusSet) Values() []Status {
	return append([]Status(nil), s.values...)
}

// Strings returns the statuses as plain strings in configured order.
func (s StatusSet) Strings() []string {
	out := make([]string, len(s.values))
	for i, status := range s.values {
		out[i] = string(status)
	}
	return out
}

// Slugs returns the filesystem-safe status names in configured order. Two
// statuses that normalise to the same slug produce a single entry.
func (s StatusSet) Slugs() []string {
	seen := make(map[string]struct{}, len(s.values))
	out := make([]string, 0, len(s.values))
	for _, status := range s.values {
		value := Slugify(string(status))
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

// Slugify converts value into its lowercase, hyphenated form. Words are split
// on any non-alphanumeric rune and on camelCase boundaries, so
// "SC Review Pending" and "scReviewPending" both become "sc-review-pending".
func Slugify(value string) string {
	words := splitWords(value)
	if len(words) == 0 {
		return ""
	}
	joined := strings.ToLower(strings.Join(words, " "))
	if normalized, err := slug.Normalize(joined); err == nil && normalized != "" {
		return normalized
	}
	return strings.ReplaceAll(joined, " ", "-")
}

func splitWords(value string) []string {
	runes := []rune(value)
	var words []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(current) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		current = append(current, r)
	}
	flush()
	return words
}
