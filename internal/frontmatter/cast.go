package frontmatter

import (
	"math"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
}

// Cast returns a copy of record with every declared field coerced to its
// kind where possible. Values that cannot be coerced, and undeclared keys,
// are kept unchanged so Validate can report them.
func (s *Schema) Cast(record map[string]any) map[string]any {
	out := make(map[string]any, len(record))
	for key, value := range record {
		field, ok := s.lookup[key]
		if !ok {
			out[key] = value
			continue
		}
		out[key] = castValue(field.Kind, value)
	}
	return out
}

func castValue(kind Kind, value any) any {
	if value == nil {
		return nil
	}
	switch kind {
	case KindString:
		return castString(value)
	case KindNumber:
		return castNumber(value)
	case KindDate:
		return castDate(value)
	default:
		return value
	}
}

func castString(value any) any {
	switch typed := value.(type) {
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case uint64:
		return strconv.FormatUint(typed, 10)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return value
	}
}

func castNumber(value any) any {
	switch typed := value.(type) {
	case int:
		return typed
	case int32:
		return int(typed)
	case int64:
		return int(typed)
	case uint64:
		if typed <= math.MaxInt {
			return int(typed)
		}
		return float64(typed)
	case float64:
		return typed
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return value
		}
		if n, err := strconv.Atoi(trimmed); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
		return value
	default:
		return value
	}
}

func castDate(value any) any {
	switch typed := value.(type) {
	case time.Time:
		return typed
	case string:
		trimmed := strings.TrimSpace(typed)
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, trimmed); err == nil {
				return parsed.UTC()
			}
		}
		return value
	default:
		return value
	}
}
