package frontmatter

import (
	"math"
	"regexp"
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	errNull      = validation.NewError("validation_not_null", "cannot be null")
	errNotString = validation.NewError("validation_is_string", "must be a string")
	errNotNumber = validation.NewError("validation_is_number", "must be a number")
	errNotDate   = validation.NewError("validation_is_date", "must be a date")
)

// The rules below skip nil; presence and nullability are enforced
// separately so each failure carries a single message.

var notNull = validation.By(func(value any) error {
	if value == nil {
		return errNull
	}
	return nil
})

var isString = validation.By(func(value any) error {
	if value == nil {
		return nil
	}
	if _, ok := value.(string); !ok {
		return errNotString
	}
	return nil
})

var isNumber = validation.By(func(value any) error {
	switch typed := value.(type) {
	case nil:
		return nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case float32:
		if math.IsNaN(float64(typed)) || math.IsInf(float64(typed), 0) {
			return errNotNumber
		}
		return nil
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return errNotNumber
		}
		return nil
	default:
		return errNotNumber
	}
})

var isDate = validation.By(func(value any) error {
	switch value.(type) {
	case nil, time.Time:
		return nil
	default:
		return errNotDate
	}
})

// oneOf differs from validation.In in that the empty string is checked
// against the allowed values instead of being skipped.
func oneOf(values []string) validation.Rule {
	allowed := append([]string(nil), values...)
	err := validation.NewError("validation_one_of", "must be one of: "+strings.Join(allowed, ", "))
	return validation.By(func(value any) error {
		if value == nil {
			return nil
		}
		text, ok := value.(string)
		if !ok || !slices.Contains(allowed, text) {
			return err
		}
		return nil
	})
}

// pattern rejects empty strings, unlike validation.Match.
func pattern(re *regexp.Regexp, message string) validation.Rule {
	err := validation.NewError("validation_match", message)
	return validation.By(func(value any) error {
		if value == nil {
			return nil
		}
		text, ok := value.(string)
		if !ok || !re.MatchString(text) {
			return err
		}
		return nil
	})
}
