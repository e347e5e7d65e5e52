package frontmatter

import (
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-proposals/internal/domain"
)

// TextCodeInvalid tags every frontmatter validation failure.
const TextCodeInvalid = "FRONTMATTER_INVALID"

// Schema is the closed frontmatter contract of one proposal class.
type Schema struct {
	class  domain.DocumentClass
	fields []Field
	lookup map[string]Field
	rule   validation.MapRule
}

// NewSchema builds the schema for class with status restricted to statuses.
func NewSchema(class domain.DocumentClass, statuses domain.StatusSet) (*Schema, error) {
	if _, err := domain.ParseClass(string(class)); err != nil {
		return nil, err
	}

	fields := mergeFields(commonFields(statuses), classFields(class))
	lookup := make(map[string]Field, len(fields))
	keys := make([]*validation.KeyRules, 0, len(fields))
	for _, field := range fields {
		lookup[field.Name] = field
		keys = append(keys, keyRules(field))
	}

	return &Schema{
		class:  class,
		fields: fields,
		lookup: lookup,
		rule:   validation.Map(keys...),
	}, nil
}

// Class reports the class the schema describes.
func (s *Schema) Class() domain.DocumentClass {
	return s.class
}

// Fields returns the declared fields in declaration order.
func (s *Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Field returns the declaration for name.
func (s *Schema) Field(name string) (Field, bool) {
	field, ok := s.lookup[name]
	return field, ok
}

// Validate checks an already cast record. All failing fields are reported
// in a single *goerrors.Error sorted by field name.
func (s *Schema) Validate(record map[string]any) error {
	if record == nil {
		record = map[string]any{}
	}

	err := validation.Validate(record, s.rule)
	if err == nil {
		return nil
	}

	result := goerrors.FromOzzoValidation(err, fmt.Sprintf("%s frontmatter is invalid", s.class.Label()))
	for i := range result.ValidationErrors {
		if value, ok := record[result.ValidationErrors[i].Field]; ok {
			result.ValidationErrors[i].Value = value
		}
	}
	sort.SliceStable(result.ValidationErrors, func(i, j int) bool {
		return result.ValidationErrors[i].Field < result.ValidationErrors[j].Field
	})

	metadata := map[string]any{
		"class": string(s.class),
		"value": record,
	}
	if file, ok := record[FileField].(string); ok {
		metadata["file"] = file
	}
	return result.WithTextCode(TextCodeInvalid).WithMetadata(metadata)
}

// CastAndValidate casts record then validates it, returning the cast value.
func (s *Schema) CastAndValidate(record map[string]any) (map[string]any, error) {
	cast := s.Cast(record)
	return cast, s.Validate(cast)
}

func keyRules(field Field) *validation.KeyRules {
	rules := make([]validation.Rule, 0, 4)

	if field.Required {
		if field.Kind == KindString {
			rules = append(rules, validation.Required)
		} else {
			rules = append(rules, validation.NotNil.Error("cannot be blank"))
		}
	} else if !field.Nullable {
		rules = append(rules, notNull)
	}

	if rule := kindRule(field.Kind); rule != nil {
		rules = append(rules, rule)
	}
	if len(field.OneOf) > 0 {
		rules = append(rules, oneOf(field.OneOf))
	}
	if field.Pattern != nil {
		rules = append(rules, pattern(field.Pattern, "must be a tally proposal url"))
	}

	key := validation.Key(field.Name, rules...)
	if !field.Required {
		key = key.Optional()
	}
	return key
}

func kindRule(kind Kind) validation.Rule {
	switch kind {
	case KindString:
		return isString
	case KindNumber:
		return isNumber
	case KindDate:
		return isDate
	default:
		return nil
	}
}

// Details extracts the offending record and one "field: message" line per
// failing field from a Validate error.
func Details(err error) (map[string]any, []string, bool) {
	var validationErr *goerrors.Error
	if !goerrors.As(err, &validationErr) || validationErr.TextCode != TextCodeInvalid {
		return nil, nil, false
	}
	value, _ := validationErr.Metadata["value"].(map[string]any)
	messages := make([]string, 0, len(validationErr.ValidationErrors))
	for _, fe := range validationErr.ValidationErrors {
		messages = append(messages, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return value, messages, true
}
