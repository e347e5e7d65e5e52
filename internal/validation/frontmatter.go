package validation

import (
	"fmt"

	"github.com/goliatone/go-proposals/internal/domain"
	"github.com/goliatone/go-proposals/internal/frontmatter"
)

const draft2020 = "https://json-schema.org/draft/2020-12/schema"

// FrontmatterSchema renders the frontmatter contract of class as a JSON
// Schema document. Fields the pipeline attaches itself are omitted.
func FrontmatterSchema(class domain.DocumentClass, statuses domain.StatusSet) (map[string]any, error) {
	schema, err := frontmatter.NewSchema(class, statuses)
	if err != nil {
		return nil, err
	}

	properties := make(map[string]any)
	required := make([]any, 0)
	for _, field := range schema.Fields() {
		if field.Internal {
			continue
		}
		properties[field.Name] = fieldSchema(field)
		if field.Required {
			required = append(required, field.Name)
		}
	}

	out := map[string]any{
		"$schema":              draft2020,
		"$id":                  fmt.Sprintf("https://proposals.local/schema/%s.json", class),
		"title":                fmt.Sprintf("%s frontmatter", class.Label()),
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out, nil
}

func fieldSchema(field frontmatter.Field) map[string]any {
	out := map[string]any{}

	var jsonType string
	switch field.Kind {
	case frontmatter.KindString:
		jsonType = "string"
	case frontmatter.KindNumber:
		jsonType = "number"
	case frontmatter.KindDate:
		jsonType = "string"
		out["format"] = "date"
	}

	if jsonType != "" {
		if field.Nullable {
			out["type"] = []any{jsonType, "null"}
		} else {
			out["type"] = jsonType
		}
	}
	if len(field.OneOf) > 0 {
		values := make([]any, 0, len(field.OneOf)+1)
		for _, value := range field.OneOf {
			values = append(values, value)
		}
		if field.Nullable {
			values = append(values, nil)
		}
		out["enum"] = values
	}
	if field.Pattern != nil {
		out["pattern"] = field.Pattern.String()
	}
	if field.Required && field.Kind == frontmatter.KindString {
		out["minLength"] = 1
	}
	return out
}
