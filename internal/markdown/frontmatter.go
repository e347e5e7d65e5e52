package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-proposals/pkg/interfaces"
)

// ErrFrontMatterMalformed reports a frontmatter block that could not be decoded.
var ErrFrontMatterMalformed = errors.New("malformed frontmatter")

// frontMatterFormats lists the delimiters recognised at the head of a
// document. YAML is decoded with yaml.v3 so nested mappings come back keyed
// by string.
var frontMatterFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("---yaml", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
	frontmatter.NewFormat("---toml", "---", toml.Unmarshal),
}

// ParseFrontMatter extracts the metadata block and the Markdown body from
// source. A document without a frontmatter block yields an empty map and the
// full source as body.
func ParseFrontMatter(source []byte) (map[string]any, []byte, error) {
	meta := map[string]any{}

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta, frontMatterFormats...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrFrontMatterMalformed, err)
	}
	if meta == nil {
		meta = map[string]any{}
	}

	return normalizeMap(meta), body, nil
}

// BuildDocument assembles an interfaces.Document from the supplied path, raw
// content and modification time. BodyHTML is left empty so callers can render
// lazily.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &interfaces.Document{
		FilePath:     path,
		Frontmatter:  meta,
		Body:         body,
		LastModified: modified,
	}, nil
}

// normalizeMap converts decoder specific container types into
// map[string]any / []any so records can be JSON encoded.
func normalizeMap(input map[string]any) map[string]any {
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = normalizeValue(value)
	}
	return out
}

func normalizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return normalizeMap(typed)
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[fmt.Sprint(key)] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = normalizeValue(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = normalizeMap(item)
		}
		return out
	default:
		return value
	}
}
