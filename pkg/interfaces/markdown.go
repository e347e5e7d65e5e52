package interfaces

import (
	"context"
	"time"
)

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string `yaml:"extensions" toml:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps" toml:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode" toml:"safe_mode"`
}

// MarkdownService loads proposal documents from the content root and renders
// their bodies.
type MarkdownService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	Glob(ctx context.Context, pattern string) ([]string, error)
	LoadGlob(ctx context.Context, pattern string, opts LoadOptions) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
}

// Document represents a proposal file with its parsed frontmatter and body.
type Document struct {
	FilePath string
	// Frontmatter holds the raw metadata block exactly as decoded, keyed by
	// the field names used in the source file.
	Frontmatter  map[string]any
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	Checksum     []byte
}

// LoadOptions fine-tunes how a document is read from disk.
type LoadOptions struct {
	// Render populates BodyHTML when true.
	Render bool
	Parser ParseOptions
}
