// Package index exposes proposal documents as a queryable collection: all
// documents of a class, grouped by their raw status value.
package index

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/goliatone/go-proposals/internal/domain"
	"github.com/goliatone/go-proposals/internal/logging"
	"github.com/goliatone/go-proposals/pkg/interfaces"
)

// DefaultPattern selects every markdown document under the content root.
const DefaultPattern = "**/*.md"

// StatusField is the frontmatter key documents are grouped by.
const StatusField = "status"

var errServiceRequired = errors.New("index: markdown service is required")

// Group holds the documents sharing one status value.
type Group struct {
	FieldValue string
	Documents  []*interfaces.Document
}

// Config tunes which files the index reads.
type Config struct {
	Pattern string
	Parser  interfaces.ParseOptions
}

// Index queries proposal documents through a markdown service.
type Index struct {
	cfg      Config
	markdown interfaces.MarkdownService
	logger   interfaces.Logger
}

// New constructs an Index. An empty pattern falls back to DefaultPattern.
func New(cfg Config, markdown interfaces.MarkdownService, logger interfaces.Logger) (*Index, error) {
	if markdown == nil {
		return nil, errServiceRequired
	}
	if strings.TrimSpace(cfg.Pattern) == "" {
		cfg.Pattern = DefaultPattern
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Index{cfg: cfg, markdown: markdown, logger: logger}, nil
}

// Documents returns the rendered documents of class in path order. A
// document belongs to a class when its path contains the class marker and
// its class number field is present and non-null.
func (i *Index) Documents(ctx context.Context, class domain.DocumentClass) ([]*interfaces.Document, error) {
	docs, err := i.markdown.LoadGlob(ctx, i.cfg.Pattern, interfaces.LoadOptions{
		Render: true,
		Parser: i.cfg.Parser,
	})
	if err != nil {
		return nil, fmt.Errorf("index %s documents: %w", class, err)
	}

	marker := class.PathMarker()
	field := class.NumberField()
	out := make([]*interfaces.Document, 0, len(docs))
	for _, doc := range docs {
		if doc == nil || !strings.Contains(path.Join("/", doc.FilePath), marker) {
			continue
		}
		if doc.Frontmatter[field] == nil {
			continue
		}
		out = append(out, doc)
	}

	i.logger.Debug("index.documents.resolved", "class", string(class), "scanned", len(docs), "matched", len(out))
	return out, nil
}

// Groups partitions the documents of class by raw status, in the order each
// status is first seen. Documents without a status are left out.
func (i *Index) Groups(ctx context.Context, class domain.DocumentClass) ([]Group, error) {
	docs, err := i.Documents(ctx, class)
	if err != nil {
		return nil, err
	}

	groups := make([]Group, 0)
	positions := make(map[string]int)
	for _, doc := range docs {
		value, ok := statusValue(doc)
		if !ok {
			continue
		}
		pos, seen := positions[value]
		if !seen {
			pos = len(groups)
			positions[value] = pos
			groups = append(groups, Group{FieldValue: value})
		}
		groups[pos].Documents = append(groups[pos].Documents, doc)
	}
	return groups, nil
}

func statusValue(doc *interfaces.Document) (string, bool) {
	raw, ok := doc.Frontmatter[StatusField]
	if !ok || raw == nil {
		return "", false
	}
	if value, ok := raw.(string); ok {
		return value, true
	}
	return fmt.Sprint(raw), true
}
