package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-proposals/internal/logging"
	"github.com/goliatone/go-proposals/pkg/interfaces"
)

// Config controls where documents are read from and how bodies render.
type Config struct {
	BasePath string
	Parser   interfaces.ParseOptions
}

// Service implements interfaces.MarkdownService for filesystem-backed documents.
type Service struct {
	cfg    Config
	parser interfaces.MarkdownParser
	loader *Loader
	logger interfaces.Logger
}

var _ interfaces.MarkdownService = (*Service)(nil)

// NewService constructs a markdown service rooted at cfg.BasePath. When
// parser is nil a GoldmarkParser with cfg.Parser defaults is used.
func NewService(cfg Config, parser interfaces.MarkdownParser, logger interfaces.Logger) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	return NewServiceFS(filesystem, cfg, parser, logger), nil
}

// NewServiceFS constructs a markdown service over an arbitrary filesystem.
func NewServiceFS(filesystem fs.FS, cfg Config, parser interfaces.MarkdownParser, logger interfaces.Logger) *Service {
	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		cfg:    cfg,
		parser: parser,
		loader: NewLoader(filesystem, cfg.BasePath),
		logger: logger,
	}
}

// Glob resolves pattern relative to the base path.
func (s *Service) Glob(ctx context.Context, pattern string) ([]string, error) {
	matches, err := s.loader.Glob(ctx, pattern)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("markdown.glob.resolved", "pattern", pattern, "matches", len(matches))
	return matches, nil
}

// Load reads a single document relative to the base path.
func (s *Service) Load(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.Document, error) {
	doc, err := s.loader.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	if opts.Render {
		if err := s.renderDocument(ctx, doc, opts.Parser); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// LoadGlob loads every document matching pattern, in path order.
func (s *Service) LoadGlob(ctx context.Context, pattern string, opts interfaces.LoadOptions) ([]*interfaces.Document, error) {
	paths, err := s.Glob(ctx, pattern)
	if err != nil {
		return nil, err
	}
	docs := make([]*interfaces.Document, 0, len(paths))
	for _, path := range paths {
		doc, err := s.Load(ctx, path, opts)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Render parses Markdown bytes into HTML using the configured parser.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.parser.ParseWithOptions(markdown, mergeParseOptions(s.cfg.Parser, opts))
}

func (s *Service) renderDocument(ctx context.Context, doc *interfaces.Document, overrides interfaces.ParseOptions) error {
	if doc == nil {
		return errors.New("markdown service: document is nil")
	}
	html, err := s.Render(ctx, doc.Body, overrides)
	if err != nil {
		return fmt.Errorf("markdown render document %s: %w", doc.FilePath, err)
	}
	doc.BodyHTML = html
	return nil
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	return result
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("markdown service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
