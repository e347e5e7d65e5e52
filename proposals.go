package proposals

import (
	"context"
	"fmt"

	proposalscmd "github.com/goliatone/go-proposals/internal/commands/proposals"
	"github.com/goliatone/go-proposals/internal/domain"
	"github.com/goliatone/go-proposals/internal/exporter"
	"github.com/goliatone/go-proposals/internal/index"
	"github.com/goliatone/go-proposals/internal/logging"
	"github.com/goliatone/go-proposals/internal/logging/gologger"
	"github.com/goliatone/go-proposals/internal/markdown"
	"github.com/goliatone/go-proposals/internal/validation"
	"github.com/goliatone/go-proposals/internal/validator"
	"github.com/goliatone/go-proposals/pkg/interfaces"
)

// DocumentClass exports the proposal class identifier.
type DocumentClass = domain.DocumentClass

const (
	ClassSEP  = domain.ClassSEP
	ClassSCCP = domain.ClassSCCP
)

// ValidationReport exports the summary of a successful validation run.
type ValidationReport = validator.Report

// ExportResult exports the summary of a status export.
type ExportResult = exporter.Result

// CommandHandlers exports the command handlers wired by the module.
type CommandHandlers = proposalscmd.HandlerSet

// CommandRegistry receives the command handlers during construction.
type CommandRegistry = proposalscmd.CommandRegistry

// Option customises module construction.
type Option func(*moduleOptions)

type moduleOptions struct {
	provider interfaces.LoggerProvider
	markdown interfaces.MarkdownService
	writer   interfaces.ArtifactWriter
	registry CommandRegistry
}

// WithLoggerProvider replaces the go-logger provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *moduleOptions) {
		o.provider = provider
	}
}

// WithMarkdownService replaces the filesystem markdown service rooted at Config.ContentRoot.
func WithMarkdownService(service interfaces.MarkdownService) Option {
	return func(o *moduleOptions) {
		o.markdown = service
	}
}

// WithArtifactWriter replaces the filesystem writer rooted at Config.Exporter.OutputRoot.
func WithArtifactWriter(writer interfaces.ArtifactWriter) Option {
	return func(o *moduleOptions) {
		o.writer = writer
	}
}

// WithCommandRegistry registers the command handlers with reg.
func WithCommandRegistry(reg CommandRegistry) Option {
	return func(o *moduleOptions) {
		o.registry = reg
	}
}

// Module is the top level façade over the validator and exporter pipelines.
type Module struct {
	cfg       Config
	statuses  domain.StatusSet
	provider  interfaces.LoggerProvider
	markdown  interfaces.MarkdownService
	index     *index.Index
	validator *validator.Service
	exporter  *exporter.Service
	commands  *proposalscmd.HandlerSet
}

// New validates cfg and wires every pipeline component.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := moduleOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	provider := options.provider
	if provider == nil {
		built, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		provider = built
	}

	md := options.markdown
	if md == nil {
		service, err := markdown.NewService(markdown.Config{
			BasePath: cfg.ContentRoot,
			Parser:   cfg.Markdown.Parser,
		}, nil, logging.MarkdownLogger(provider))
		if err != nil {
			return nil, err
		}
		md = service
	}

	statuses := cfg.StatusSet()
	validatorTargets, exportTargets := targets(cfg)

	validatorService, err := validator.NewService(validator.Config{
		Targets:  validatorTargets,
		Statuses: statuses,
		Workers:  cfg.Validator.Workers,
	}, md, logging.ValidatorLogger(provider))
	if err != nil {
		return nil, err
	}

	idx, err := index.New(index.Config{Parser: cfg.Markdown.Parser}, md, logging.ExporterLogger(provider))
	if err != nil {
		return nil, err
	}

	writer := options.writer
	if writer == nil {
		writer = exporter.NewFileWriter(cfg.Exporter.OutputRoot)
	}
	exporterService, err := exporter.NewService(exportTargets, idx, writer, logging.ExporterLogger(provider))
	if err != nil {
		return nil, err
	}

	module := &Module{
		cfg:       cfg,
		statuses:  statuses,
		provider:  provider,
		markdown:  md,
		index:     idx,
		validator: validatorService,
		exporter:  exporterService,
	}

	handlers, err := proposalscmd.RegisterProposalCommands(options.registry, proposalscmd.Dependencies{
		Validator: validatorService,
		Exporter:  exporterService,
		Schema:    module.Schema,
		Statuses:  statuses,
	}, provider)
	if err != nil {
		return nil, fmt.Errorf("register proposal commands: %w", err)
	}
	module.commands = handlers

	return module, nil
}

func targets(cfg Config) ([]validator.Target, []exporter.Target) {
	validatorTargets := make([]validator.Target, 0, len(cfg.Classes))
	exportTargets := make([]exporter.Target, 0, len(cfg.Classes))
	for _, class := range cfg.Classes {
		parsed, err := domain.ParseClass(class.Name)
		if err != nil {
			continue
		}
		validatorTargets = append(validatorTargets, validator.Target{Class: parsed, Glob: class.Glob})
		exportTargets = append(exportTargets, exporter.Target{Class: parsed, OutputDir: class.OutputDir})
	}
	return validatorTargets, exportTargets
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.cfg
}

// Statuses returns the ordered status set shared by the validator and exporter.
func (m *Module) Statuses() domain.StatusSet {
	return m.statuses
}

// Logger returns the named module logger.
func (m *Module) Logger(name string) interfaces.Logger {
	return logging.ModuleLogger(m.provider, name)
}

// Markdown returns the document loader.
func (m *Module) Markdown() interfaces.MarkdownService {
	return m.markdown
}

// Index returns the document index the exporter queries.
func (m *Module) Index() *index.Index {
	return m.index
}

// Commands returns the command handlers.
func (m *Module) Commands() *CommandHandlers {
	return m.commands
}

// Validate checks every document of classes, or of all classes when none are given.
func (m *Module) Validate(ctx context.Context, classes ...DocumentClass) (*ValidationReport, error) {
	return m.validator.Run(ctx, validator.Request{Classes: classes})
}

// Export writes the status snapshots of classes, or of all classes when none are given.
func (m *Module) Export(ctx context.Context, dryRun bool, classes ...DocumentClass) (*ExportResult, error) {
	return m.exporter.Export(ctx, exporter.Request{
		Statuses: m.statuses,
		Classes:  classes,
		DryRun:   dryRun,
	})
}

// Schema renders the JSON Schema contract of class and checks that it compiles.
func (m *Module) Schema(class DocumentClass) (map[string]any, error) {
	schema, err := validation.FrontmatterSchema(class, m.statuses)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateSchema(schema); err != nil {
		return nil, fmt.Errorf("%s schema: %w", class.Label(), err)
	}
	return schema, nil
}
