package proposalscmd

import (
	"github.com/goliatone/go-proposals/internal/commands"
	"github.com/goliatone/go-proposals/internal/domain"
	"github.com/goliatone/go-proposals/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Dependencies lists the services the proposal commands drive.
type Dependencies struct {
	Validator Validator
	Exporter  Exporter
	Schema    SchemaSource
	Statuses  domain.StatusSet
}

// HandlerSet groups the handlers produced by RegisterProposalCommands.
type HandlerSet struct {
	Validate *ValidateHandler
	Export   *ExportHandler
	Schema   *SchemaHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	validateOpts []commands.HandlerOption[ValidateCommand]
	exportOpts   []commands.HandlerOption[ExportCommand]
	schemaOpts   []commands.HandlerOption[SchemaCommand]
}

// WithValidateHandlerOptions forwards options to the ValidateHandler constructor.
func WithValidateHandlerOptions(opts ...commands.HandlerOption[ValidateCommand]) Option {
	return func(cfg *options) {
		cfg.validateOpts = append(cfg.validateOpts, opts...)
	}
}

// WithExportHandlerOptions forwards options to the ExportHandler constructor.
func WithExportHandlerOptions(opts ...commands.HandlerOption[ExportCommand]) Option {
	return func(cfg *options) {
		cfg.exportOpts = append(cfg.exportOpts, opts...)
	}
}

// WithSchemaHandlerOptions forwards options to the SchemaHandler constructor.
func WithSchemaHandlerOptions(opts ...commands.HandlerOption[SchemaCommand]) Option {
	return func(cfg *options) {
		cfg.schemaOpts = append(cfg.schemaOpts, opts...)
	}
}

// RegisterProposalCommands builds the proposal command handlers and registers them with reg
// when it is non-nil. The handler set is returned so callers can execute handlers directly.
func RegisterProposalCommands(reg CommandRegistry, deps Dependencies, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "proposals")
	set := &HandlerSet{
		Validate: NewValidateHandler(deps.Validator, logger, cfg.validateOpts...),
		Export:   NewExportHandler(deps.Exporter, deps.Statuses, logger, cfg.exportOpts...),
		Schema:   NewSchemaHandler(deps.Schema, logger, cfg.schemaOpts...),
	}

	if reg != nil {
		for _, handler := range []any{set.Validate, set.Export, set.Schema} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
