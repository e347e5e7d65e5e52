package proposalscmd

import (
	"context"
	"errors"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-proposals/internal/commands"
	"github.com/goliatone/go-proposals/internal/domain"
	"github.com/goliatone/go-proposals/internal/exporter"
	"github.com/goliatone/go-proposals/internal/logging"
	"github.com/goliatone/go-proposals/internal/validator"
	"github.com/goliatone/go-proposals/pkg/interfaces"
)

const (
	validateOperation = "proposals.validate"
	exportOperation   = "proposals.export"
	schemaOperation   = "proposals.schema"
)

var (
	errValidatorRequired = errors.New("proposals command: validator is required")
	errExporterRequired  = errors.New("proposals command: exporter is required")
	errSchemaRequired    = errors.New("proposals command: schema source is required")
)

var (
	_ command.Commander[ValidateCommand] = (*ValidateHandler)(nil)
	_ command.Commander[ExportCommand]   = (*ExportHandler)(nil)
	_ command.Commander[SchemaCommand]   = (*SchemaHandler)(nil)
)

// Validator runs frontmatter validation.
type Validator interface {
	Run(ctx context.Context, req validator.Request) (*validator.Report, error)
}

// Exporter writes status snapshots.
type Exporter interface {
	Export(ctx context.Context, req exporter.Request) (*exporter.Result, error)
}

// SchemaSource renders the JSON Schema contract of a class.
type SchemaSource func(class domain.DocumentClass) (map[string]any, error)

// ValidateHandler runs the validator through the shared command handler.
type ValidateHandler struct {
	inner *commands.Handler[ValidateCommand]
}

// NewValidateHandler binds a handler to the supplied validator.
func NewValidateHandler(service Validator, logger interfaces.Logger, opts ...commands.HandlerOption[ValidateCommand]) *ValidateHandler {
	baseLogger := ensureLogger(logger)

	exec := func(ctx context.Context, msg ValidateCommand) error {
		if service == nil {
			return errValidatorRequired
		}
		report, err := service.Run(ctx, validator.Request{Classes: parseClasses(msg.Classes)})
		if err != nil {
			return err
		}
		commands.RunLogger(ctx, baseLogger).Info("proposals.command.validate.completed",
			"documents", report.Documents,
			"duration_ms", report.Duration.Milliseconds(),
		)
		if msg.ResultCallback != nil {
			msg.ResultCallback(report)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ValidateCommand]{
		commands.WithLogger[ValidateCommand](baseLogger),
		commands.WithOperation[ValidateCommand](validateOperation),
		commands.WithMessageFields(func(msg ValidateCommand) map[string]any {
			return classFields(msg.Classes)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ValidateCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ValidateHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ValidateCommand].
func (h *ValidateHandler) Execute(ctx context.Context, msg ValidateCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CLIHandler satisfies command.CLICommand by returning the handler.
func (h *ValidateHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for validation.
func (h *ValidateHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"proposals", "validate"},
		Group:       "proposals",
		Description: "Validate proposal frontmatter",
	}
}

// ExportHandler runs the status exporter through the shared command handler.
type ExportHandler struct {
	inner *commands.Handler[ExportCommand]
}

// NewExportHandler binds a handler to the supplied exporter and status set.
func NewExportHandler(service Exporter, statuses domain.StatusSet, logger interfaces.Logger, opts ...commands.HandlerOption[ExportCommand]) *ExportHandler {
	baseLogger := ensureLogger(logger)

	exec := func(ctx context.Context, msg ExportCommand) error {
		if service == nil {
			return errExporterRequired
		}
		result, err := service.Export(ctx, exporter.Request{
			Statuses: statuses,
			Classes:  parseClasses(msg.Classes),
			DryRun:   msg.DryRun,
		})
		if err != nil {
			return err
		}
		files := 0
		for _, class := range result.Classes {
			files += len(class.Files)
		}
		commands.RunLogger(ctx, baseLogger).Info("proposals.command.export.completed",
			"files", files,
			"dry_run", result.DryRun,
			"duration_ms", result.Duration.Milliseconds(),
		)
		if msg.ResultCallback != nil {
			msg.ResultCallback(result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExportCommand]{
		commands.WithLogger[ExportCommand](baseLogger),
		commands.WithOperation[ExportCommand](exportOperation),
		commands.WithMessageFields(func(msg ExportCommand) map[string]any {
			fields := classFields(msg.Classes)
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ExportCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExportHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ExportCommand].
func (h *ExportHandler) Execute(ctx context.Context, msg ExportCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CLIHandler satisfies command.CLICommand by returning the handler.
func (h *ExportHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for the status export.
func (h *ExportHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"proposals", "export"},
		Group:       "proposals",
		Description: "Export per-status JSON snapshots",
	}
}

// SchemaHandler renders a class JSON Schema through the shared command handler.
type SchemaHandler struct {
	inner *commands.Handler[SchemaCommand]
}

// NewSchemaHandler binds a handler to the supplied schema source.
func NewSchemaHandler(source SchemaSource, logger interfaces.Logger, opts ...commands.HandlerOption[SchemaCommand]) *SchemaHandler {
	baseLogger := ensureLogger(logger)

	exec := func(ctx context.Context, msg SchemaCommand) error {
		if source == nil {
			return errSchemaRequired
		}
		class, err := domain.ParseClass(msg.Class)
		if err != nil {
			return err
		}
		schema, err := source(class)
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(schema)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SchemaCommand]{
		commands.WithLogger[SchemaCommand](baseLogger),
		commands.WithOperation[SchemaCommand](schemaOperation),
		commands.WithMessageFields(func(msg SchemaCommand) map[string]any {
			return map[string]any{"class": strings.ToLower(strings.TrimSpace(msg.Class))}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SchemaHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[SchemaCommand].
func (h *SchemaHandler) Execute(ctx context.Context, msg SchemaCommand) error {
	return h.inner.Execute(ctx, msg)
}

func classFields(classes []string) map[string]any {
	fields := map[string]any{}
	if len(classes) > 0 {
		fields["classes"] = strings.Join(classes, ",")
	}
	return fields
}

func ensureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
