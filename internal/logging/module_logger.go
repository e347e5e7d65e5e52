package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-proposals/pkg/interfaces"
)

const (
	rootModule      = "proposals"
	validatorModule = "proposals.validator"
	exporterModule  = "proposals.exporter"
	markdownModule  = "proposals.markdown"
	CommandsModule  = "proposals.commands"
)

const (
	fieldDocumentPath  = "document_path"
	fieldDocumentClass = "document_class"
	fieldStatus        = "status"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field so entries can be filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ValidatorLogger returns the logger namespace reserved for frontmatter validation runs.
func ValidatorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, validatorModule)
}

// ExporterLogger returns the logger namespace reserved for status exports.
func ExporterLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, exporterModule)
}

// MarkdownLogger returns the logger namespace reserved for document loading.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, CommandsModule)
}

// WithDocumentContext enriches the logger with the document path, class and
// status. Empty values are ignored.
func WithDocumentContext(logger interfaces.Logger, path, class, status string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldDocumentPath] = trimmed
	}
	if trimmed := strings.TrimSpace(class); trimmed != "" {
		fields[fieldDocumentClass] = trimmed
	}
	if trimmed := strings.TrimSpace(status); trimmed != "" {
		fields[fieldStatus] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
