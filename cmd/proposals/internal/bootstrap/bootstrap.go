package bootstrap

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-proposals"
	"github.com/goliatone/go-proposals/pkg/interfaces"
)

// Options captures the flags shared by the proposals CLIs.
type Options struct {
	ConfigPath     string
	ContentDir     string
	OutputDir      string
	LogLevel       string
	LogFormat      string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the proposals module with the command handlers and logger the CLIs use.
type Module struct {
	Module   *proposals.Module
	Commands *proposals.CommandHandlers
	Logger   interfaces.Logger
}

// BuildModule loads the configuration, applies flag overrides and constructs the module.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if trimmed := strings.TrimSpace(opts.ContentDir); trimmed != "" {
		cfg.ContentRoot = trimmed
	}
	if trimmed := strings.TrimSpace(opts.OutputDir); trimmed != "" {
		cfg.Exporter.OutputRoot = trimmed
	}
	if trimmed := strings.TrimSpace(opts.LogLevel); trimmed != "" {
		cfg.Logging.Level = trimmed
	}
	if trimmed := strings.TrimSpace(opts.LogFormat); trimmed != "" {
		cfg.Logging.Format = trimmed
	}

	moduleOpts := []proposals.Option{}
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, proposals.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := proposals.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise proposals module: %w", err)
	}

	return &Module{
		Module:   module,
		Commands: module.Commands(),
		Logger:   module.Logger("cli"),
	}, nil
}

// SplitClasses parses a comma separated class list into a trimmed, lower-cased slice.
func SplitClasses(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	classes := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.ToLower(strings.TrimSpace(part)); trimmed != "" {
			classes = append(classes, trimmed)
		}
	}
	return classes
}

func loadConfig(path string) (proposals.Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return proposals.DefaultConfig(), nil
	}
	return proposals.LoadConfig(path)
}
