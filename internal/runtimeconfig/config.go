package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-proposals/internal/domain"
	"github.com/goliatone/go-proposals/pkg/interfaces"
)

var (
	ErrStatusesRequired       = errors.New("proposals config: at least one status is required")
	ErrStatusDuplicate        = errors.New("proposals config: status listed more than once")
	ErrClassUnknown           = errors.New("proposals config: document class is unknown")
	ErrClassDuplicate         = errors.New("proposals config: document class configured more than once")
	ErrClassGlobRequired      = errors.New("proposals config: document class glob is required")
	ErrClassOutputDirRequired = errors.New("proposals config: document class output directory is required")
	ErrOutputRootRequired     = errors.New("proposals config: exporter output root is required")
	ErrWorkersInvalid         = errors.New("proposals config: validator workers must be zero or positive")
	ErrLoggingLevelInvalid    = errors.New("proposals config: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("proposals config: logging format is invalid")
)

// Config aggregates everything the validator and exporter pipelines need.
type Config struct {
	// ContentRoot is the directory class globs are resolved against.
	ContentRoot string          `yaml:"content_root" toml:"content_root"`
	Statuses    []string        `yaml:"statuses" toml:"statuses"`
	Classes     []ClassConfig   `yaml:"classes" toml:"classes"`
	Validator   ValidatorConfig `yaml:"validator" toml:"validator"`
	Exporter    ExporterConfig  `yaml:"exporter" toml:"exporter"`
	Markdown    MarkdownConfig  `yaml:"markdown" toml:"markdown"`
	Logging     LoggingConfig   `yaml:"logging" toml:"logging"`
}

// ClassConfig binds a document class to its source glob and export directory.
type ClassConfig struct {
	Name      string `yaml:"name" toml:"name"`
	Glob      string `yaml:"glob" toml:"glob"`
	OutputDir string `yaml:"output_dir" toml:"output_dir"`
}

// ValidatorConfig tunes the frontmatter validation run.
type ValidatorConfig struct {
	// Workers bounds concurrent file reads. Zero selects the validator default.
	Workers int `yaml:"workers" toml:"workers"`
}

// ExporterConfig controls where status snapshots are written.
type ExporterConfig struct {
	OutputRoot string `yaml:"output_root" toml:"output_root"`
}

// MarkdownConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownConfig struct {
	Parser interfaces.ParseOptions `yaml:"parser" toml:"parser"`
}

// LoggingConfig captures go-logger options.
type LoggingConfig struct {
	Level     string   `yaml:"level" toml:"level"`
	Format    string   `yaml:"format" toml:"format"`
	AddSource bool     `yaml:"add_source" toml:"add_source"`
	Focus     []string `yaml:"focus" toml:"focus"`
}

// DefaultConfig returns the layout used by the proposals repository.
func DefaultConfig() Config {
	classes := make([]ClassConfig, 0, len(domain.Classes))
	for _, class := range domain.Classes {
		classes = append(classes, ClassConfig{
			Name:      string(class),
			Glob:      class.DefaultGlob(),
			OutputDir: class.DefaultOutputDir(),
		})
	}
	return Config{
		ContentRoot: ".",
		Statuses:    append([]string(nil), domain.DefaultStatuses...),
		Classes:     classes,
		Validator: ValidatorConfig{
			Workers: 8,
		},
		Exporter: ExporterConfig{
			OutputRoot: "public",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if len(cfg.Statuses) == 0 {
		return ErrStatusesRequired
	}
	seen := map[string]struct{}{}
	for _, status := range cfg.Statuses {
		trimmed := strings.TrimSpace(status)
		if trimmed == "" {
			return ErrStatusesRequired
		}
		if _, ok := seen[trimmed]; ok {
			return fmt.Errorf("%w: %s", ErrStatusDuplicate, trimmed)
		}
		seen[trimmed] = struct{}{}
	}

	classes := map[domain.DocumentClass]struct{}{}
	for _, class := range cfg.Classes {
		parsed, err := domain.ParseClass(class.Name)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrClassUnknown, class.Name)
		}
		if _, ok := classes[parsed]; ok {
			return fmt.Errorf("%w: %s", ErrClassDuplicate, parsed)
		}
		classes[parsed] = struct{}{}
		if strings.TrimSpace(class.Glob) == "" {
			return fmt.Errorf("%w: %s", ErrClassGlobRequired, parsed)
		}
		if strings.TrimSpace(class.OutputDir) == "" {
			return fmt.Errorf("%w: %s", ErrClassOutputDirRequired, parsed)
		}
	}

	if strings.TrimSpace(cfg.Exporter.OutputRoot) == "" {
		return ErrOutputRootRequired
	}
	if cfg.Validator.Workers < 0 {
		return ErrWorkersInvalid
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

// StatusSet returns the configured statuses as an ordered set.
func (cfg Config) StatusSet() domain.StatusSet {
	return domain.NewStatusSet(cfg.Statuses...)
}

// Class returns the configuration for the supplied class.
func (cfg Config) Class(class domain.DocumentClass) (ClassConfig, bool) {
	for _, candidate := range cfg.Classes {
		if parsed, err := domain.ParseClass(candidate.Name); err == nil && parsed == class {
			return candidate, true
		}
	}
	return ClassConfig{}, false
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
