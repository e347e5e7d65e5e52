package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-proposals/internal/domain"
	"github.com/goliatone/go-proposals/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.StatusSet().Len() != len(domain.DefaultStatuses) {
		t.Fatalf("expected default statuses, got %v", cfg.Statuses)
	}
	sep, ok := cfg.Class(domain.ClassSEP)
	if !ok || sep.Glob != "content/seps/*.md" || sep.OutputDir != "api/seps" {
		t.Fatalf("unexpected sep class config: %#v", sep)
	}
}

func TestConfigValidateErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"no statuses", func(c *runtimeconfig.Config) { c.Statuses = nil }, runtimeconfig.ErrStatusesRequired},
		{"blank status", func(c *runtimeconfig.Config) { c.Statuses = []string{"Draft", " "} }, runtimeconfig.ErrStatusesRequired},
		{"duplicate status", func(c *runtimeconfig.Config) { c.Statuses = []string{"Draft", "Draft"} }, runtimeconfig.ErrStatusDuplicate},
		{"unknown class", func(c *runtimeconfig.Config) { c.Classes[0].Name = "sip" }, runtimeconfig.ErrClassUnknown},
		{"duplicate class", func(c *runtimeconfig.Config) { c.Classes[1].Name = "SEP" }, runtimeconfig.ErrClassDuplicate},
		{"missing glob", func(c *runtimeconfig.Config) { c.Classes[0].Glob = "" }, runtimeconfig.ErrClassGlobRequired},
		{"missing output dir", func(c *runtimeconfig.Config) { c.Classes[1].OutputDir = " " }, runtimeconfig.ErrClassOutputDirRequired},
		{"missing output root", func(c *runtimeconfig.Config) { c.Exporter.OutputRoot = "" }, runtimeconfig.ErrOutputRootRequired},
		{"negative workers", func(c *runtimeconfig.Config) { c.Validator.Workers = -1 }, runtimeconfig.ErrWorkersInvalid},
		{"bad level", func(c *runtimeconfig.Config) { c.Logging.Level = "loud" }, runtimeconfig.ErrLoggingLevelInvalid},
		{"bad format", func(c *runtimeconfig.Config) { c.Logging.Format = "xml" }, runtimeconfig.ErrLoggingFormatInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proposals.yaml")
	writeFile(t, path, `
content_root: site
statuses:
  - Draft
  - Final
exporter:
  output_root: dist
logging:
  level: debug
`)

	cfg, err := runtimeconfig.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ContentRoot != "site" {
		t.Fatalf("expected content root site, got %q", cfg.ContentRoot)
	}
	if len(cfg.Statuses) != 2 || cfg.Statuses[1] != "Final" {
		t.Fatalf("expected overridden statuses, got %v", cfg.Statuses)
	}
	if cfg.Exporter.OutputRoot != "dist" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if len(cfg.Classes) != 2 {
		t.Fatalf("expected default classes to survive, got %#v", cfg.Classes)
	}
	if cfg.Validator.Workers != 8 {
		t.Fatalf("expected default workers, got %d", cfg.Validator.Workers)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proposals.toml")
	writeFile(t, path, `
statuses = ["Draft", "Review", "Final"]

[validator]
workers = 2

[[classes]]
name = "sccp"
glob = "docs/sccp/*.md"
output_dir = "api/sccp"
`)

	cfg, err := runtimeconfig.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Validator.Workers != 2 {
		t.Fatalf("expected workers 2, got %d", cfg.Validator.Workers)
	}
	if len(cfg.Classes) != 1 || cfg.Classes[0].Glob != "docs/sccp/*.md" {
		t.Fatalf("expected single sccp class, got %#v", cfg.Classes)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proposals.ini")
	writeFile(t, path, "statuses=Draft")

	if _, err := runtimeconfig.Load(path); !errors.Is(err, runtimeconfig.ErrConfigFormatUnsupported) {
		t.Fatalf("expected ErrConfigFormatUnsupported, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := runtimeconfig.Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func writeFile(tb testing.TB, path, content string) {
	tb.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
}
