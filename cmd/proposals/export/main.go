package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-proposals/cmd/proposals/internal/bootstrap"
	proposalscmd "github.com/goliatone/go-proposals/internal/commands/proposals"
	"github.com/goliatone/go-proposals/internal/exporter"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runExport(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("proposals export: %v", err)
	}
}

func runExport(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("proposals-export", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a YAML or TOML configuration file")
	contentDir := fs.String("content-dir", "", "Path to the proposals content root (defaults to config)")
	outputDir := fs.String("output-dir", "", "Directory status snapshots are written under (defaults to config)")
	logLevel := fs.String("log-level", "", "Log level override")
	logFormat := fs.String("log-format", "", "Log format override (json, console, pretty)")
	classes := fs.String("classes", "", "Comma separated list of classes to export (defaults to all)")
	dryRun := fs.Bool("dry-run", false, "Render snapshots without writing them")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ConfigPath: *configPath,
		ContentDir: *contentDir,
		OutputDir:  *outputDir,
		LogLevel:   *logLevel,
		LogFormat:  *logFormat,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Commands == nil || module.Commands.Export == nil {
		return fmt.Errorf("export command not configured")
	}

	var result *exporter.Result
	cmd := proposalscmd.ExportCommand{
		Classes: bootstrap.SplitClasses(*classes),
		DryRun:  *dryRun,
		ResultCallback: func(r *exporter.Result) {
			result = r
		},
	}
	if err := module.Commands.Export.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute export command: %w", err)
	}
	if result == nil {
		return nil
	}

	verb := "wrote"
	if result.DryRun {
		verb = "would write"
	}
	for _, class := range result.Classes {
		for _, file := range class.Files {
			fmt.Fprintf(stdout, "%s %s (%d documents)\n", verb, file.Path, file.Documents)
		}
	}
	return nil
}
