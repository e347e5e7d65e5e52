package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-proposals/cmd/proposals/internal/bootstrap"
	proposalscmd "github.com/goliatone/go-proposals/internal/commands/proposals"
	"github.com/goliatone/go-proposals/internal/frontmatter"
	"github.com/goliatone/go-proposals/internal/validator"
)

var moduleBuilder = bootstrap.BuildModule

var errInvalidDocument = errors.New("frontmatter validation failed")

func main() {
	if err := runValidate(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatalf("proposals validate: %v", err)
	}
}

func runValidate(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("proposals-validate", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a YAML or TOML configuration file")
	contentDir := fs.String("content-dir", "", "Path to the proposals content root (defaults to config)")
	logLevel := fs.String("log-level", "", "Log level override")
	logFormat := fs.String("log-format", "", "Log format override (json, console, pretty)")
	classes := fs.String("classes", "", "Comma separated list of classes to validate (defaults to all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ConfigPath: *configPath,
		ContentDir: *contentDir,
		LogLevel:   *logLevel,
		LogFormat:  *logFormat,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Commands == nil || module.Commands.Validate == nil {
		return fmt.Errorf("validate command not configured")
	}

	var report *validator.Report
	cmd := proposalscmd.ValidateCommand{
		Classes: bootstrap.SplitClasses(*classes),
		ResultCallback: func(r *validator.Report) {
			report = r
		},
	}
	if err := module.Commands.Validate.Execute(context.Background(), cmd); err != nil {
		if value, messages, ok := frontmatter.Details(err); ok {
			if writeErr := writeFailure(stderr, value, messages); writeErr != nil {
				return writeErr
			}
			return errInvalidDocument
		}
		return fmt.Errorf("execute validate command: %w", err)
	}

	documents := 0
	if report != nil {
		documents = report.Documents
	}
	fmt.Fprintf(stdout, "validated %d documents\n", documents)
	return nil
}

func writeFailure(w io.Writer, value map[string]any, messages []string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(map[string]any{
		"value":  value,
		"errors": messages,
	})
}
