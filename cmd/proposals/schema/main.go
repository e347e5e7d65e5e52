package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-proposals/cmd/proposals/internal/bootstrap"
	proposalscmd "github.com/goliatone/go-proposals/internal/commands/proposals"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runSchema(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("proposals schema: %v", err)
	}
}

func runSchema(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("proposals-schema", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a YAML or TOML configuration file")
	class := fs.String("class", "sep", "Document class to describe (sep or sccp)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{ConfigPath: *configPath})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Commands == nil || module.Commands.Schema == nil {
		return fmt.Errorf("schema command not configured")
	}

	var schema map[string]any
	cmd := proposalscmd.SchemaCommand{
		Class: *class,
		ResultCallback: func(s map[string]any) {
			schema = s
		},
	}
	if err := module.Commands.Schema.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute schema command: %w", err)
	}

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(schema)
}
