package proposalscmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-proposals/internal/domain"
	"github.com/goliatone/go-proposals/internal/exporter"
	"github.com/goliatone/go-proposals/internal/validator"
)

const (
	validateMessageType = "proposals.frontmatter.validate"
	exportMessageType   = "proposals.status.export"
	schemaMessageType   = "proposals.frontmatter.schema"
)

// ValidateCommand checks the frontmatter of every proposal document.
type ValidateCommand struct {
	// Classes restricts the run to the named classes; empty means all.
	Classes []string `json:"classes,omitempty"`
	// ResultCallback receives the report of a successful run.
	ResultCallback func(*validator.Report) `json:"-"`
}

// Type implements command.Message.
func (ValidateCommand) Type() string { return validateMessageType }

// Validate ensures every requested class is known.
func (cmd ValidateCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Classes, validation.Each(validation.By(knownClass))),
	)
}

// ExportCommand writes the per-status JSON snapshots.
type ExportCommand struct {
	Classes []string `json:"classes,omitempty"`
	// DryRun renders every snapshot without writing it.
	DryRun         bool                   `json:"dry_run,omitempty"`
	ResultCallback func(*exporter.Result) `json:"-"`
}

// Type implements command.Message.
func (ExportCommand) Type() string { return exportMessageType }

// Validate ensures every requested class is known.
func (cmd ExportCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Classes, validation.Each(validation.By(knownClass))),
	)
}

// SchemaCommand renders the JSON Schema contract of one class.
type SchemaCommand struct {
	Class          string               `json:"class"`
	ResultCallback func(map[string]any) `json:"-"`
}

// Type implements command.Message.
func (SchemaCommand) Type() string { return schemaMessageType }

// Validate ensures the class is present and known.
func (cmd SchemaCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Class, validation.Required, validation.By(knownClass)),
	)
}

func knownClass(value any) error {
	name, _ := value.(string)
	if _, err := domain.ParseClass(name); err != nil {
		return validation.NewError("proposals.class_unknown", "must be one of: sep, sccp")
	}
	return nil
}

func parseClasses(names []string) []domain.DocumentClass {
	if len(names) == 0 {
		return nil
	}
	out := make([]domain.DocumentClass, 0, len(names))
	for _, name := range names {
		if class, err := domain.ParseClass(name); err == nil {
			out = append(out, class)
		}
	}
	return out
}
