package frontmatter

import (
	"regexp"

	"github.com/goliatone/go-proposals/internal/domain"
)

// Kind is the declared value type of a frontmatter field.
type Kind int

const (
	KindAny Kind = iota
	KindString
	KindNumber
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "any"
	}
}

// Field declares one frontmatter key.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	// Nullable accepts an explicit null for optional fields.
	Nullable bool
	OneOf    []string
	Pattern  *regexp.Regexp
	// Internal fields are attached by the pipeline rather than written by
	// authors, and are left out of the published JSON Schema.
	Internal bool
}

// FileField is the key the validator attaches with the document path.
const FileField = "file"

// ProposalPattern matches tally.xyz proposal links ending in an identifier
// of at least seven alphanumeric characters.
var ProposalPattern = regexp.MustCompile(`^https?://(tally\.xyz).*/([A-Za-z0-9]{7,})$`)

// commonFields returns the fields shared by every class.
func commonFields(statuses domain.StatusSet) []Field {
	return []Field{
		{Name: FileField, Kind: KindString, Required: true, Internal: true},
		{Name: "title", Kind: KindString, Required: true},
		{Name: "type", Kind: KindString, Required: true, OneOf: domain.ProposalTypes},
		{Name: "proposal", Kind: KindString, Nullable: true, Pattern: ProposalPattern},
		{Name: "status", Kind: KindString, OneOf: statuses.Strings()},
		{Name: "author", Kind: KindString, Required: true},
		{Name: "network", Kind: KindString, Required: true, OneOf: domain.Networks},
		{Name: "implementor", Kind: KindString, Nullable: true},
		{Name: "release", Kind: KindString, Nullable: true},
		{Name: "created", Kind: KindDate, Nullable: true},
		{Name: "updated", Kind: KindDate, Nullable: true},
		{Name: "requires", Kind: KindAny, Nullable: true},
		{Name: "discussions-to", Kind: KindString, Nullable: true},
	}
}

// classFields returns the fields a class adds to, or replaces in, the
// common set. SEP redeclares network as a plain required string.
func classFields(class domain.DocumentClass) []Field {
	switch class {
	case domain.ClassSEP:
		return []Field{
			{Name: "sep", Kind: KindNumber, Required: true},
			{Name: "network", Kind: KindString, Required: true},
		}
	case domain.ClassSCCP:
		return []Field{
			{Name: "sccp", Kind: KindNumber, Required: true},
		}
	default:
		return nil
	}
}

// mergeFields overlays extra on base: a field in extra replaces the base
// field with the same name, new fields are appended.
func mergeFields(base, extra []Field) []Field {
	out := append([]Field(nil), base...)
	index := make(map[string]int, len(out))
	for i, field := range out {
		index[field.Name] = i
	}
	for _, field := range extra {
		if i, ok := index[field.Name]; ok {
			out[i] = field
			continue
		}
		index[field.Name] = len(out)
		out = append(out, field)
	}
	return out
}
