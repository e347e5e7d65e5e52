package domain

import (
	"fmt"
	"strings"
)

// DocumentClass distinguishes the two proposal families.
type DocumentClass string

const (
	ClassSEP  DocumentClass = "sep"
	ClassSCCP DocumentClass = "sccp"
)

// Classes lists every supported class in processing order.
var Classes = []DocumentClass{ClassSEP, ClassSCCP}

// ParseClass resolves a class name case-insensitively.
func ParseClass(value string) (DocumentClass, error) {
	switch DocumentClass(strings.ToLower(strings.TrimSpace(value))) {
	case ClassSEP:
		return ClassSEP, nil
	case ClassSCCP:
		return ClassSCCP, nil
	default:
		return "", fmt.Errorf("domain: unknown document class %q", value)
	}
}

// NumberField returns the frontmatter key carrying the proposal number.
func (c DocumentClass) NumberField() string {
	return string(c)
}

// Label returns the display name used in logs and reports.
func (c DocumentClass) Label() string {
	return strings.ToUpper(string(c))
}

// DefaultGlob is the source pattern for the class, relative to the repository root.
func (c DocumentClass) DefaultGlob() string {
	return "content/" + c.directory() + "/*.md"
}

// PathMarker is the path fragment a document's location must contain to be
// indexed under this class.
func (c DocumentClass) PathMarker() string {
	return "/" + c.directory() + "/"
}

// DefaultOutputDir is the export directory for the class, relative to the
// exporter output root.
func (c DocumentClass) DefaultOutputDir() string {
	return "api/" + c.directory()
}

func (c DocumentClass) directory() string {
	if c == ClassSEP {
		return "seps"
	}
	return string(c)
}
