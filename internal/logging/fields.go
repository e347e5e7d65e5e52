package logging

import (
	"github.com/goliatone/go-proposals/pkg/interfaces"
)

// WithFields returns logger annotated with fields when it implements
// interfaces.FieldsLogger. Blank keys and nil values are dropped, and a nil
// logger yields the no-op logger.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		if key == "" || value == nil {
			continue
		}
		copied[key] = value
	}
	if len(copied) == 0 {
		return logger
	}
	return fieldsLogger.WithFields(copied)
}
