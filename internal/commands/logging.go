package commands

import (
	"strings"

	"github.com/goliatone/go-proposals/internal/logging"
	"github.com/goliatone/go-proposals/pkg/interfaces"
)

// CommandLogger returns the logger for the handlers of one command group,
// named proposals.commands.<group>.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	group = strings.ToLower(strings.TrimSpace(group))
	if group == "" {
		return logging.CommandsLogger(provider)
	}
	return logging.WithFields(logging.ModuleLogger(provider, logging.CommandsModule+"."+group), map[string]any{
		"command_group": group,
	})
}
