package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-proposals/internal/logging"
	"github.com/goliatone/go-proposals/pkg/interfaces"
)

// TelemetryStatus classifies a command outcome.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo is handed to telemetry callbacks once a command returns.
type TelemetryInfo struct {
	Command   string
	Operation string
	// Fields are the run fields already attached to Logger.
	Fields   map[string]any
	Duration time.Duration
	Error    error
	Status   TelemetryStatus
	Logger   interfaces.Logger
}

// Telemetry replaces the handler's outcome logging when configured.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs the outcome with its duration. The run logger carried
// in info is preferred; fallback is used when the handler did not provide one.
func DefaultTelemetry[T command.Message](fallback interfaces.Logger) Telemetry[T] {
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := info.Logger
		if entry == nil {
			entry = logging.WithFields(fallback, info.Fields)
		}
		args := []any{"duration_ms", info.Duration.Milliseconds()}
		switch info.Status {
		case TelemetryStatusSuccess:
			entry.Info("proposals.command.success", args...)
		case TelemetryStatusContextError:
			entry.Error("proposals.command.context_error", append(args, "error", info.Error)...)
		default:
			entry.Error("proposals.command.failed", append(args, "error", info.Error)...)
		}
	}
}
