package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-reqdocs/internal/logging"
	"github.com/goliatone/go-reqdocs/pkg/interfaces"
)

// TelemetryStatus classifies how a command execution ended.
type TelemetryStatus string

const (
	TelemetryStatusSuccess TelemetryStatus = "success"
	TelemetryStatusFailed  TelemetryStatus = "failed"
	// TelemetryStatusContextError covers cancellation and deadlines observed
	// after the command function returned without an error.
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo is handed to a Telemetry callback once per execution.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry replaces the handler's built-in outcome logging when set.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs the outcome with status and duration fields. Success
// goes to info, everything else to error.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	logger = EnsureLogger(logger)
	return func(_ context.Context, _ T, info TelemetryInfo) {
		logOutcome(logging.WithFields(logger, info.Fields), info.Status, info.Duration, info.Error)
	}
}

func logOutcome(logger interfaces.Logger, status TelemetryStatus, duration time.Duration, err error) {
	args := []any{"status", string(status), "duration_ms", duration.Milliseconds()}
	if status == TelemetryStatusSuccess {
		logger.Info("command.execute.success", args...)
		return
	}
	logger.Error("command.execute."+string(status), append(args, "error", err)...)
}
