package events

import (
	"github.com/ThreeDotsLabs/watermill"

	"github.com/ghuser/itemvalidation/pkg/logger"
)

// watermillLogger routes Watermill's internal logs into the service logger.
// Watermill's trace level is folded into debug.
type watermillLogger struct{ log logger.Logger }

func newWatermillLogger(log logger.Logger) *watermillLogger {
	return &watermillLogger{log: log.With("component", "watermill")}
}

func (a *watermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error(msg, append(fieldsToArgs(fields), "error", err)...)
}

func (a *watermillLogger) Info(msg string, fields watermill.LogFields) {
	a.log.Info(msg, fieldsToArgs(fields)...)
}

func (a *watermillLogger) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}

func (a *watermillLogger) Trace(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}

func (a *watermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &watermillLogger{log: a.log.With(fieldsToArgs(fields)...)}
}

func fieldsToArgs(fields watermill.LogFields) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
