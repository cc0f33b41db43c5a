package events

import (
	"licensewatch-admin/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
)

// LoggerAdapter routes watermill's internal logging into the application logger.
type LoggerAdapter struct {
	logger logger.ILogger
	fields watermill.LogFields
}

func NewLoggerAdapter(l logger.ILogger) *LoggerAdapter {
	return &LoggerAdapter{logger: l}
}

func (a *LoggerAdapter) details(fields watermill.LogFields) map[string]interface{} {
	merged := make(map[string]interface{}, len(a.fields)+len(fields))
	for k, v := range a.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}

func (a *LoggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	details := a.details(fields)
	if err != nil {
		details["error"] = err.Error()
	}
	a.logger.Error("EVENTS", msg, details)
}

func (a *LoggerAdapter) Info(msg string, fields watermill.LogFields) {
	a.logger.Info("EVENTS", msg, a.details(fields))
}

func (a *LoggerAdapter) Debug(msg string, fields watermill.LogFields) {
	a.logger.Debug("EVENTS", msg, a.details(fields))
}

// Trace is folded into Debug.
func (a *LoggerAdapter) Trace(msg string, fields watermill.LogFields) {
	a.logger.Debug("EVENTS", msg, a.details(fields))
}

func (a *LoggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &LoggerAdapter{logger: a.logger, fields: a.details(fields)}
}
