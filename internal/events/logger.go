package events

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// loggerAdapter routes watermill's internal logging through zerolog so
// the bus logs like the rest of the service.
type loggerAdapter struct {
	logger zerolog.Logger
}

func newLoggerAdapter() watermill.LoggerAdapter {
	return &loggerAdapter{logger: log.With().Str("component", "event_bus").Logger()}
}

func (l *loggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	l.logger.Error().Err(err).Fields(map[string]interface{}(fields)).Msg(msg)
}

func (l *loggerAdapter) Info(msg string, fields watermill.LogFields) {
	l.logger.Info().Fields(map[string]interface{}(fields)).Msg(msg)
}

func (l *loggerAdapter) Debug(msg string, fields watermill.LogFields) {
	l.logger.Debug().Fields(map[string]interface{}(fields)).Msg(msg)
}

func (l *loggerAdapter) Trace(msg string, fields watermill.LogFields) {
	l.logger.Trace().Fields(map[string]interface{}(fields)).Msg(msg)
}

func (l *loggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &loggerAdapter{logger: l.logger.With().Fields(map[string]interface{}(fields)).Logger()}
}
