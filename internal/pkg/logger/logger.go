package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// ParseEnvironment falls back to Development for unknown values.
func ParseEnvironment(v string) Environment {
	if Environment(strings.ToLower(v)) == Production {
		return Production
	}
	return Development
}

type Logger struct {
	zl zerolog.Logger
}

func NewLogger() *Logger {
	return NewLoggerFor(Production, os.Stdout)
}

func NewLoggerFor(env Environment, output io.Writer) *Logger {
	if env == Production {
		zl := zerolog.New(output).With().Timestamp().CallerWithSkipFrameCount(4).Logger().Level(zerolog.InfoLevel)
		return &Logger{zl: zl}
	}

	console := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = output
	})
	zl := zerolog.New(console).With().Timestamp().CallerWithSkipFrameCount(4).Logger().Level(zerolog.DebugLevel)
	return &Logger{zl: zl}
}

func NewNopLogger() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) log(event *zerolog.Event, msg string, fields ...interface{}) {
	if len(fields) > 0 && len(fields)%2 == 0 {
		event = event.Fields(fields)
	} else if len(fields) > 0 {
		event = event.Interface("fields", fields)
	}
	event.Msg(msg)
}

func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.log(l.zl.Debug(), msg, fields...)
}

func (l *Logger) Info(msg string, fields ...interface{}) {
	l.log(l.zl.Info(), msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.log(l.zl.Warn(), msg, fields...)
}

func (l *Logger) Error(msg string, fields ...interface{}) {
	l.log(l.zl.Error(), msg, fields...)
}

func (l *Logger) Fatal(msg string, fields ...interface{}) {
	l.log(l.zl.WithLevel(zerolog.FatalLevel), msg, fields...)
	os.Exit(1)
}

func (l *Logger) WithCorrelationID(correlationID string) *Logger {
	return l.WithField("correlation_id", correlationID)
}

func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{zl: l.zl.With().Interface(key, value).Logger()}
}
