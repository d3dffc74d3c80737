package log

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

// Name is the root name of every logger handed out by this package
const Name = "courseplanner"

// Verbosity levels understood by GetLogger
const (
	Info  = 0
	Debug = 1
	Trace = 2
)

// GetLogger returns a stdr backed logr.Logger named after the planner,
// showing messages up to verbosity v: Info, Debug or Trace.
// Anything else falls back to Info.
func GetLogger(v int) logr.Logger {
	logger := stdr.New(nil).WithName(Name)
	if v < Info || v > Trace {
		logger.Info("invalid verbosity, showing info messages only", "verbosity", v)
		v = Info
	}
	stdr.SetVerbosity(v)

	return logger
}

// ContextWithLogger stores logger in ctx for the catalog loader and the shell
func ContextWithLogger(ctx context.Context, logger logr.Logger) context.Context {
	return logr.NewContext(ctx, logger)
}

// GetLoggerFromContextWithName returns the logger stored in ctx, or an
// Info level one when there is none, named name when name is set.
func GetLoggerFromContextWithName(ctx context.Context, name string) logr.Logger {
	logger, err := logr.FromContext(ctx)
	if err != nil {
		logger = GetLogger(Info)
	}

	if name != "" {
		return logger.WithName(name)
	}
	return logger
}

// WithCourse tags every message of logger with a course number
func WithCourse(logger logr.Logger, number string) logr.Logger {
	return logger.WithValues("course", number)
}
