// Package log provides a logging abstraction for the rip pipeline.
//
// The pipeline packages never write to stdout/stderr directly and never
// import a concrete logging backend: they call Debug/Info/Trace/Stats,
// which are no-ops until a caller wires a backend with SetXxxLogger.
package log

import (
	stdlog "log"
	"os"
)

// Logger defines the minimal interface a logging backend must satisfy.
type Logger interface {
	// Printf logs a formatted string.
	Printf(format string, args ...interface{})

	// Println logs a line.
	Println(args ...interface{})

	// Fatalf is equivalent to Printf() followed by a program abort.
	Fatalf(format string, args ...interface{})

	// Fatalln is equivalent to Println() followed by a program abort.
	Fatalln(args ...interface{})
}

type logger struct {
	log Logger
}

// The four loggers a caller may wire independently.
var (
	Debug = &logger{}
	Info  = &logger{}
	Trace = &logger{}
	Stats = &logger{}
)

// SetDebugLogger sets the debug logger.
func SetDebugLogger(l Logger) { Debug.log = l }

// SetInfoLogger sets the info logger.
func SetInfoLogger(l Logger) { Info.log = l }

// SetTraceLogger sets the trace logger.
func SetTraceLogger(l Logger) { Trace.log = l }

// SetStatsLogger sets the per-job statistics logger (the PRN writer's
// body size and digest line).
func SetStatsLogger(l Logger) { Stats.log = l }

// SetDefaultDebugLogger wires the debug logger to a stdlib logger on stderr.
func SetDefaultDebugLogger() {
	SetDebugLogger(stdlog.New(os.Stderr, "DEBUG: ", stdlog.Ldate|stdlog.Ltime))
}

// SetDefaultInfoLogger wires the info logger to a stdlib logger on stderr.
func SetDefaultInfoLogger() {
	SetInfoLogger(stdlog.New(os.Stderr, "INFO: ", stdlog.Ldate|stdlog.Ltime))
}

// SetDefaultStatsLogger wires the stats logger to a stdlib logger on stderr.
func SetDefaultStatsLogger() {
	SetStatsLogger(stdlog.New(os.Stderr, "STATS: ", stdlog.Ldate|stdlog.Ltime))
}

// SetDefaultLoggers wires Debug/Info/Stats to stdlib loggers; Trace stays off.
func SetDefaultLoggers() {
	SetDefaultDebugLogger()
	SetDefaultInfoLogger()
	SetDefaultStatsLogger()
}

// DisableLoggers turns off all logging.
func DisableLoggers() {
	SetDebugLogger(nil)
	SetInfoLogger(nil)
	SetTraceLogger(nil)
	SetStatsLogger(nil)
}

func (l *logger) Printf(format string, args ...interface{}) {
	if l.log == nil {
		return
	}
	l.log.Printf(format, args...)
}

func (l *logger) Println(args ...interface{}) {
	if l.log == nil {
		return
	}
	l.log.Println(args...)
}

func (l *logger) Fatalf(format string, args ...interface{}) {
	if l.log == nil {
		return
	}
	l.log.Fatalf(format, args...)
}

func (l *logger) Fatalln(args ...interface{}) {
	if l.log == nil {
		return
	}
	l.log.Fatalln(args...)
}
