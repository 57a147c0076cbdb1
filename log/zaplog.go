package log

import (
	"go.uber.org/zap"
)

// zapAdapter adapts a zap.SugaredLogger to the Logger interface so the
// pipeline's Debug/Info/Trace/Stats tiers can be backed by a structured
// logger without the core packages importing zap directly.
type zapAdapter struct {
	s *zap.SugaredLogger
}

// NewZapAdapter wraps a zap.SugaredLogger as a Logger.
func NewZapAdapter(s *zap.SugaredLogger) Logger {
	return &zapAdapter{s: s}
}

func (a *zapAdapter) Printf(format string, args ...interface{}) { a.s.Infof(format, args...) }
func (a *zapAdapter) Println(args ...interface{})               { a.s.Info(args...) }
func (a *zapAdapter) Fatalf(format string, args ...interface{}) { a.s.Fatalf(format, args...) }
func (a *zapAdapter) Fatalln(args ...interface{})               { a.s.Fatal(args...) }

// UseZapProduction wires Debug/Info/Trace/Stats to a shared production
// zap.Logger, one named sub-logger per tier.
func UseZapProduction() error {
	base, err := zap.NewProduction()
	if err != nil {
		return err
	}
	SetDebugLogger(NewZapAdapter(base.Named("debug").Sugar()))
	SetInfoLogger(NewZapAdapter(base.Named("info").Sugar()))
	SetTraceLogger(NewZapAdapter(base.Named("trace").Sugar()))
	SetStatsLogger(NewZapAdapter(base.Named("stats").Sugar()))
	return nil
}

// UseZapDevelopment wires the loggers to a development zap.Logger
// (human-readable console output, no sampling).
func UseZapDevelopment() error {
	base, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	SetDebugLogger(NewZapAdapter(base.Named("debug").Sugar()))
	SetInfoLogger(NewZapAdapter(base.Named("info").Sugar()))
	SetTraceLogger(NewZapAdapter(base.Named("trace").Sugar()))
	SetStatsLogger(NewZapAdapter(base.Named("stats").Sugar()))
	return nil
}
