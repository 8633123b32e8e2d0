// Package observability provides the structured logger shared by the simulator binaries.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/skirmish/internal/config"
)

// NewLogger creates a structured logger from the given logging configuration.
// Log lines are never sampled; a batch run logs one line per battle and all
// of them are kept.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a zap.Logger writing to cfg.Output (stderr when
// empty), or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}
	enc, err := newEncoder(cfg.Format)
	if err != nil {
		return nil, err
	}

	output := cfg.Output
	if output == "" {
		output = "stderr"
	}
	sink, closeSink, err := zap.Open(output)
	if err != nil {
		return nil, fmt.Errorf("opening log output %q: %w", output, err)
	}
	errSink, _, err := zap.Open("stderr")
	if err != nil {
		closeSink()
		return nil, fmt.Errorf("opening error output: %w", err)
	}

	core := zapcore.NewCore(enc, sink, zap.NewAtomicLevelAt(level))
	opts := []zap.Option{
		zap.ErrorOutput(errSink),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("app", "skirmish")),
	}
	if cfg.Format == "console" {
		opts = append(opts, zap.Development())
	}
	return zap.New(core, opts...), nil
}

func newEncoder(format string) (zapcore.Encoder, error) {
	switch format {
	case "json":
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(ec), nil
	case "console":
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewConsoleEncoder(ec), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
