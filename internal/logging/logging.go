// Package logging builds the diagnostic logger shared by all commands.
// Report output goes to stdout; log lines go to stderr or a file.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects level and destination.
type Options struct {
	Level   string // debug, info, warn, error
	File    string // empty means stderr
	Verbose bool   // forces debug
}

// New returns a console-encoded zap logger. The returned close function
// flushes the logger and closes the log file, if any.
func New(opts Options) (*zap.Logger, func(), error) {
	level := zapcore.WarnLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	var w io.Writer = os.Stderr
	var f *os.File
	if opts.File != "" {
		var err error
		f, err = os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
	}

	logger := NewWithWriter(w, level)
	closeFn := func() {
		_ = logger.Sync()
		if f != nil {
			f.Close()
		}
	}
	return logger, closeFn, nil
}

// NewWithWriter builds a logger writing console lines to w at level.
func NewWithWriter(w io.Writer, level zapcore.Level) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core).Named("smf")
}
