package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction
// Console output is optional because the terminal demo owns the screen
type Options struct {
	Directory  string
	Level      string
	Console    bool
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Init builds a zap logger writing JSON to a rotating file, plus an
// optional human-readable console core
func Init(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		MessageKey:   "message",
		LevelKey:     "level",
		TimeKey:      "time",
		CallerKey:    "caller",
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	fileCore, err := newFileCore(opts, level, encoderConfig)
	if err != nil {
		return nil, err
	}

	core := fileCore
	if opts.Console {
		consoleEncoder := encoderConfig
		consoleEncoder.EncodeLevel = zapcore.CapitalColorLevelEncoder
		core = zapcore.NewTee(
			fileCore,
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(consoleEncoder),
				zapcore.Lock(os.Stderr),
				level,
			),
		)
	}

	return zap.New(core, zap.AddCaller()), nil
}

// newFileCore creates the rotating JSON file core
func newFileCore(opts Options, level zapcore.Level, encoderConfig zapcore.EncoderConfig) (zapcore.Core, error) {
	if err := os.MkdirAll(opts.Directory, 0755); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(opts.Directory, "afterglow.log"),
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	})

	return zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		writer,
		level,
	), nil
}
