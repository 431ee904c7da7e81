// Package logger builds the zap logger shared by every component.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	Log *zap.Logger

	rotator *lumberjack.Logger
}

// New returns a logger that discards everything until Init is called.
func New() *Logger {
	return &Logger{
		Log: zap.NewNop(),
	}
}

// Init replaces the logger with a production JSON logger at level.
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	zl, err := cfg.Build()
	if err != nil {
		return err
	}

	l.Log = zl
	return nil
}

// InitWithFile writes JSON entries to stdout and to path. The file is rotated
// at 100 MB, keeping a week of backups.
func (l *Logger) InitWithFile(level string, path string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	l.rotator = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    100,
		MaxBackups: 7,
		MaxAge:     7,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	sink := zapcore.NewMultiWriteSyncer(zapcore.AddSync(l.rotator), zapcore.AddSync(os.Stdout))
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), sink, lvl)

	l.Log = zap.New(core, zap.AddCaller())
	return nil
}

// Close flushes buffered entries and closes the log file, if any.
func (l *Logger) Close() error {
	_ = l.Log.Sync()
	if l.rotator != nil {
		return l.rotator.Close()
	}
	return nil
}
