// Package logging builds the zap logger used by a prompt invocation. Logs
// never go to stdout: stdout carries the prompt itself.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// EnvLevel overrides the configured file log level.
const EnvLevel = "PROMPTLINE_LOG_LEVEL"

// Config holds logger settings.
type Config struct {
	FilePath   string // Path of the rotated log file
	Level      string // File log level (debug, info, warn, error); "" or "off" disables the file
	MaxSizeMB  int    // Max size in MB before rotation
	MaxBackups int    // Max number of old log files to keep
	MaxAgeDays int    // Max days to keep old log files

	// Verbose adds a console core at debug level writing to Stderr.
	Verbose bool
	Stderr  io.Writer
}

// DefaultPath returns $XDG_CACHE_HOME/promptline/promptline.log, falling
// back to the user cache directory.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "promptline", "promptline.log")
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "promptline", "promptline.log")
}

// ResolveLevel picks the effective file level: the environment wins over
// the configured value.
func ResolveLevel(configured string) string {
	if env := os.Getenv(EnvLevel); env != "" {
		return env
	}
	return configured
}

// Enabled reports whether level turns the file log on.
func Enabled(level string) bool {
	level = strings.TrimSpace(strings.ToLower(level))
	return level != "" && level != "off"
}

// New builds a logger from cfg. With neither a file level nor Verbose the
// logger is a no-op.
func New(cfg Config) (*zap.Logger, error) {
	var cores []zapcore.Core

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.EpochTimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	if Enabled(cfg.Level) {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
			return nil, fmt.Errorf("logging.New: unknown level %q", cfg.Level)
		}
		if cfg.FilePath == "" {
			cfg.FilePath = DefaultPath()
		}
		if cfg.MaxSizeMB == 0 {
			cfg.MaxSizeMB = 5
		}
		if cfg.MaxBackups == 0 {
			cfg.MaxBackups = 3
		}
		if cfg.MaxAgeDays == 0 {
			cfg.MaxAgeDays = 7
		}
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0700); err != nil {
			return nil, fmt.Errorf("logging.New: %w", err)
		}

		fileWriter := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(fileWriter),
			level,
		))
	}

	if cfg.Verbose {
		stderr := cfg.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		consoleCfg.TimeKey = ""
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.AddSync(stderr),
			zapcore.DebugLevel,
		))
	}

	if len(cores) == 0 {
		return zap.NewNop(), nil
	}
	return zap.New(zapcore.NewTee(cores...)), nil
}
