package logging

import (
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelEnv names the environment variable consulted by FromEnv
const LevelEnv = "LOG_LEVEL"

// DefaultConfig is a production JSON config writing to stderr so log lines
// never mix with REPL output on stdout.
func DefaultConfig(level zapcore.Level) zap.Config {
	logConf := zap.NewProductionConfig()
	logConf.Sampling = nil
	logConf.Level = zap.NewAtomicLevelAt(level)
	logConf.EncoderConfig.TimeKey = "time"
	logConf.EncoderConfig.LevelKey = "severity"
	logConf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logConf.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	logConf.OutputPaths = []string{"stderr"}
	logConf.ErrorOutputPaths = []string{"stderr"}

	return logConf
}

// ParseLevel accepts level names (debug, info, warn, ...) or their numeric value
func ParseLevel(l string) (zapcore.Level, error) {
	l = strings.ToLower(strings.TrimSpace(l))
	if level, err := zapcore.ParseLevel(l); err == nil {
		return level, nil
	}
	level, err := strconv.ParseInt(l, 10, 8)
	if err != nil {
		return 0, err
	}
	return zapcore.Level(level), nil
}

// New builds a logger for the named level
func New(level string) (*zap.Logger, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return DefaultConfig(l).Build()
}

// FromEnv builds a logger using LOG_LEVEL, or fallback when it is not set
func FromEnv(fallback string) (*zap.Logger, error) {
	level := os.Getenv(LevelEnv)
	if level == "" {
		level = fallback
	}
	return New(level)
}
