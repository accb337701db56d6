package pydb

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ConnectionConfig holds parsed connection string parameters
type ConnectionConfig struct {
	FilePath     string // Database file path
	LogLevel     string // Log level: debug, info, warn, error (default: warn)
	StrictLength bool   // Refuse files ending with a partial row (default: false)
}

// DefaultConnectionConfig returns default configuration
func DefaultConnectionConfig(filePath string) *ConnectionConfig {
	return &ConnectionConfig{
		FilePath: filePath,
		LogLevel: "warn",
	}
}

// ParseConnectionString parses a connection string with optional query parameters.
//
// Format: /path/to/database.db?param1=value1&param2=value2
//
// Supported parameters:
//   - log_level=debug|info|warn|error : Set logging level (default: warn)
//   - strict=true|false               : Fail to open a file ending with a partial row (default: false)
//
// Examples:
//   - "./my.db"                         : Default settings
//   - "./my.db?log_level=debug"         : Enable debug logging
//   - "./my.db?strict=true&log_level=info" : Both settings
func ParseConnectionString(connStr string) (*ConnectionConfig, error) {
	// Split on first '?' to separate path from query params
	parts := strings.SplitN(connStr, "?", 2)

	if strings.TrimSpace(parts[0]) == "" {
		return nil, errors.New("database file path cannot be empty")
	}

	config := DefaultConnectionConfig(parts[0])

	if len(parts) == 1 {
		return config, nil
	}

	queryParams, err := url.ParseQuery(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid connection string query parameters: %w", err)
	}

	if logLevel := queryParams.Get("log_level"); logLevel != "" {
		if err := config.SetLogLevel(logLevel); err != nil {
			return nil, err
		}
	}

	if strictStr := queryParams.Get("strict"); strictStr != "" {
		strict, err := strconv.ParseBool(strictStr)
		if err != nil {
			return nil, fmt.Errorf("invalid strict parameter: must be 'true' or 'false', got %q", strictStr)
		}
		config.StrictLength = strict
	}

	return config, nil
}

// SetLogLevel validates and sets the log level
func (c *ConnectionConfig) SetLogLevel(logLevel string) error {
	logLevel = strings.ToLower(strings.TrimSpace(logLevel))
	switch logLevel {
	case "debug", "info", "warn", "error":
		c.LogLevel = logLevel
		return nil
	default:
		return fmt.Errorf("invalid log_level parameter: must be 'debug', 'info', 'warn', or 'error', got %q", logLevel)
	}
}

// GetZapLevel converts log level string to zap.Level
func (c *ConnectionConfig) GetZapLevel() zap.AtomicLevel {
	switch c.LogLevel {
	case "debug":
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		return zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	}
}
