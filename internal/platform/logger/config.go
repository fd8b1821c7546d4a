package logger

import (
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// LoggerConfig is read from LOG_LEVEL, LOG_FORMAT (json|console) and
// LOG_OUTPUT_FILE. Service, when set, is attached to every entry.
type LoggerConfig struct {
	Level      string
	Format     string
	OutputFile string
	Service    string
}

func DefaultConfig() *LoggerConfig {
	env := func(key, fallback string) string {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v
		}
		return fallback
	}
	return &LoggerConfig{
		Level:      strings.ToLower(env("LOG_LEVEL", "info")),
		Format:     strings.ToLower(env("LOG_FORMAT", "json")),
		OutputFile: env("LOG_OUTPUT_FILE", "stdout"),
		Service:    env("LOG_SERVICE_NAME", ""),
	}
}

// ToZapLevel parses Level. Unknown values fall back to info.
func (c *LoggerConfig) ToZapLevel() zapcore.Level {
	level := c.Level
	if level == "warning" {
		level = "warn"
	}
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}
