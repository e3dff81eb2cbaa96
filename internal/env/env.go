// Package env reads process configuration from the environment and an
// optional .env file.
package env

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Variables read by the pagenorm command
const (
	Scale    = "PAGENORM_SCALE"
	Workers  = "PAGENORM_WORKERS"
	FontsDir = "PAGENORM_FONTS_DIR"
	LogLevel = "PAGENORM_LOG_LEVEL"
)

// Load loads environment variables from .env files. Variables already set
// in the environment win.
func Load(filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil {
		slog.Debug("env: no .env file loaded", "error", err)
	}
}

// StringVariable returns the value of an environment variable or a default value
func StringVariable(name, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(name)); value != "" {
		return value
	}
	return defaultValue
}

// IntVariable returns the value of an environment variable as int or a
// default value when unset
func IntVariable(name string, defaultValue int) (int, error) {
	value := StringVariable(name, "")
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer, got: %s", name, value)
	}
	return n, nil
}

// FloatVariable returns the value of an environment variable as float64 or
// a default value when unset
func FloatVariable(name string, defaultValue float64) (float64, error) {
	value := StringVariable(name, "")
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be a number, got: %s", name, value)
	}
	return f, nil
}

// LevelVariable returns the value of an environment variable as a log
// level (debug, info, warn, error) or a default value when unset
func LevelVariable(name string, defaultValue slog.Level) (slog.Level, error) {
	value := StringVariable(name, "")
	if value == "" {
		return defaultValue, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return 0, fmt.Errorf("environment variable %s must be a log level, got: %s", name, value)
	}
	return level, nil
}
