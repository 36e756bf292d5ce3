// Package logging provides the process-wide structured logger.
package logging

import (
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"
)

var (
	mu     sync.Mutex
	logger hclog.Logger
)

// GetLogger returns the shared logger, creating it on first use. The
// initial level comes from AUSHEALTHSIM_LOG_LEVEL and defaults to info.
func GetLogger() hclog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = hclog.New(&hclog.LoggerOptions{
			Name:   "aushealthsim",
			Level:  hclog.LevelFromString(levelFromEnv()),
			Output: os.Stderr,
		})
	}
	return logger
}

// SetLevel changes the level of the shared logger.
func SetLevel(level string) {
	GetLogger().SetLevel(hclog.LevelFromString(level))
}

func levelFromEnv() string {
	if v := os.Getenv("AUSHEALTHSIM_LOG_LEVEL"); v != "" {
		return v
	}
	return "info"
}
