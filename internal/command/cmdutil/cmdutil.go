// Package cmdutil holds flags and helpers shared by all CLI commands.
package cmdutil

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/Mmodarre/AusHealthSim/internal/config"
	"github.com/Mmodarre/AusHealthSim/internal/db"
	"github.com/Mmodarre/AusHealthSim/internal/logging"
)

const (
	FlagEnvFile  = "env-file"
	FlagLogLevel = "log-level"
)

const dateLayout = "2006-01-02"

// GlobalFlags apply to every command.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  FlagEnvFile,
		Usage: "dotenv file with database credentials",
		Value: ".env",
	},
	&cli.StringFlag{
		Name:    FlagLogLevel,
		Usage:   "log level (trace, debug, info, warn, error)",
		Sources: cli.EnvVars("AUSHEALTHSIM_LOG_LEVEL"),
		Value:   "info",
	},
}

// OnBeforeHook applies the global flags before any command action runs.
func OnBeforeHook(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logging.SetLevel(cmd.String(FlagLogLevel))
	return ctx, nil
}

// Connect loads configuration and opens a verified database connection.
func Connect(ctx context.Context, cmd *cli.Command) (*sql.DB, error) {
	cfg, err := config.Load(cmd.String(FlagEnvFile))
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return db.Connect(ctx, cfg.ConnectionString())
}

// ParseDate parses a YYYY-MM-DD flag value; empty means today.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", value)
	}
	return t, nil
}

// RunID tags one CLI invocation in the logs so overlapping runs against
// the same database can be told apart.
func RunID() string {
	return uuid.NewString()
}
