// Package initdb creates the Insurance schema and its tables.
package initdb

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Mmodarre/AusHealthSim/internal/command/cmdutil"
	"github.com/Mmodarre/AusHealthSim/internal/db"
	"github.com/Mmodarre/AusHealthSim/internal/logging"
)

var log = logging.GetLogger()

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "create the Insurance schema and tables",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			conn, err := cmdutil.Connect(ctx, cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := db.InitializeSchema(ctx, conn); err != nil {
				return fmt.Errorf("initializing schema: %w", err)
			}
			log.Info("Schema initialized")
			return nil
		},
	}
}
