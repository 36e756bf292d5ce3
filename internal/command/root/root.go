// Package root assembles the CLI command tree.
package root

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Mmodarre/AusHealthSim/internal/command/cdccmd"
	"github.com/Mmodarre/AusHealthSim/internal/command/cmdutil"
	"github.com/Mmodarre/AusHealthSim/internal/command/initdb"
	"github.com/Mmodarre/AusHealthSim/internal/command/members"
	"github.com/Mmodarre/AusHealthSim/internal/command/simulate"
)

// Execute evaluates os.Args and runs the matched command.
func Execute(ctx context.Context) error {
	cmd := &cli.Command{
		Name:  "aushealthsim",
		Usage: "Synthetic data and CDC tooling for an Australian health insurance database.",
		Flags: cmdutil.GlobalFlags,
		Commands: []*cli.Command{
			initdb.NewCommand(),
			simulate.NewDailyCommand(),
			simulate.NewHistoricalCommand(),
			simulate.NewRealisticCommand(),
			cdccmd.NewCommand(),
			members.NewCommand(),
		},
		Before: cmdutil.OnBeforeHook,
	}

	return cmd.Run(ctx, os.Args)
}
