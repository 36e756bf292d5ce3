// Package members manages the cross-run member tracker file.
package members

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Mmodarre/AusHealthSim/internal/datagen"
	"github.com/Mmodarre/AusHealthSim/internal/logging"
)

var log = logging.GetLogger()

const flagTracker = "tracker"

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "members",
		Usage: "manage the member tracker",
		Commands: []*cli.Command{
			newResetCommand(),
		},
	}
}

func newResetCommand() *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "forget which members already hold policies",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagTracker,
				Usage: "JSON file tracking members already placed on policies",
				Value: "used_members.json",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			tracker, err := datagen.NewTracker(cmd.String(flagTracker))
			if err != nil {
				return fmt.Errorf("opening member tracker: %w", err)
			}
			before := tracker.Count()
			if err := tracker.Reset(); err != nil {
				return fmt.Errorf("resetting member tracker: %w", err)
			}
			log.Info("Member tracker reset", "forgotten", before)
			return nil
		},
	}
}
