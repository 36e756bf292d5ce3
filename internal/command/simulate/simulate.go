// Package simulate exposes the daily, historical and realistic simulation
// runs as CLI commands.
package simulate

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/Mmodarre/AusHealthSim/internal/command/cmdutil"
	"github.com/Mmodarre/AusHealthSim/internal/datagen"
	"github.com/Mmodarre/AusHealthSim/internal/logging"
	"github.com/Mmodarre/AusHealthSim/internal/sim"
)

var log = logging.GetLogger()

const (
	flagDate          = "date"
	flagStart         = "start"
	flagEnd           = "end"
	flagFrequency     = "frequency"
	flagMembersPerDay = "members-per-day"
	flagTracker       = "tracker"

	flagMembers        = "members"
	flagPolicies       = "policies"
	flagHospitalClaims = "hospital-claims"
	flagGeneralClaims  = "general-claims"
)

var trackerFlag = &cli.StringFlag{
	Name:  flagTracker,
	Usage: "JSON file tracking members already placed on policies",
	Value: "used_members.json",
}

// NewDailyCommand simulates a single day of business activity.
func NewDailyCommand() *cli.Command {
	return &cli.Command{
		Name:  "daily",
		Usage: "simulate one day of inserts, updates and payments",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagDate, Usage: "simulation date (YYYY-MM-DD), defaults to today"},
			&cli.IntFlag{Name: flagMembers, Usage: "new members to add", Value: 5},
			&cli.IntFlag{Name: flagPolicies, Usage: "new policies to create", Value: 3},
			&cli.IntFlag{Name: flagHospitalClaims, Usage: "hospital claims to generate", Value: 3},
			&cli.IntFlag{Name: flagGeneralClaims, Usage: "general claims to generate", Value: 10},
			trackerFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			day, err := cmdutil.ParseDate(cmd.String(flagDate))
			if err != nil {
				return err
			}

			p := sim.DefaultDailyParams()
			p.NewMembersCount = cmd.Int(flagMembers)
			p.NewPoliciesCount = cmd.Int(flagPolicies)
			p.HospitalClaimsCount = cmd.Int(flagHospitalClaims)
			p.GeneralClaimsCount = cmd.Int(flagGeneralClaims)

			s, conn, err := newSimulation(ctx, cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			return s.RunDaily(ctx, day, p)
		},
	}
}

// NewHistoricalCommand replays a date range with a randomised daily mix.
func NewHistoricalCommand() *cli.Command {
	return &cli.Command{
		Name:  "historical",
		Usage: "replay a date range of simulated activity",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagStart, Usage: "first simulated date (YYYY-MM-DD)", Required: true},
			&cli.StringFlag{Name: flagEnd, Usage: "last simulated date (YYYY-MM-DD)", Required: true},
			&cli.StringFlag{Name: flagFrequency, Usage: "step between simulated days (daily, weekly, monthly)", Value: "daily"},
			trackerFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			start, end, err := parseRange(cmd)
			if err != nil {
				return err
			}

			s, conn, err := newSimulation(ctx, cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			return s.RunHistorical(ctx, start, end, cmd.String(flagFrequency))
		},
	}
}

// NewRealisticCommand replays a date range with volumes derived from a
// members-per-day figure.
func NewRealisticCommand() *cli.Command {
	return &cli.Command{
		Name:  "realistic",
		Usage: "replay a date range with volumes derived from members per day",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagStart, Usage: "first simulated date (YYYY-MM-DD)", Required: true},
			&cli.StringFlag{Name: flagEnd, Usage: "last simulated date (YYYY-MM-DD)", Required: true},
			&cli.IntFlag{Name: flagMembersPerDay, Usage: "average new members per simulated day", Value: 5},
			trackerFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			start, end, err := parseRange(cmd)
			if err != nil {
				return err
			}

			s, conn, err := newSimulation(ctx, cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			return s.RunRealistic(ctx, start, end, cmd.Int(flagMembersPerDay))
		},
	}
}

func parseRange(cmd *cli.Command) (time.Time, time.Time, error) {
	start, err := cmdutil.ParseDate(cmd.String(flagStart))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := cmdutil.ParseDate(cmd.String(flagEnd))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s is before start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	return start, end, nil
}

// newSimulation opens the database and builds a Simulation with the member
// tracker from the --tracker flag. The caller closes the returned conn.
func newSimulation(ctx context.Context, cmd *cli.Command) (*sim.Simulation, *sql.DB, error) {
	conn, err := cmdutil.Connect(ctx, cmd)
	if err != nil {
		return nil, nil, err
	}

	tracker, err := datagen.NewTracker(cmd.String(flagTracker))
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("opening member tracker: %w", err)
	}

	log.Info("Starting simulation run", "run_id", cmdutil.RunID(), "tracked_members", tracker.Count())
	return sim.New(conn, tracker), conn, nil
}
