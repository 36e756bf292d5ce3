// Package cdccmd groups the change-data-capture administration and
// inspection commands.
package cdccmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/Mmodarre/AusHealthSim/internal/cdc"
	"github.com/Mmodarre/AusHealthSim/internal/command/cmdutil"
	"github.com/Mmodarre/AusHealthSim/internal/logging"
)

var log = logging.GetLogger()

const (
	flagTable           = "table"
	flagFrom            = "from"
	flagTo              = "to"
	flagNet             = "net"
	flagDate            = "date"
	flagOutput          = "output"
	flagPollInterval    = "poll-interval"
	flagMaxPollInterval = "max-poll-interval"
)

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "cdc",
		Usage: "administer and inspect change data capture",
		Commands: []*cli.Command{
			newEnableCommand(),
			newTablesCommand(),
			newChangesCommand(),
			newMonitorCommand(),
			newReportCommand(),
		},
	}
}

func newEnableCommand() *cli.Command {
	return &cli.Command{
		Name:  "enable",
		Usage: "enable CDC on the database and Insurance tables",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagTable, Usage: "enable a single table instead of all"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			conn, err := cmdutil.Connect(ctx, cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			if table := cmd.String(flagTable); table != "" {
				if err := cdc.EnableDatabase(ctx, conn); err != nil {
					return err
				}
				return cdc.EnableTable(ctx, conn, "Insurance", table)
			}
			return cdc.EnableAll(ctx, conn)
		},
	}
}

func newTablesCommand() *cli.Command {
	return &cli.Command{
		Name:  "tables",
		Usage: "list tables with CDC enabled",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			conn, err := cmdutil.Connect(ctx, cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			tables, err := cdc.ListTables(ctx, conn)
			if err != nil {
				return err
			}
			if len(tables) == 0 {
				fmt.Println("no tables have CDC enabled")
				return nil
			}
			for _, t := range tables {
				net := ""
				if t.SupportsNet {
					net = " (net changes)"
				}
				fmt.Printf("%s.%s\tinstance=%s\tsince=%s%s\n",
					t.Schema, t.Table, t.CaptureInstance,
					t.CreateDate.Format("2006-01-02"), net)
			}
			return nil
		},
	}
}

func newChangesCommand() *cli.Command {
	return &cli.Command{
		Name:  "changes",
		Usage: "print changes for a table over a time window",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagTable, Usage: "Insurance table name", Required: true},
			&cli.StringFlag{Name: flagFrom, Usage: "window start (YYYY-MM-DD), defaults to today"},
			&cli.StringFlag{Name: flagTo, Usage: "window end (YYYY-MM-DD), defaults to tomorrow"},
			&cli.BoolFlag{Name: flagNet, Usage: "collapse to net changes per key"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			from, err := cmdutil.ParseDate(cmd.String(flagFrom))
			if err != nil {
				return err
			}
			to := from.AddDate(0, 0, 1)
			if v := cmd.String(flagTo); v != "" {
				if to, err = cmdutil.ParseDate(v); err != nil {
					return err
				}
			}

			conn, err := cmdutil.Connect(ctx, cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			changes, err := cdc.GetChanges(ctx, conn, "Insurance", cmd.String(flagTable), from, to, cmd.Bool(flagNet))
			if err != nil {
				return err
			}
			for _, c := range changes {
				fmt.Println(cdc.FormatChange(c))
			}
			counts := cdc.CountByOperation(changes)
			var summary []string
			for _, op := range cdc.SortedOperations(counts) {
				summary = append(summary, fmt.Sprintf("%s=%d", op, counts[op]))
			}
			log.Info("Changes read", "table", cmd.String(flagTable),
				"total", len(changes), "operations", strings.Join(summary, " "))
			return nil
		},
	}
}

func newMonitorCommand() *cli.Command {
	return &cli.Command{
		Name:  "monitor",
		Usage: "continuously poll change tables and print changes",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagTable, Usage: "single Insurance table, defaults to all tracked tables"},
			&cli.DurationFlag{Name: flagPollInterval, Usage: "initial poll interval", Value: 5 * time.Second},
			&cli.DurationFlag{Name: flagMaxPollInterval, Usage: "poll interval ceiling under backoff", Value: 2 * time.Minute},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			conn, err := cmdutil.Connect(ctx, cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			tables := cdc.TrackedTables
			if t := cmd.String(flagTable); t != "" {
				tables = []string{t}
			}

			handler := func(changes []cdc.Change) error {
				for _, c := range changes {
					fmt.Println(cdc.FormatChange(c))
				}
				return nil
			}

			monitors := make([]monitorRunner, 0, len(tables))
			for _, table := range tables {
				m, err := cdc.NewTableMonitor(ctx, conn, "Insurance", table,
					cmd.Duration(flagPollInterval), cmd.Duration(flagMaxPollInterval), handler)
				if err != nil {
					return err
				}
				monitors = append(monitors, m)
			}
			return runMonitors(ctx, monitors)
		},
	}
}

// monitorRunner is the part of cdc.TableMonitor the fan-out needs.
type monitorRunner interface {
	Run(ctx context.Context) error
}

// runMonitors runs every monitor until the context is cancelled or one
// fails. The first failure cancels the siblings so the command exits
// instead of limping along on the surviving tables.
func runMonitors(ctx context.Context, monitors []monitorRunner) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, len(monitors))
	var wg sync.WaitGroup
	for _, m := range monitors {
		wg.Add(1)
		go func(m monitorRunner) {
			defer wg.Done()
			if err := m.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("Monitor stopped", "error", err)
				errs <- err
				cancel()
			}
		}(m)
	}
	wg.Wait()
	close(errs)
	return <-errs
}

func newReportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "summarise per-table change counts for one day as CSV",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagDate, Usage: "report date (YYYY-MM-DD), defaults to today"},
			&cli.StringFlag{Name: flagOutput, Usage: "file to write, defaults to stdout"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			day, err := cmdutil.ParseDate(cmd.String(flagDate))
			if err != nil {
				return err
			}

			conn, err := cmdutil.Connect(ctx, cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			rows, err := cdc.DailyReport(ctx, conn, day)
			if err != nil {
				return err
			}

			out := os.Stdout
			if path := cmd.String(flagOutput); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("creating report file: %w", err)
				}
				defer f.Close()
				out = f
			}
			return cdc.WriteReportCSV(out, rows)
		},
	}
}
