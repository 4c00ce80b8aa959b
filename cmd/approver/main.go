package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"github.com/viant/approver"
	"github.com/viant/approver/progress"
)

const usage = `routes purchase requests through the approval chain and prints who approves each amount`

// defaultAmounts are processed when no amount is given.
var defaultAmounts = []int{800, 4500, 12000}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "approver",
		Usage:     usage,
		ArgsUsage: "[amount ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load chain configuration from `URL`",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "text or json",
			},
			&cli.StringFlag{
				Name:  "trace",
				Usage: "Write OpenTelemetry spans to `FILE`",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) (err error) {
	amounts, err := parseAmounts(c.Args().Slice())
	if err != nil {
		return err
	}

	config := approver.DefaultConfig()
	if URL := c.String("config"); URL != "" {
		if config, err = approver.LoadConfig(c.Context, nil, URL); err != nil {
			return err
		}
	}
	if c.IsSet("log-level") {
		config.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		config.Log.Format = c.String("log-format")
	}
	if file := c.String("trace"); file != "" {
		config.Trace.Enabled = true
		config.Trace.OutputFile = file
	}

	srv, err := approver.New(approver.WithConfig(config), approver.WithWriter(c.App.Writer))
	if err != nil {
		return err
	}
	defer func() {
		if cErr := srv.Close(c.Context); err == nil {
			err = cErr
		}
	}()

	ctx, tally := progress.WithNewTally(c.Context, nil)
	for _, amount := range amounts {
		if _, err = srv.Process(ctx, amount); err != nil {
			return err
		}
	}
	counts := tally.Snapshot()
	srv.Logger().DebugContext(ctx, "purchase requests processed",
		"total", counts.Total, "handled", counts.Handled, "unhandled", counts.Unhandled)
	return nil
}

func parseAmounts(args []string) ([]int, error) {
	if len(args) == 0 {
		return append([]int(nil), defaultAmounts...), nil
	}
	ret := make([]int, 0, len(args))
	for _, arg := range args {
		amount, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q: %w", arg, err)
		}
		ret = append(ret, amount)
	}
	return ret, nil
}
