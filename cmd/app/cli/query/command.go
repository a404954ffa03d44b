package query

import (
	"context"
	"os"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/guregu/null.v3"

	cliapp "github.com/dropstats/backend/cmd/app/cli"
	"github.com/dropstats/backend/internal/model"
	"github.com/dropstats/backend/internal/service"
)

// Command runs one of the four aggregation pipelines from the command line
// and prints the result rows as JSON.
func Command() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "run an aggregation pipeline",
		ArgsUsage: "(item-drops|drop-patterns|stage-times|item-quantities)",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "server", Usage: "restrict to these game servers"},
			&cli.StringSliceFlag{Name: "user", Usage: "restrict to these user ids (bypasses the reliability gate)"},
			&cli.StringSliceFlag{Name: "item", Usage: "restrict item-drops rows to these item ids"},
			&cli.StringFlag{Name: "stage", Usage: "stage id; empty with --start/--end set means match by time range only"},
			&cli.Int64Flag{Name: "start", Usage: "stage window start, epoch millis"},
			&cli.Int64Flag{Name: "end", Usage: "stage window end, epoch millis"},
			&cli.Int64Flag{Name: "interval", Usage: "time bucket width, millis"},
			&cli.Int64Flag{Name: "range", Usage: "trailing lookback window for stage-times, millis"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	pipeline := c.Args().First()
	if pipeline == "" {
		return errors.New("missing pipeline argument")
	}

	conditions := conditionsFromFlags(c)

	var stats *service.Stats
	if err := cliapp.Populate(&stats); err != nil {
		return err
	}

	ctx := context.Background()

	var rows any
	var err error
	switch pipeline {
	case "item-drops":
		rows, err = stats.AggregateItemDrops(ctx, conditions)
	case "drop-patterns":
		rows, err = stats.AggregateDropPatterns(ctx, conditions)
	case "stage-times":
		rows, err = stats.AggregateStageTimes(ctx, conditions)
	case "item-quantities":
		rows, err = stats.AggregateItemQuantities(ctx, conditions)
	default:
		return errors.Errorf("unknown pipeline %s", pipeline)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func conditionsFromFlags(c *cli.Context) *model.QueryConditions {
	conditions := &model.QueryConditions{
		UserIDs: c.StringSlice("user"),
		ItemIDs: c.StringSlice("item"),
		Servers: c.StringSlice("server"),
	}

	if c.IsSet("stage") || c.IsSet("start") || c.IsSet("end") {
		stage := model.StageWithTimeRange{}
		if c.String("stage") != "" {
			stage.StageID = null.StringFrom(c.String("stage"))
		}
		if c.IsSet("start") {
			stage.Start = null.IntFrom(c.Int64("start"))
		}
		if c.IsSet("end") {
			stage.End = null.IntFrom(c.Int64("end"))
		}
		conditions.Stages = []model.StageWithTimeRange{stage}
	}

	if c.IsSet("interval") {
		conditions.Interval = null.IntFrom(c.Int64("interval"))
	}
	if c.IsSet("range") {
		conditions.Range = null.IntFrom(c.Int64("range"))
	}

	return conditions
}
