package submit

import (
	"context"
	"os"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	cliapp "github.com/dropstats/backend/cmd/app/cli"
	"github.com/dropstats/backend/internal/model/types"
	"github.com/dropstats/backend/internal/service"
)

// Command reads a singular report request from a JSON file, runs it through
// the verifier chain and stores it when accepted.
func Command() *cli.Command {
	return &cli.Command{
		Name:      "submit",
		Usage:     "validate and store a drop report from a JSON file",
		ArgsUsage: "<report.json>",
		Action:    run,
	}
}

func run(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return errors.New("missing report file argument")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read report file")
	}

	var req types.SingularReportRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return errors.Wrap(err, "failed to decode report file")
	}

	var reportSvc *service.Report
	if err := cliapp.Populate(&reportSvc); err != nil {
		return err
	}

	dropId, err := reportSvc.Submit(context.Background(), &req)
	if err != nil {
		return err
	}

	log.Info().Str("dropId", dropId).Msg("report accepted")
	return nil
}
