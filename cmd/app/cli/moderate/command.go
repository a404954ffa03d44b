package moderate

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	cliapp "github.com/dropstats/backend/cmd/app/cli"
	"github.com/dropstats/backend/internal/service"
)

// Command exposes the moderation verbs: soft-deleting a stored report and
// flipping its reliability flag.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "moderate",
		Usage: "moderate stored drop reports",
		Subcommands: []*cli.Command{
			{
				Name:      "delete",
				Usage:     "soft-delete a drop report",
				ArgsUsage: "<dropId>",
				Action:    runDelete,
			},
			{
				Name:      "reliability",
				Usage:     "mark a drop report reliable or unreliable",
				ArgsUsage: "<dropId> <true|false>",
				Action:    runReliability,
			},
		},
	}
}

func runDelete(c *cli.Context) error {
	dropId := c.Args().First()
	if dropId == "" {
		return errors.New("missing dropId argument")
	}

	var moderation *service.Moderation
	if err := cliapp.Populate(&moderation); err != nil {
		return err
	}

	if err := moderation.Delete(context.Background(), dropId); err != nil {
		return err
	}

	log.Info().Str("dropId", dropId).Msg("report deleted")
	return nil
}

func runReliability(c *cli.Context) error {
	dropId := c.Args().Get(0)
	if dropId == "" {
		return errors.New("missing dropId argument")
	}

	isReliable, err := strconv.ParseBool(c.Args().Get(1))
	if err != nil {
		return errors.Wrap(err, "failed to parse reliability argument")
	}

	var moderation *service.Moderation
	if err := cliapp.Populate(&moderation); err != nil {
		return err
	}

	if err := moderation.SetReliability(context.Background(), dropId, isReliable); err != nil {
		return err
	}

	log.Info().Str("dropId", dropId).Bool("isReliable", isReliable).Msg("report reliability updated")
	return nil
}
