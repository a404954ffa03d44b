package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/dropstats/backend/cmd/app/cli/moderate"
	"github.com/dropstats/backend/cmd/app/cli/query"
	"github.com/dropstats/backend/cmd/app/cli/submit"
	"github.com/dropstats/backend/cmd/app/server"
	"github.com/dropstats/backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "dropstats",
		Description: "Drop-rate statistics backend: aggregates drop reports into per-stage statistics and validates incoming reports against configured bounds. Built with Go, bun and go.uber.org/fx.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			query.Command(),
			submit.Command(),
			moderate.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
