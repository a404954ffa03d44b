package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/dropstats/backend/internal/app"
	"github.com/dropstats/backend/internal/app/appconfig"
	"github.com/dropstats/backend/internal/app/appcontext"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "start the app and serve devops endpoints",
		Action: func(c *cli.Context) error {
			Run()
			return nil
		},
	}
}

func Run() {
	app.New(appcontext.Declare(appcontext.EnvServer), fx.Invoke(DevOps)).Run()
}

// DevOps serves the metrics and health endpoints on the intra-cluster
// devops address. It is the only listener this process owns.
func DevOps(lc fx.Lifecycle, conf *appconfig.Config) {
	if conf.DevOpsAddress == "" {
		log.Info().Msg("devops address unset; devops server disabled")
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:    conf.DevOpsAddress,
		Handler: mux,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error().Err(err).Msg("devops server terminated unexpectedly")
				}
			}()
			log.Info().Str("address", conf.DevOpsAddress).Msg("devops server started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
