package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/dropstats/backend/internal/app/appconfig"
	"github.com/dropstats/backend/internal/app/appcontext"
	"github.com/dropstats/backend/internal/infra"
	"github.com/dropstats/backend/internal/pkg/clock"
	"github.com/dropstats/backend/internal/pkg/logger"
	"github.com/dropstats/backend/internal/repo"
	"github.com/dropstats/backend/internal/service"
	"github.com/dropstats/backend/internal/util"
	"github.com/dropstats/backend/internal/util/reportverifs"
)

func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	// logger and configuration are the only two things outside the fx graph:
	// other packages need them initialized before fx starts.
	logger.Configure(conf)

	baseOpts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),

		// Misc
		fx.Supply(conf),
		fx.Provide(clock.New),
		fx.Provide(util.NewValidator),

		// Infrastructures
		infra.Module(),

		// Verifiers
		reportverifs.Module(),

		// Repositories
		repo.Module(),

		// Services
		service.Module(),

		// fx Extra Options
		fx.StartTimeout(30 * time.Second),
		fx.StopTimeout(1 * time.Minute),
	}

	return append(baseOpts, additionalOpts...)
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}
