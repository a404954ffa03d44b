package cli

import (
	"context"

	"go.uber.org/fx"

	"github.com/dropstats/backend/internal/app"
	"github.com/dropstats/backend/internal/app/appcontext"
)

// Populate boots the fx graph far enough to fill deps, for one-shot CLI
// commands that need wired services without running the full app.
func Populate(targets ...any) error {
	fxapp := app.New(appcontext.Declare(appcontext.EnvCLI), fx.Populate(targets...))
	return fxapp.Start(context.Background())
}
