package appconfig

import (
	"github.com/dropstats/backend/internal/app/appcontext"
)

type Config struct {
	ConfigSpec

	AppContext appcontext.Ctx
}
