package appcontext

const (
	// EnvServer is the long-running devops/metrics process.
	EnvServer Env = iota
	// EnvCLI is a one-shot invocation from the command line.
	EnvCLI
)

type Env int

type Ctx struct {
	Env Env
}

func Declare(env Env) Ctx {
	return Ctx{
		Env: env,
	}
}
