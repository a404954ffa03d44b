package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/dropstats/backend/internal/app/appconfig"
)

type recordingLifecycle struct {
	hooks []fx.Hook
}

func (l *recordingLifecycle) Append(h fx.Hook) {
	l.hooks = append(l.hooks, h)
}

func TestTracingDisabledIsNoOp(t *testing.T) {
	lc := &recordingLifecycle{}
	conf := &appconfig.Config{}

	require.NoError(t, Tracing(lc, conf))
	assert.Empty(t, lc.hooks, "no provider, no shutdown hook")
}
