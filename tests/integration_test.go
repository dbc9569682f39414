package tests

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocrud/logkit"
	"github.com/gocrud/logkit/config"
	"github.com/gocrud/logkit/configure"
	"github.com/gocrud/logkit/core"
	"github.com/gocrud/logkit/di"
	"github.com/gocrud/logkit/event"
	"github.com/gocrud/logkit/logger"
)

type captureAppender struct {
	mu    sync.Mutex
	lines []string
}

func (a *captureAppender) Name() string { return "capture" }

func (a *captureAppender) Append(e *event.LogEvent, line string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lines = append(a.lines, line)
	return nil
}

func (a *captureAppender) Close() error { return nil }

func (a *captureAppender) Lines() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.lines))
	copy(out, a.lines)
	return out
}

func TestFullPipelineFromYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logkit.yaml")
	yaml := `
logkit:
  level: DEBUG
  format: "%p [%c] %m"
  filters:
    - type: category
      prefix: "internal."
      acceptOnMatch: false
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	capture := &captureAppender{}
	log, ctx, err := logkit.NewBuilder().
		ConfigureConfiguration(func(b *config.ConfigurationBuilder) {
			b.AddYamlFile(path)
		}).
		ConfigureLogger(func(b *logger.Builder) {
			b.SetCategory("app").AddAppender(capture)
		}).
		Build()
	require.NoError(t, err)
	require.NotNil(t, log)
	defer ctx.RunCleanups()

	log.Trace("below configured level")
	log.Debug("debug passes")
	log.WithCategory("internal.cache").Error("filtered out")
	log.Info("info passes", event.Field{Key: "user", Value: "alice"})

	lines := capture.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "DEBUG [app] debug passes", lines[0])
	assert.Equal(t, "INFO [app] info passes", lines[1])
}

func TestSecurityHookRunsBeforeDefaultStep(t *testing.T) {
	var sawProviderInDefault bool

	log, ctx, err := logkit.NewBuilder().
		RegisterProvider("environment", func() (core.Provider, error) {
			return &envProvider{}, nil
		}).
		Configure(
			configure.Security("environment"),
			core.NewConfigurator("probe", core.DefaultPriority+1, func(ctx *core.BuildContext) {
				sawProviderInDefault = ctx.DefaultProvider() != nil
			}),
		).
		Build()
	require.NoError(t, err)
	require.NotNil(t, log)

	assert.True(t, sawProviderInDefault, "provider must be installed before later hooks run")
	require.NotNil(t, ctx.DefaultProvider())
	assert.Equal(t, "environment", ctx.DefaultProvider().Name())

	resolved, err := di.Resolve[core.Provider](ctx.Container())
	require.NoError(t, err)
	assert.Equal(t, "environment", resolved.Name())
}

type envProvider struct{}

func (p *envProvider) Name() string { return "environment" }

func TestRuntimeLevelChange(t *testing.T) {
	capture := &captureAppender{}

	log, _, err := logkit.NewBuilder().
		ConfigureLogger(func(b *logger.Builder) {
			b.SetFormat("%p %m").AddAppender(capture)
		}).
		Build()
	require.NoError(t, err)

	log.Debug("dropped at default level")
	log.SetLevel(event.LevelDebug)
	log.Debug("kept after the change")

	lines := capture.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "DEBUG kept after the change", lines[0])
}

func TestCleanupsRunOnce(t *testing.T) {
	runs := 0

	_, ctx, err := logkit.NewBuilder().
		Configure(core.NewConfigurator("resource", 50, func(ctx *core.BuildContext) {
			ctx.SetCleanup("resource", func() { runs++ })
		})).
		Build()
	require.NoError(t, err)

	ctx.RunCleanups()
	ctx.RunCleanups()
	assert.Equal(t, 1, runs)
}
