package logkit

import (
	"testing"

	"github.com/gocrud/logkit/config"
	"github.com/gocrud/logkit/core"
	"github.com/gocrud/logkit/di"
	"github.com/gocrud/logkit/diag"
	"github.com/gocrud/logkit/event"
	"github.com/gocrud/logkit/logger"
)

func TestBuildWiresConfiguration(t *testing.T) {
	mem := &memoryAppender{}

	log, ctx, err := NewBuilder().
		ConfigureConfiguration(func(b *config.ConfigurationBuilder) {
			b.AddInMemory(map[string]any{
				SettingsSection: map[string]any{
					"level":  "WARN",
					"format": "%p %m",
				},
			})
		}).
		ConfigureLogger(func(b *logger.Builder) {
			b.AddAppender(mem)
		}).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer ctx.RunCleanups()

	log.Info("dropped")
	log.Error("kept")

	if lines := mem.Lines(); len(lines) != 1 || lines[0] != "ERROR kept" {
		t.Errorf("got %v", lines)
	}
}

func TestBuildRegistersLoggerInContainer(t *testing.T) {
	log, ctx, err := NewBuilder().Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	resolved, err := di.Resolve[*logger.Logger](ctx.Container())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved != log {
		t.Error("container must hand back the built logger")
	}
	if ctx.Logger() != log {
		t.Error("context must expose the built logger")
	}
}

func TestConfiguratorsRunByPriorityAroundDefault(t *testing.T) {
	var order []string

	_, _, err := NewBuilder().
		Configure(
			core.NewConfigurator("late", core.DefaultPriority+10, func(ctx *core.BuildContext) {
				order = append(order, "late")
				if ctx.Logger() == nil {
					t.Error("default step must have run before a later hook")
				}
			}),
			core.NewConfigurator("early", 10, func(ctx *core.BuildContext) {
				order = append(order, "early")
				if ctx.Logger() != nil {
					t.Error("default step must not have run before an earlier hook")
				}
			}),
		).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if len(order) != 2 || order[0] != "early" || order[1] != "late" {
		t.Errorf("got %v", order)
	}
}

func TestProviderRegistrationFlow(t *testing.T) {
	log, ctx, err := NewBuilder().
		RegisterProvider("static", func() (core.Provider, error) {
			return staticProvider("static"), nil
		}).
		Configure(core.NewConfigurator("install", 10, func(ctx *core.BuildContext) {
			p, err := ctx.Providers().New("static")
			if err != nil {
				t.Errorf("new provider: %v", err)
				return
			}
			ctx.SetDefaultProvider(p)
		})).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if log == nil {
		t.Fatal("expected a logger")
	}

	if p := ctx.DefaultProvider(); p == nil || p.Name() != "static" {
		t.Errorf("default provider = %v", p)
	}
}

type staticProvider string

func (p staticProvider) Name() string { return string(p) }

func TestDuplicateProviderRegistrationIsReported(t *testing.T) {
	diag.SetQuiet(true)
	defer diag.SetQuiet(false)
	diag.ResetErrorCount()

	ctor := func() (core.Provider, error) { return staticProvider("dup"), nil }

	_, _, err := NewBuilder().
		RegisterProvider("dup", ctor).
		RegisterProvider("dup", ctor).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if diag.ErrorCount() != 1 {
		t.Errorf("expected 1 diagnostic error, got %d", diag.ErrorCount())
	}
}

func TestBadFormatFallsBackToDefaults(t *testing.T) {
	diag.SetQuiet(true)
	defer diag.SetQuiet(false)
	diag.ResetErrorCount()

	log, _, err := NewBuilder().
		ConfigureLogger(func(b *logger.Builder) {
			b.SetFormat("%bogus")
		}).
		Build()
	if err != nil {
		t.Fatalf("broken format must degrade, not fail: %v", err)
	}
	if log == nil {
		t.Fatal("expected a fallback logger")
	}
	if diag.ErrorCount() != 1 {
		t.Errorf("expected 1 diagnostic error, got %d", diag.ErrorCount())
	}

	// 降级后的日志器仍然可用
	log.Info("still alive")
}

func TestNewConvenienceLogger(t *testing.T) {
	log := New()
	if log == nil {
		t.Fatal("expected a logger")
	}
	if log.Level() != event.LevelInfo {
		t.Errorf("level = %v", log.Level())
	}
}
