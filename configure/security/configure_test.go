package security

import (
	"fmt"
	"testing"

	"github.com/gocrud/logkit/core"
	"github.com/gocrud/logkit/di"
	"github.com/gocrud/logkit/diag"
)

type stubProvider struct {
	name string
}

func (p *stubProvider) Name() string { return p.name }

func newContext(t *testing.T) *core.BuildContext {
	t.Helper()
	return core.NewBuildContext(nil)
}

func TestConfigureInstallsProvider(t *testing.T) {
	ctx := newContext(t)
	if err := ctx.Providers().Register("stub", func() (core.Provider, error) {
		return &stubProvider{name: "stub"}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	Configure("stub").Configure(ctx)

	p := ctx.DefaultProvider()
	if p == nil || p.Name() != "stub" {
		t.Fatalf("default provider = %v", p)
	}

	// 同时登记进服务容器，后续代码可解析
	resolved, err := di.Resolve[core.Provider](ctx.Container())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Name() != "stub" {
		t.Errorf("resolved %q", resolved.Name())
	}
}

func TestConfigureReplacesPriorDefault(t *testing.T) {
	ctx := newContext(t)
	ctx.SetDefaultProvider(&stubProvider{name: "old"})
	if err := ctx.Providers().Register("new", func() (core.Provider, error) {
		return &stubProvider{name: "new"}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	Configure("new").Configure(ctx)

	if p := ctx.DefaultProvider(); p == nil || p.Name() != "new" {
		t.Errorf("default provider = %v, want the later install to win", p)
	}
}

func TestConfigureEmptyNameLeavesDefaultUntouched(t *testing.T) {
	diag.SetQuiet(true)
	defer diag.SetQuiet(false)
	diag.ResetErrorCount()

	ctx := newContext(t)
	prior := &stubProvider{name: "prior"}
	ctx.SetDefaultProvider(prior)

	Configure("").Configure(ctx)

	if ctx.DefaultProvider() != core.Provider(prior) {
		t.Error("prior default must survive a failed install")
	}
	if diag.ErrorCount() != 1 {
		t.Errorf("expected exactly 1 diagnostic error, got %d", diag.ErrorCount())
	}
	if ctx.Container().Has(di.TypeOf[core.Provider](), "") {
		t.Error("nothing should be registered on failure")
	}
}

func TestConfigureUnknownProvider(t *testing.T) {
	diag.SetQuiet(true)
	defer diag.SetQuiet(false)
	diag.ResetErrorCount()

	ctx := newContext(t)
	Configure("missing").Configure(ctx)

	if ctx.DefaultProvider() != nil {
		t.Error("no provider should be installed")
	}
	if diag.ErrorCount() != 1 {
		t.Errorf("expected 1 diagnostic error, got %d", diag.ErrorCount())
	}
}

func TestConfigureConstructorFailure(t *testing.T) {
	diag.SetQuiet(true)
	defer diag.SetQuiet(false)
	diag.ResetErrorCount()

	ctx := newContext(t)
	if err := ctx.Providers().Register("broken", func() (core.Provider, error) {
		return nil, fmt.Errorf("backend unavailable")
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	Configure("broken").Configure(ctx)

	if ctx.DefaultProvider() != nil {
		t.Error("failed construction must not install anything")
	}
	if diag.ErrorCount() != 1 {
		t.Errorf("expected 1 diagnostic error, got %d", diag.ErrorCount())
	}
}

func TestRunsBeforeDefaultStep(t *testing.T) {
	if Priority >= core.DefaultPriority {
		t.Errorf("security hook priority %d must sort before the default step %d",
			Priority, core.DefaultPriority)
	}
}

func TestEnvironmentProvider(t *testing.T) {
	t.Setenv("USER", "tester")

	p, err := NewEnvironmentProvider()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if p.Name() != "environment" {
		t.Errorf("name = %q", p.Name())
	}

	env, ok := p.(*EnvironmentProvider)
	if !ok {
		t.Fatalf("got %T", p)
	}
	if env.Identity() != "tester" {
		t.Errorf("identity = %q", env.Identity())
	}
}
