package logkit

import (
	"sync"
	"testing"

	"github.com/gocrud/logkit/appender"
	"github.com/gocrud/logkit/config"
	"github.com/gocrud/logkit/diag"
	"github.com/gocrud/logkit/event"
	"github.com/gocrud/logkit/filter"
	"github.com/gocrud/logkit/logger"
)

// memoryAppender 把渲染结果收进内存，供断言使用
type memoryAppender struct {
	mu    sync.Mutex
	lines []string
}

func (a *memoryAppender) Name() string { return "memory" }

func (a *memoryAppender) Append(e *event.LogEvent, line string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lines = append(a.lines, line)
	return nil
}

func (a *memoryAppender) Close() error { return nil }

func (a *memoryAppender) Lines() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.lines))
	copy(out, a.lines)
	return out
}

var _ appender.Appender = (*memoryAppender)(nil)

func memoryConfig(t *testing.T, section map[string]any) config.Configuration {
	t.Helper()
	cfg, err := config.NewConfigurationBuilder().
		AddInMemory(map[string]any{SettingsSection: section}).
		Build()
	if err != nil {
		t.Fatalf("build config: %v", err)
	}
	return cfg
}

func TestApplySettings(t *testing.T) {
	cfg := memoryConfig(t, map[string]any{
		"level":  "ERROR",
		"format": "%p|%m",
		"filters": []any{
			map[string]any{"type": "category", "prefix": "internal.", "acceptOnMatch": false},
		},
	})

	mem := &memoryAppender{}
	b := logger.NewBuilder().AddAppender(mem)
	applySettings(cfg, b)

	log, err := b.Build()
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}

	log.Warn("dropped by level")
	log.Error("kept")
	log.WithCategory("internal.cache").Error("dropped by filter")

	lines := mem.Lines()
	if len(lines) != 1 || lines[0] != "ERROR|kept" {
		t.Errorf("got %v", lines)
	}
}

func TestApplySettingsMissingSection(t *testing.T) {
	cfg, err := config.NewConfigurationBuilder().AddInMemory(map[string]any{}).Build()
	if err != nil {
		t.Fatalf("build config: %v", err)
	}

	// 配置节缺失不是错误，构建器保持默认值
	b := logger.NewBuilder()
	applySettings(cfg, b)
	applySettings(nil, b)

	if _, err := b.Build(); err != nil {
		t.Errorf("build: %v", err)
	}
}

func TestApplySettingsSkipsBadEntries(t *testing.T) {
	diag.SetQuiet(true)
	defer diag.SetQuiet(false)
	diag.ResetErrorCount()

	cfg := memoryConfig(t, map[string]any{
		"level": "verbose", // 无效级别
		"filters": []any{
			map[string]any{"type": "teleport"}, // 未知过滤器
			map[string]any{"type": "deny-all"}, // 合法，应保留
		},
	})

	mem := &memoryAppender{}
	b := logger.NewBuilder().AddAppender(mem)
	applySettings(cfg, b)

	log, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	// 坏级别被跳过，默认 INFO 仍然生效；deny-all 仍然装上了
	log.Info("suppressed")
	if lines := mem.Lines(); len(lines) != 0 {
		t.Errorf("got %v", lines)
	}
	if diag.ErrorCount() != 2 {
		t.Errorf("expected 2 diagnostic errors, got %d", diag.ErrorCount())
	}
}

func TestBuildFilter(t *testing.T) {
	f, err := buildFilter(FilterSetting{Type: "level-match", Level: "WARN", AcceptOnMatch: true})
	if err != nil {
		t.Fatalf("level-match: %v", err)
	}
	if lm, ok := f.(*filter.LevelMatchFilter); !ok || lm.Level != event.LevelWarn || !lm.AcceptOnMatch {
		t.Errorf("got %#v", f)
	}

	f, err = buildFilter(FilterSetting{Type: "level-range", Min: "DEBUG", Max: "ERROR"})
	if err != nil {
		t.Fatalf("level-range: %v", err)
	}
	if lr, ok := f.(*filter.LevelRangeFilter); !ok || lr.Min != event.LevelDebug || lr.Max != event.LevelError {
		t.Errorf("got %#v", f)
	}

	if _, err := buildFilter(FilterSetting{Type: "level-range", Min: "bad", Max: "ERROR"}); err == nil {
		t.Error("expected error for bad min level")
	}
	if _, err := buildFilter(FilterSetting{Type: "category"}); err == nil {
		t.Error("expected error for category without prefix")
	}
	if _, err := buildFilter(FilterSetting{Type: "field-match"}); err == nil {
		t.Error("expected error for field-match without key")
	}
	if _, err := buildFilter(FilterSetting{Type: "unknown"}); err == nil {
		t.Error("expected error for unknown type")
	}

	if _, err := buildFilter(FilterSetting{Type: "deny-all"}); err != nil {
		t.Errorf("deny-all: %v", err)
	}
	if _, err := buildFilter(FilterSetting{Type: "field-match", Key: "tenant", Value: "acme"}); err != nil {
		t.Errorf("field-match: %v", err)
	}
}
