package logkit

import (
	"fmt"

	"github.com/gocrud/logkit/config"
	"github.com/gocrud/logkit/diag"
	"github.com/gocrud/logkit/event"
	"github.com/gocrud/logkit/filter"
	"github.com/gocrud/logkit/logger"
)

// SettingsSection 配置文件中日志设置所在的节名
const SettingsSection = "logkit"

// Settings 配置文件驱动的日志设置
//
// YAML 示例:
//
//	logkit:
//	  level: DEBUG
//	  format: "%d %p [%c] %m%f"
//	  captureStack: true
//	  filters:
//	    - type: level-range
//	      min: DEBUG
//	      max: ERROR
//	    - type: category
//	      prefix: "internal."
//	      acceptOnMatch: false
type Settings struct {
	Level        string
	Format       string
	CaptureStack bool
	StackDepth   int
	Filters      []FilterSetting
}

// FilterSetting 单个过滤器的配置
type FilterSetting struct {
	Type          string
	Level         string
	Min           string
	Max           string
	Prefix        string
	Key           string
	Value         string
	AcceptOnMatch bool
}

// applySettings 把配置节套用到日志器构建器上。
// 配置里的单项错误（未知过滤器、无效级别）记入诊断通道后跳过，
// 其余设置照常生效，保持降级运行。
func applySettings(cfg config.Configuration, b *logger.Builder) {
	if cfg == nil {
		return
	}

	var settings Settings
	if err := cfg.Bind(SettingsSection, &settings); err != nil {
		// 配置节不存在不算错误，按零值处理
		return
	}

	if settings.Level != "" {
		level, err := event.ParseLevel(settings.Level)
		if err != nil {
			diag.Errorf("logkit: invalid level in config: %v", err)
		} else {
			b.SetLevel(level)
		}
	}

	if settings.Format != "" {
		b.SetFormat(settings.Format)
	}

	if settings.CaptureStack {
		b.CaptureStack(settings.StackDepth)
	}

	for _, fs := range settings.Filters {
		f, err := buildFilter(fs)
		if err != nil {
			diag.Errorf("logkit: skipping filter: %v", err)
			continue
		}
		b.AddFilter(f)
	}
}

// buildFilter 按配置构造一个内置过滤器
func buildFilter(s FilterSetting) (filter.Filter, error) {
	switch s.Type {
	case "level-match":
		level, err := event.ParseLevel(s.Level)
		if err != nil {
			return nil, fmt.Errorf("level-match: %w", err)
		}
		return &filter.LevelMatchFilter{Level: level, AcceptOnMatch: s.AcceptOnMatch}, nil

	case "level-range":
		min, err := event.ParseLevel(s.Min)
		if err != nil {
			return nil, fmt.Errorf("level-range min: %w", err)
		}
		max, err := event.ParseLevel(s.Max)
		if err != nil {
			return nil, fmt.Errorf("level-range max: %w", err)
		}
		return &filter.LevelRangeFilter{Min: min, Max: max, AcceptOnMatch: s.AcceptOnMatch}, nil

	case "category":
		if s.Prefix == "" {
			return nil, fmt.Errorf("category filter needs a prefix")
		}
		return &filter.CategoryFilter{Prefix: s.Prefix, AcceptOnMatch: s.AcceptOnMatch}, nil

	case "field-match":
		if s.Key == "" {
			return nil, fmt.Errorf("field-match filter needs a key")
		}
		return &filter.FieldMatchFilter{Key: s.Key, Value: s.Value, AcceptOnMatch: s.AcceptOnMatch}, nil

	case "deny-all":
		return &filter.DenyAllFilter{}, nil

	default:
		return nil, fmt.Errorf("unknown filter type %q", s.Type)
	}
}
