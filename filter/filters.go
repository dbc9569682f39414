package filter

import (
	"strings"

	"github.com/gocrud/logkit/event"
)

// LevelMatchFilter 精确匹配级别的过滤器
// 匹配时按 AcceptOnMatch 放行或拒绝，不匹配时保持中立。
type LevelMatchFilter struct {
	Level         event.Level
	AcceptOnMatch bool
}

// Name 实现 Filter
func (f *LevelMatchFilter) Name() string { return "level-match" }

// Decide 实现 Filter
func (f *LevelMatchFilter) Decide(e *event.LogEvent) Decision {
	if e.Level != f.Level {
		return Neutral
	}
	if f.AcceptOnMatch {
		return Accept
	}
	return Deny
}

// LevelRangeFilter 级别区间过滤器
// 级别落在 [Min, Max] 之外时拒绝；落在区间内时，
// AcceptOnMatch 为 true 则放行，否则保持中立让后续过滤器继续裁决。
type LevelRangeFilter struct {
	Min           event.Level
	Max           event.Level
	AcceptOnMatch bool
}

// Name 实现 Filter
func (f *LevelRangeFilter) Name() string { return "level-range" }

// Decide 实现 Filter
func (f *LevelRangeFilter) Decide(e *event.LogEvent) Decision {
	if e.Level < f.Min || e.Level > f.Max {
		return Deny
	}
	if f.AcceptOnMatch {
		return Accept
	}
	return Neutral
}

// CategoryFilter 类别前缀过滤器
// 事件类别以 Prefix 开头视为匹配。
type CategoryFilter struct {
	Prefix        string
	AcceptOnMatch bool
}

// Name 实现 Filter
func (f *CategoryFilter) Name() string { return "category" }

// Decide 实现 Filter
func (f *CategoryFilter) Decide(e *event.LogEvent) Decision {
	if f.Prefix == "" || !strings.HasPrefix(e.Category, f.Prefix) {
		return Neutral
	}
	if f.AcceptOnMatch {
		return Accept
	}
	return Deny
}

// FieldMatchFilter 字段匹配过滤器
// 事件携带 Key 字段且值相等视为匹配。
type FieldMatchFilter struct {
	Key           string
	Value         any
	AcceptOnMatch bool
}

// Name 实现 Filter
func (f *FieldMatchFilter) Name() string { return "field-match" }

// Decide 实现 Filter
func (f *FieldMatchFilter) Decide(e *event.LogEvent) Decision {
	v, ok := e.Field(f.Key)
	if !ok || v != f.Value {
		return Neutral
	}
	if f.AcceptOnMatch {
		return Accept
	}
	return Deny
}

// DenyAllFilter 拒绝一切事件
// 通常放在链尾，把前面未被明确放行的事件全部挡掉，
// 用于反转链走完默认放行的策略。
type DenyAllFilter struct{}

// Name 实现 Filter
func (f *DenyAllFilter) Name() string { return "deny-all" }

// Decide 实现 Filter
func (f *DenyAllFilter) Decide(e *event.LogEvent) Decision { return Deny }
