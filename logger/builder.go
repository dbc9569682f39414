package logger

import (
	"fmt"

	"github.com/gocrud/logkit/appender"
	"github.com/gocrud/logkit/event"
	"github.com/gocrud/logkit/filter"
	"github.com/gocrud/logkit/pattern"
)

// DefaultFormat 默认格式串
const DefaultFormat = "%d %p [%c] %m %f"

// Builder 日志器构建器
type Builder struct {
	category     string
	level        event.Level
	format       string
	filters      []filter.Filter
	converters   []pattern.Converter
	appenders    []appender.Appender
	captureStack bool
	stackDepth   int
}

// NewBuilder 创建日志器构建器
func NewBuilder() *Builder {
	return &Builder{
		category: "default",
		level:    event.LevelInfo,
		format:   DefaultFormat,
	}
}

// SetCategory 设置默认类别
func (b *Builder) SetCategory(category string) *Builder {
	b.category = category
	return b
}

// SetLevel 设置最小级别
func (b *Builder) SetLevel(level event.Level) *Builder {
	b.level = level
	return b
}

// SetFormat 设置格式串
func (b *Builder) SetFormat(format string) *Builder {
	b.format = format
	return b
}

// AddFilter 按序追加过滤器
func (b *Builder) AddFilter(f filter.Filter) *Builder {
	if f != nil {
		b.filters = append(b.filters, f)
	}
	return b
}

// AddConverter 注册自定义转换器（内置转换器始终可用，重名覆盖内置）
func (b *Builder) AddConverter(c pattern.Converter) *Builder {
	if c != nil {
		b.converters = append(b.converters, c)
	}
	return b
}

// AddAppender 追加输出器
func (b *Builder) AddAppender(a appender.Appender) *Builder {
	if a != nil {
		b.appenders = append(b.appenders, a)
	}
	return b
}

// CaptureStack 开启调用栈捕获，depth 为最大深度（0 用默认值）
func (b *Builder) CaptureStack(depth int) *Builder {
	b.captureStack = true
	b.stackDepth = depth
	return b
}

// Build 构建日志器。
// 格式串在这里一次性编译，未注册的指令立即报错；
// 没有配置输出器时默认落到控制台。
func (b *Builder) Build() (*Logger, error) {
	converters := append(pattern.DefaultConverters(), b.converters...)
	layout, err := pattern.NewLayout(b.format, converters...)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	appenders := b.appenders
	if len(appenders) == 0 {
		appenders = []appender.Appender{appender.NewConsoleAppender()}
	}

	return &Logger{
		category:     b.category,
		captureStack: b.captureStack,
		stackDepth:   b.stackDepth,
		appenders:    appenders,
		level:        b.level,
		chain:        filter.NewChain(b.filters...),
		layout:       layout,
	}, nil
}
