// Package logger 把过滤链、模式布局与输出器装配成可用的日志器。
// 数据流：事件产生 → 过滤链裁决 → 放行后布局渲染 → 交给输出器。
package logger

import (
	"sync"

	"github.com/gocrud/logkit/appender"
	"github.com/gocrud/logkit/diag"
	"github.com/gocrud/logkit/event"
	"github.com/gocrud/logkit/filter"
	"github.com/gocrud/logkit/pattern"
	"github.com/gocrud/logkit/stack"
)

// Logger 日志器
// 过滤链与布局在构建后只读，可被多个协程并发使用；
// SetChain/SetLayout 是重新配置的同步缝，整体替换而非原地修改，
// 应在没有事件在途时调用。
type Logger struct {
	category     string
	captureStack bool
	stackDepth   int
	appenders    []appender.Appender

	mu     sync.RWMutex
	level  event.Level
	chain  *filter.Chain
	layout *pattern.Layout
}

// Level 返回当前最小级别
func (l *Logger) Level() event.Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// SetLevel 运行期调整最小级别
func (l *Logger) SetLevel(level event.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Chain 返回当前过滤链
func (l *Logger) Chain() *filter.Chain {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.chain
}

// SetChain 整体替换过滤链
func (l *Logger) SetChain(chain *filter.Chain) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.chain = chain
}

// Layout 返回当前布局
func (l *Logger) Layout() *pattern.Layout {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.layout
}

// SetLayout 整体替换布局
func (l *Logger) SetLayout(layout *pattern.Layout) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.layout = layout
}

// WithCategory 派生一个新类别的日志器，共享链、布局与输出器
func (l *Logger) WithCategory(category string) *Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return &Logger{
		category:     category,
		captureStack: l.captureStack,
		stackDepth:   l.stackDepth,
		appenders:    l.appenders,
		level:        l.level,
		chain:        l.chain,
		layout:       l.layout,
	}
}

// Trace 记录 TRACE 级别日志
func (l *Logger) Trace(msg string, fields ...event.Field) {
	l.Log(event.LevelTrace, msg, fields...)
}

// Debug 记录 DEBUG 级别日志
func (l *Logger) Debug(msg string, fields ...event.Field) {
	l.Log(event.LevelDebug, msg, fields...)
}

// Info 记录 INFO 级别日志
func (l *Logger) Info(msg string, fields ...event.Field) {
	l.Log(event.LevelInfo, msg, fields...)
}

// Warn 记录 WARN 级别日志
func (l *Logger) Warn(msg string, fields ...event.Field) {
	l.Log(event.LevelWarn, msg, fields...)
}

// Error 记录 ERROR 级别日志
func (l *Logger) Error(msg string, fields ...event.Field) {
	l.Log(event.LevelError, msg, fields...)
}

// Fatal 记录 FATAL 级别日志。
// 日志设施不替应用决定生死，这里不会退出进程。
func (l *Logger) Fatal(msg string, fields ...event.Field) {
	l.Log(event.LevelFatal, msg, fields...)
}

// Log 记录一条日志：构造事件、走过滤链、渲染并交给输出器。
// 输出器报错只记入诊断通道，绝不向调用方抛出。
func (l *Logger) Log(level event.Level, msg string, fields ...event.Field) {
	l.mu.RLock()
	minLevel, chain, layout := l.level, l.chain, l.layout
	l.mu.RUnlock()

	if level < minLevel {
		return
	}

	e := event.New(level, l.category, msg, fields...)
	if l.captureStack {
		e.Stack = stack.Capture(2, l.stackDepth)
	}

	if !chain.Evaluate(e) {
		return
	}

	line := layout.Render(e)
	for _, a := range l.appenders {
		if err := a.Append(e, line); err != nil {
			diag.Errorf("logger: appender %s failed: %v", a.Name(), err)
		}
	}
}

// LogEvent 直接提交一个外部构造好的事件（集成层使用）
func (l *Logger) LogEvent(e *event.LogEvent) {
	l.mu.RLock()
	minLevel, chain, layout := l.level, l.chain, l.layout
	l.mu.RUnlock()

	if e == nil || e.Level < minLevel {
		return
	}
	if !chain.Evaluate(e) {
		return
	}

	line := layout.Render(e)
	for _, a := range l.appenders {
		if err := a.Append(e, line); err != nil {
			diag.Errorf("logger: appender %s failed: %v", a.Name(), err)
		}
	}
}

// Close 关闭全部输出器
func (l *Logger) Close() error {
	var firstErr error
	for _, a := range l.appenders {
		if err := a.Close(); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			diag.Errorf("logger: appender %s close failed: %v", a.Name(), err)
		}
	}
	return firstErr
}
