package event

import (
	"time"

	"github.com/gocrud/logkit/stack"
)

// Field 日志字段
type Field struct {
	Key   string
	Value any
}

// LogEvent 一次日志调用捕获的事件
// 事件在过滤和渲染期间归调用方所有，管道不保留它的引用。
type LogEvent struct {
	Time     time.Time
	Level    Level
	Category string
	Message  string
	Fields   []Field

	// Stack 可选的调用栈来源，由调用方在捕获事件时填入。
	// 渲染栈相关指令时按需读取，渲染失败不影响其他指令。
	Stack stack.Source
}

// New 创建一个日志事件
func New(level Level, category, message string, fields ...Field) *LogEvent {
	return &LogEvent{
		Time:     time.Now(),
		Level:    level,
		Category: category,
		Message:  message,
		Fields:   fields,
	}
}

// Field 按键查找字段，不存在时返回 false
func (e *LogEvent) Field(key string) (any, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}
