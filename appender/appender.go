// Package appender 提供参考输出器。
// 输出器是管道核心的外部协作方：核心只负责准入裁决与文本渲染，
// 输出器拿到已渲染好的行做实际 I/O。
package appender

import (
	"github.com/gocrud/logkit/event"
)

// Appender 日志输出器
type Appender interface {
	// Name 输出器名称，用于诊断与清理注册
	Name() string
	// Append 输出一条已渲染的日志。
	// line 是布局渲染后的文本；需要结构化字段的输出器可读取事件本身。
	Append(e *event.LogEvent, line string) error
	// Close 释放输出器持有的资源
	Close() error
}
