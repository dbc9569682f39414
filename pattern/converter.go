// Package pattern 实现模式转换链。
// 格式串在配置阶段被编译成字面量段与指令段的有序序列，
// 每个指令由唯一的转换器负责渲染，字面量直接透传。
// 渲染是软失败的：单个转换器出错只会产生空白片段并
// 记入诊断通道，整行日志照常输出。
package pattern

import (
	"bytes"

	"github.com/gocrud/logkit/diag"
	"github.com/gocrud/logkit/event"
)

// Converter 一个格式指令的渲染单元
// 转换器在调用之间不共享可变状态，渲染一个事件所需的
// 一切都从该事件临时推导。
type Converter interface {
	// Directives 返回此转换器拥有的指令名（含别名）
	Directives() []string
	// Convert 把自己负责的片段写入 buf。
	// arg 是格式串中 %指令{...} 的花括号参数，可能为空。
	// 返回错误表示自省失败，由布局降级处理，不会中断整行渲染。
	Convert(buf *bytes.Buffer, e *event.LogEvent, arg string) error
}

// Layout 编译后的格式布局
// 在配置阶段一次性解析格式串，此后只读，可并发渲染。
type Layout struct {
	format   string
	segments []segment
}

// NewLayout 编译格式串。
// 未注册的指令是配置缺陷，在这里立即报错，而不是留到逐事件渲染时。
func NewLayout(format string, converters ...Converter) (*Layout, error) {
	index := make(map[string]Converter, len(converters)*2)
	for _, c := range converters {
		for _, d := range c.Directives() {
			index[d] = c
		}
	}

	segments, err := parse(format, index)
	if err != nil {
		return nil, err
	}

	return &Layout{format: format, segments: segments}, nil
}

// MustLayout 编译格式串，失败时 panic（仅建议在初始化期使用）
func MustLayout(format string, converters ...Converter) *Layout {
	l, err := NewLayout(format, converters...)
	if err != nil {
		panic(err)
	}
	return l
}

// NewDefaultLayout 用内置转换器编译格式串
func NewDefaultLayout(format string) (*Layout, error) {
	return NewLayout(format, DefaultConverters()...)
}

// Format 返回编译时的原始格式串
func (l *Layout) Format() string {
	return l.format
}

// Render 遍历编译好的段序列渲染一个事件。
// 转换器返回错误时记入诊断通道并以空片段代替，
// 其余段照常渲染；单个坏片段绝不吞掉整行日志。
func (l *Layout) Render(e *event.LogEvent) string {
	buf := GlobalBufferPool.Get()
	defer GlobalBufferPool.Put(buf)

	for _, seg := range l.segments {
		if seg.conv == nil {
			buf.WriteString(seg.text)
			continue
		}
		mark := buf.Len()
		if err := seg.conv.Convert(buf, e, seg.arg); err != nil {
			buf.Truncate(mark)
			diag.Errorf("pattern: converter %%%s failed: %v", seg.text, err)
		}
	}

	return buf.String()
}
