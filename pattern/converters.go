package pattern

import (
	"bytes"
	"fmt"

	"github.com/gocrud/logkit/event"
)

// DefaultTimestampFormat 日期指令的默认时间格式
const DefaultTimestampFormat = "2006-01-02 15:04:05"

// DefaultConverters 返回全部内置转换器
func DefaultConverters() []Converter {
	return []Converter{
		&MessageConverter{},
		&LevelConverter{},
		&CategoryConverter{},
		&DateConverter{},
		&FieldsConverter{},
		&NewlineConverter{},
		&StackTraceConverter{},
		&StackDetailConverter{},
	}
}

// MessageConverter 渲染事件消息（%m / %message）
type MessageConverter struct{}

// Directives 实现 Converter
func (c *MessageConverter) Directives() []string { return []string{"m", "message"} }

// Convert 实现 Converter
func (c *MessageConverter) Convert(buf *bytes.Buffer, e *event.LogEvent, arg string) error {
	buf.WriteString(e.Message)
	return nil
}

// LevelConverter 渲染事件级别（%p / %level）
type LevelConverter struct{}

// Directives 实现 Converter
func (c *LevelConverter) Directives() []string { return []string{"p", "level"} }

// Convert 实现 Converter
func (c *LevelConverter) Convert(buf *bytes.Buffer, e *event.LogEvent, arg string) error {
	buf.WriteString(e.Level.String())
	return nil
}

// CategoryConverter 渲染事件类别（%c / %category）
type CategoryConverter struct{}

// Directives 实现 Converter
func (c *CategoryConverter) Directives() []string { return []string{"c", "category"} }

// Convert 实现 Converter
func (c *CategoryConverter) Convert(buf *bytes.Buffer, e *event.LogEvent, arg string) error {
	buf.WriteString(e.Category)
	return nil
}

// DateConverter 渲染事件时间（%d / %date）
// 花括号参数为 Go 时间布局，缺省使用 DefaultTimestampFormat。
type DateConverter struct{}

// Directives 实现 Converter
func (c *DateConverter) Directives() []string { return []string{"d", "date"} }

// Convert 实现 Converter
func (c *DateConverter) Convert(buf *bytes.Buffer, e *event.LogEvent, arg string) error {
	layout := arg
	if layout == "" {
		layout = DefaultTimestampFormat
	}
	buf.WriteString(e.Time.Format(layout))
	return nil
}

// FieldsConverter 渲染事件字段（%f / %fields），格式 {k=v, k=v}
// 没有字段时不输出任何内容。
type FieldsConverter struct{}

// Directives 实现 Converter
func (c *FieldsConverter) Directives() []string { return []string{"f", "fields"} }

// Convert 实现 Converter
func (c *FieldsConverter) Convert(buf *bytes.Buffer, e *event.LogEvent, arg string) error {
	if len(e.Fields) == 0 {
		return nil
	}
	buf.WriteByte('{')
	for i, field := range e.Fields {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(field.Key)
		buf.WriteByte('=')
		fmt.Fprintf(buf, "%v", field.Value)
	}
	buf.WriteByte('}')
	return nil
}

// NewlineConverter 渲染换行（%n / %newline）
type NewlineConverter struct{}

// Directives 实现 Converter
func (c *NewlineConverter) Directives() []string { return []string{"n", "newline"} }

// Convert 实现 Converter
func (c *NewlineConverter) Convert(buf *bytes.Buffer, e *event.LogEvent, arg string) error {
	buf.WriteByte('\n')
	return nil
}
