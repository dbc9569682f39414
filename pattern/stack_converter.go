package pattern

import (
	"bytes"

	"github.com/gocrud/logkit/diag"
	"github.com/gocrud/logkit/event"
	"github.com/gocrud/logkit/stack"
)

// StackTraceConverter 渲染调用位置（%stack）
// 输出顶层帧的基础单行描述 "Type.Method"。
// 事件没有调用栈或自省失败时输出空片段并记入诊断通道。
type StackTraceConverter struct{}

// Directives 实现 Converter
func (c *StackTraceConverter) Directives() []string { return []string{"stack"} }

// Convert 实现 Converter
func (c *StackTraceConverter) Convert(buf *bytes.Buffer, e *event.LogEvent, arg string) error {
	frame, ok := topFrame(e)
	if !ok {
		return nil
	}
	buf.WriteString(frame.Signature.Describe())
	return nil
}

// StackDetailConverter 渲染带形参列表的调用位置（%stackdetail）
// 在基础描述之外补上按声明顺序排列的形参，
// 输出形如 "Type.Method(int x, string y)"。
type StackDetailConverter struct{}

// ParamEnumerator 可按帧枚举形参的调用栈来源。
// 实现了此接口的 Source 允许推迟（例如基于反射的）形参推导，
// 枚举失败时形参列表按空处理。
type ParamEnumerator interface {
	ParamsOf(frame stack.Frame) ([]stack.Param, error)
}

// Directives 实现 Converter
func (c *StackDetailConverter) Directives() []string { return []string{"stackdetail"} }

// Convert 实现 Converter
// 形参枚举失败只丢掉参数列表（渲染 "()"），
// 基础描述获取失败才丢掉整个片段；两者都记入诊断通道，
// 单个坏帧绝不吞掉整行日志。
func (c *StackDetailConverter) Convert(buf *bytes.Buffer, e *event.LogEvent, arg string) error {
	frame, ok := topFrame(e)
	if !ok {
		return nil
	}

	base := frame.Signature.Describe()
	if base == "" {
		diag.Errorf("pattern: stackdetail has no method description for frame %s:%d", frame.File, frame.Line)
		return nil
	}

	params := frame.Signature.Params
	if enum, isEnum := e.Stack.(ParamEnumerator); isEnum {
		enumerated, err := enum.ParamsOf(frame)
		if err != nil {
			diag.Errorf("pattern: stackdetail parameter enumeration failed for %s: %v", base, err)
			params = nil
		} else {
			params = enumerated
		}
	}

	buf.WriteString(base)
	buf.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(p.String())
	}
	buf.WriteByte(')')
	return nil
}

// topFrame 取事件调用栈的顶层帧。
// 没有调用栈来源、来源为空序列都不是错误，只是无内容可渲染；
// 自省失败记入诊断通道后同样按无内容处理。
func topFrame(e *event.LogEvent) (stack.Frame, bool) {
	if e.Stack == nil {
		return stack.Frame{}, false
	}
	frames, err := e.Stack.Frames()
	if err != nil {
		diag.Errorf("pattern: stack introspection failed: %v", err)
		return stack.Frame{}, false
	}
	if len(frames) == 0 {
		return stack.Frame{}, false
	}
	return frames[0], true
}
