package stack

import (
	"reflect"
	"runtime"
)

// DefaultDepth 默认捕获的栈深度
const DefaultDepth = 16

// Capture 捕获当前调用栈并返回一个 Source。
// skip 为跳过的帧数（0 表示 Capture 的调用者），depth 为最大深度。
// 捕获只记录程序计数器，符号化推迟到 Frames 被调用时。
func Capture(skip, depth int) Source {
	if depth <= 0 {
		depth = DefaultDepth
	}
	pcs := make([]uintptr, depth)
	n := runtime.Callers(skip+2, pcs)
	return &callerSource{pcs: pcs[:n]}
}

// callerSource 基于 runtime.Callers 的调用栈来源
type callerSource struct {
	pcs []uintptr
}

// Frames 把捕获到的程序计数器符号化为帧序列。
// Go 运行时不会暴露形参，因此这里的签名不含参数列表；
// 参数由集成层通过 FuncSignature 或显式描述补齐。
func (s *callerSource) Frames() ([]Frame, error) {
	if len(s.pcs) == 0 {
		return nil, nil
	}

	out := make([]Frame, 0, len(s.pcs))
	frames := runtime.CallersFrames(s.pcs)
	for {
		fr, more := frames.Next()
		if fr.Function != "" {
			declaring, method := splitFuncName(fr.Function)
			out = append(out, Frame{
				Signature: MethodSignature{
					DeclaringType: declaring,
					MethodName:    method,
				},
				File: fr.File,
				Line: fr.Line,
			})
		}
		if !more {
			break
		}
	}
	return out, nil
}

// funcNameOf 返回函数值的 runtime 完整名称
func funcNameOf(v reflect.Value) string {
	fn := runtime.FuncForPC(v.Pointer())
	if fn == nil {
		return ""
	}
	return fn.Name()
}
