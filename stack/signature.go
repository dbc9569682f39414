// Package stack 提供调用栈与方法签名的描述类型。
// 描述对象由调用栈自省临时产生，不做持久化。
package stack

import (
	"fmt"
	"reflect"
	"strings"
)

// Param 方法的一个形参
type Param struct {
	Type string
	Name string
}

// String 渲染为 "<类型> <名称>"
func (p Param) String() string {
	if p.Name == "" {
		return p.Type
	}
	return p.Type + " " + p.Name
}

// MethodSignature 方法签名描述
// 由声明类型、方法名和按声明顺序排列的形参组成。
type MethodSignature struct {
	DeclaringType string
	MethodName    string
	Params        []Param
}

// Describe 返回基础单行描述 "Type.Method"
func (s MethodSignature) Describe() string {
	if s.DeclaringType == "" {
		return s.MethodName
	}
	return s.DeclaringType + "." + s.MethodName
}

// Frame 调用栈中的一帧
type Frame struct {
	Signature MethodSignature
	File      string
	Line      int
}

// Source 调用栈来源
// Frames 返回空切片表示没有可用的帧，这不是错误。
type Source interface {
	Frames() ([]Frame, error)
}

// Frames 静态帧序列，可直接用作 Source
type Frames []Frame

// Frames 实现 Source
func (f Frames) Frames() ([]Frame, error) {
	return f, nil
}

// FuncSignature 通过反射推导一个函数值的签名。
// Go 的反射拿不到形参名称，这里按位置合成 arg0、arg1 ……
// 集成层若持有真实名称，应直接构造 MethodSignature。
func FuncSignature(fn any) (MethodSignature, error) {
	if fn == nil {
		return MethodSignature{}, fmt.Errorf("stack: nil function")
	}
	t := reflect.TypeOf(fn)
	if t.Kind() != reflect.Func {
		return MethodSignature{}, fmt.Errorf("stack: expected func, got %s", t.Kind())
	}

	v := reflect.ValueOf(fn)
	declaring, method := splitFuncName(funcNameOf(v))

	params := make([]Param, 0, t.NumIn())
	for i := 0; i < t.NumIn(); i++ {
		params = append(params, Param{
			Type: t.In(i).String(),
			Name: fmt.Sprintf("arg%d", i),
		})
	}

	return MethodSignature{
		DeclaringType: declaring,
		MethodName:    method,
		Params:        params,
	}, nil
}

// splitFuncName 把 runtime 风格的完整函数名拆成声明类型和方法名。
// 例如:
//
//	"github.com/x/pkg.(*Server).Start" -> ("Server", "Start")
//	"github.com/x/pkg.Run"             -> ("pkg", "Run")
func splitFuncName(full string) (declaring, method string) {
	if full == "" {
		return "", ""
	}

	// 去掉包路径，只留最后一个路径段
	if idx := strings.LastIndex(full, "/"); idx >= 0 {
		full = full[idx+1:]
	}

	// 匿名函数后缀不属于方法名
	for {
		idx := strings.LastIndex(full, ".func")
		if idx < 0 {
			break
		}
		rest := full[idx+len(".func"):]
		if isDigits(strings.SplitN(rest, ".", 2)[0]) {
			full = full[:idx]
			continue
		}
		break
	}

	parts := strings.Split(full, ".")
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return "", parts[0]
	case 2:
		// pkg.Func：以包名充当声明类型
		return parts[0], parts[1]
	default:
		// pkg.(*Type).Method 或 pkg.Type.Method
		method = parts[len(parts)-1]
		declaring = parts[len(parts)-2]
		declaring = strings.TrimPrefix(declaring, "(*")
		declaring = strings.TrimSuffix(declaring, ")")
		return declaring, method
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
