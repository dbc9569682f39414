// Package diag 是框架自身的诊断通道。
// 管道内部的失败（配置错误、渲染降级）只在这里报告，
// 绝不递归进入日志管道本身，也绝不向调用方抛出。
package diag

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu     sync.Mutex
	out    io.Writer = os.Stderr
	quiet  bool
	errors int64
)

// SetOutput 替换诊断输出目标（测试时常用 bytes.Buffer）
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
}

// SetQuiet 静默模式，丢弃所有诊断输出（计数仍然累加）
func SetQuiet(q bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
}

// ErrorCount 返回累计的错误条数
func ErrorCount() int64 {
	mu.Lock()
	defer mu.Unlock()
	return errors
}

// ResetErrorCount 清零错误计数（测试用）
func ResetErrorCount() {
	mu.Lock()
	defer mu.Unlock()
	errors = 0
}

// Errorf 报告一条框架内部错误
func Errorf(format string, args ...any) {
	write("ERROR", format, args...)
}

// Warnf 报告一条框架内部警告
func Warnf(format string, args ...any) {
	write("WARN", format, args...)
}

// Debugf 报告一条框架内部调试信息
func Debugf(format string, args ...any) {
	write("DEBUG", format, args...)
}

func write(level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if level == "ERROR" {
		errors++
	}
	if quiet {
		return
	}
	fmt.Fprintf(out, "logkit: %s %s %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		level,
		fmt.Sprintf(format, args...))
}
