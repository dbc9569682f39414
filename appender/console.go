package appender

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gocrud/logkit/event"
)

// ConsoleOptions 控制台输出器选项
type ConsoleOptions struct {
	Output      io.Writer
	ColorOutput bool
}

// ConsoleAppender 控制台输出器
type ConsoleAppender struct {
	options ConsoleOptions
	mu      sync.Mutex
}

// NewConsoleAppender 创建控制台输出器
func NewConsoleAppender(options ...ConsoleOptions) *ConsoleAppender {
	opts := ConsoleOptions{
		Output:      os.Stdout,
		ColorOutput: false,
	}
	if len(options) > 0 {
		opts = options[0]
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &ConsoleAppender{options: opts}
}

// Name 实现 Appender
func (a *ConsoleAppender) Name() string { return "console" }

// Append 实现 Appender
func (a *ConsoleAppender) Append(e *event.LogEvent, line string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.options.ColorOutput {
		line = colorize(e.Level, line)
	}
	_, err := fmt.Fprintln(a.options.Output, line)
	return err
}

// Close 实现 Appender
func (a *ConsoleAppender) Close() error { return nil }

// colorize 按日志级别为整行着色
func colorize(level event.Level, text string) string {
	const (
		reset   = "\033[0m"
		gray    = "\033[90m"
		cyan    = "\033[36m"
		green   = "\033[32m"
		yellow  = "\033[33m"
		red     = "\033[31m"
		magenta = "\033[35m"
	)

	switch level {
	case event.LevelTrace:
		return gray + text + reset
	case event.LevelDebug:
		return cyan + text + reset
	case event.LevelInfo:
		return green + text + reset
	case event.LevelWarn:
		return yellow + text + reset
	case event.LevelError:
		return red + text + reset
	case event.LevelFatal:
		return magenta + text + reset
	default:
		return text
	}
}
