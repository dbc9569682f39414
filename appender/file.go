package appender

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gocrud/logkit/diag"
	"github.com/gocrud/logkit/event"
)

// FileOptions 文件输出器选项
type FileOptions struct {
	Path string
	// RotateSpec 轮转计划的 cron 表达式（如 "0 0 * * *" 每天零点）。
	// 为空时不做计划轮转。
	RotateSpec string
	// MaxBackups 保留的轮转备份数，0 表示不清理
	MaxBackups int
}

// Validate 验证配置
func (o *FileOptions) Validate() error {
	if o.Path == "" {
		return fmt.Errorf("file appender path is required")
	}
	if o.MaxBackups < 0 {
		return fmt.Errorf("file appender max backups must be non-negative")
	}
	return nil
}

// FileAppender 文件输出器，支持按 cron 计划轮转
type FileAppender struct {
	options FileOptions
	file    *os.File
	cron    *cron.Cron
	mu      sync.Mutex
}

// NewFileAppender 创建文件输出器
func NewFileAppender(options FileOptions) (*FileAppender, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(options.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	a := &FileAppender{
		options: options,
		file:    file,
	}

	if options.RotateSpec != "" {
		c := cron.New()
		if _, err := c.AddFunc(options.RotateSpec, a.Rotate); err != nil {
			file.Close()
			return nil, fmt.Errorf("invalid rotate spec %q: %w", options.RotateSpec, err)
		}
		c.Start()
		a.cron = c
	}

	return a, nil
}

// Name 实现 Appender
func (a *FileAppender) Name() string { return "file" }

// Append 实现 Appender
func (a *FileAppender) Append(e *event.LogEvent, line string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	_, err := fmt.Fprintln(a.file, line)
	return err
}

// Rotate 立即执行一次轮转：当前文件重命名为带时间戳的备份并重新打开
func (a *FileAppender) Rotate() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.file.Close(); err != nil {
		diag.Errorf("appender: file close before rotate failed: %v", err)
	}

	backup := fmt.Sprintf("%s.%s", a.options.Path, time.Now().Format("20060102-150405"))
	if err := os.Rename(a.options.Path, backup); err != nil {
		diag.Errorf("appender: file rotate rename failed: %v", err)
	}

	file, err := os.OpenFile(a.options.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		diag.Errorf("appender: file reopen after rotate failed: %v", err)
		return
	}
	a.file = file

	diag.Debugf("appender: rotated %s to %s", a.options.Path, backup)
	a.pruneBackups()
}

// pruneBackups 清理超出 MaxBackups 的旧备份（按名称排序，时间戳后缀保证有序）
func (a *FileAppender) pruneBackups() {
	if a.options.MaxBackups <= 0 {
		return
	}

	matches, err := filepath.Glob(a.options.Path + ".*")
	if err != nil || len(matches) <= a.options.MaxBackups {
		return
	}

	sort.Strings(matches)
	for _, old := range matches[:len(matches)-a.options.MaxBackups] {
		if err := os.Remove(old); err != nil {
			diag.Errorf("appender: failed to remove old backup %s: %v", old, err)
		}
	}
}

// Close 停止轮转计划并关闭文件
func (a *FileAppender) Close() error {
	if a.cron != nil {
		a.cron.Stop()
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.file.Close()
}
