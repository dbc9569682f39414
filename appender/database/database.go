// Package database 提供基于 gorm 的数据库日志输出器。
// 每条日志写成一行记录，字段序列化为 JSON 存储。
package database

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gocrud/logkit/event"
)

// LogRecord 日志表模型
type LogRecord struct {
	ID       uint `gorm:"primarykey"`
	Time     time.Time
	Level    string `gorm:"size:8;index"`
	Category string `gorm:"size:255;index"`
	Message  string
	Fields   string // JSON 序列化的字段
	Rendered string // 布局渲染后的整行文本
}

// Options 数据库输出器选项
type Options struct {
	// DSN sqlite 数据源（默认驱动）；与 Dialector 二选一
	DSN string
	// Dialector 自定义 gorm 驱动，优先于 DSN
	Dialector gorm.Dialector
	// SkipMigrate 跳过建表（表已存在或由外部迁移管理时使用）
	SkipMigrate bool
}

// Validate 验证配置
func (o *Options) Validate() error {
	if o.DSN == "" && o.Dialector == nil {
		return fmt.Errorf("database dsn or dialector is required")
	}
	return nil
}

// Appender 数据库输出器
type Appender struct {
	db *gorm.DB
}

// NewAppender 创建数据库输出器
func NewAppender(opts Options) (*Appender, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	dialector := opts.Dialector
	if dialector == nil {
		dialector = sqlite.Open(opts.DSN)
	}

	// 输出器自己的 SQL 日志保持静默，避免递归产生日志
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open log database: %w", err)
	}

	if !opts.SkipMigrate {
		if err := db.AutoMigrate(&LogRecord{}); err != nil {
			return nil, fmt.Errorf("failed to migrate log table: %w", err)
		}
	}

	return &Appender{db: db}, nil
}

// NewAppenderWithDB 复用已有 gorm 连接创建输出器（连接生命周期归调用方）
func NewAppenderWithDB(db *gorm.DB) *Appender {
	return &Appender{db: db}
}

// Name 实现 appender.Appender
func (a *Appender) Name() string { return "database" }

// Append 实现 appender.Appender
func (a *Appender) Append(e *event.LogEvent, line string) error {
	record := LogRecord{
		Time:     e.Time,
		Level:    e.Level.String(),
		Category: e.Category,
		Message:  e.Message,
		Fields:   marshalFields(e.Fields),
		Rendered: line,
	}

	if err := a.db.Create(&record).Error; err != nil {
		return fmt.Errorf("database append failed: %w", err)
	}
	return nil
}

// Close 实现 appender.Appender
func (a *Appender) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// marshalFields 字段序列化为 JSON，失败时退化为空对象
func marshalFields(fields []event.Field) string {
	if len(fields) == 0 {
		return ""
	}
	m := make(map[string]any, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(data)
}
