// Package redis 提供基于 Redis 列表的日志输出器。
// 每条日志 RPUSH 到指定键，可选按 MaxLen 裁剪，充当有上限的日志环。
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gocrud/logkit/event"
)

// Options Redis 输出器选项
type Options struct {
	Addr     string        // Redis 服务器地址 (host:port)
	Password string        // 密码（可选）
	DB       int           // 数据库编号
	Key      string        // 日志列表的键
	MaxLen   int64         // 列表长度上限，0 表示不裁剪
	Timeout  time.Duration // 单次写入超时时间
}

// NewDefaultOptions 创建默认配置
func NewDefaultOptions(key string) *Options {
	return &Options{
		Addr:    "localhost:6379",
		Key:     key,
		Timeout: 3 * time.Second,
	}
}

// Validate 验证配置
func (o *Options) Validate() error {
	if o.Addr == "" {
		return fmt.Errorf("redis address is required")
	}
	if o.Key == "" {
		return fmt.Errorf("redis log key is required")
	}
	if o.DB < 0 {
		return fmt.Errorf("redis database number must be non-negative")
	}
	if o.MaxLen < 0 {
		return fmt.Errorf("redis max length must be non-negative")
	}
	return nil
}

// Appender Redis 列表输出器
type Appender struct {
	client  *redis.Client
	key     string
	maxLen  int64
	timeout time.Duration
	ownsCli bool
}

// NewAppender 按选项创建输出器（自建客户端并探测连接）
func NewAppender(opts Options) (*Appender, error) {
	if opts.Timeout == 0 {
		opts.Timeout = 3 * time.Second
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	a := NewAppenderWithClient(client, opts.Key, opts.MaxLen, opts.Timeout)
	a.ownsCli = true
	return a, nil
}

// NewAppenderWithClient 复用已有客户端创建输出器（客户端生命周期归调用方）
func NewAppenderWithClient(client *redis.Client, key string, maxLen int64, timeout time.Duration) *Appender {
	if timeout == 0 {
		timeout = 3 * time.Second
	}
	return &Appender{
		client:  client,
		key:     key,
		maxLen:  maxLen,
		timeout: timeout,
	}
}

// Name 实现 appender.Appender
func (a *Appender) Name() string { return "redis" }

// Append 实现 appender.Appender
func (a *Appender) Append(e *event.LogEvent, line string) error {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if err := a.client.RPush(ctx, a.key, line).Err(); err != nil {
		return fmt.Errorf("redis append failed: %w", err)
	}
	if a.maxLen > 0 {
		if err := a.client.LTrim(ctx, a.key, -a.maxLen, -1).Err(); err != nil {
			return fmt.Errorf("redis trim failed: %w", err)
		}
	}
	return nil
}

// Close 实现 appender.Appender
func (a *Appender) Close() error {
	if a.ownsCli {
		return a.client.Close()
	}
	return nil
}
