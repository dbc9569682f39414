// Package redis 提供 Redis 输出器的配置钩子。
package redis

import (
	"github.com/gocrud/logkit/appender/redis"
	"github.com/gocrud/logkit/core"
	"github.com/gocrud/logkit/di"
	"github.com/gocrud/logkit/diag"
)

// Priority Redis 输出器钩子的优先级
const Priority = 50

// Configure 返回 Redis 输出器配置钩子。
// 使用示例: builder.Configure(redis.Configure(func(o *redis.Options) { ... }))
func Configure(options func(*redis.Options)) core.Configurator {
	return core.NewConfigurator("redis-appender", Priority, func(ctx *core.BuildContext) {
		opts := redis.NewDefaultOptions("logkit:events")
		if options != nil {
			options(opts)
		}

		a, err := redis.NewAppender(*opts)
		if err != nil {
			diag.Errorf("configure: redis appender unavailable: %v", err)
			return
		}

		ctx.LoggerBuilder().AddAppender(a)
		if err := di.Register[*redis.Appender](ctx.Container(), di.WithValue(a)); err != nil {
			diag.Errorf("configure: redis appender registration failed: %v", err)
		}

		ctx.SetCleanup("redis-appender", func() {
			if err := a.Close(); err != nil {
				diag.Errorf("configure: redis appender close failed: %v", err)
			}
		})
	})
}
