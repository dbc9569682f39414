// Package database 提供数据库输出器的配置钩子。
package database

import (
	"github.com/gocrud/logkit/appender/database"
	"github.com/gocrud/logkit/core"
	"github.com/gocrud/logkit/di"
	"github.com/gocrud/logkit/diag"
)

// Priority 数据库输出器钩子的优先级
const Priority = 50

// Configure 返回数据库输出器配置钩子。
// 使用示例: builder.Configure(database.Configure(func(o *database.Options) { o.DSN = "logs.db" }))
func Configure(options func(*database.Options)) core.Configurator {
	return core.NewConfigurator("database-appender", Priority, func(ctx *core.BuildContext) {
		opts := &database.Options{DSN: "logkit.db"}
		if options != nil {
			options(opts)
		}

		a, err := database.NewAppender(*opts)
		if err != nil {
			diag.Errorf("configure: database appender unavailable: %v", err)
			return
		}

		ctx.LoggerBuilder().AddAppender(a)
		if err := di.Register[*database.Appender](ctx.Container(), di.WithValue(a)); err != nil {
			diag.Errorf("configure: database appender registration failed: %v", err)
		}

		ctx.SetCleanup("database-appender", func() {
			if err := a.Close(); err != nil {
				diag.Errorf("configure: database appender close failed: %v", err)
			}
		})
	})
}
