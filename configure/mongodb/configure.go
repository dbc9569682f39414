// Package mongodb 提供 MongoDB 输出器的配置钩子。
package mongodb

import (
	"github.com/gocrud/logkit/appender/mongodb"
	"github.com/gocrud/logkit/core"
	"github.com/gocrud/logkit/di"
	"github.com/gocrud/logkit/diag"
)

// Priority MongoDB 输出器钩子的优先级
const Priority = 50

// Configure 返回 MongoDB 输出器配置钩子。
// 使用示例: builder.Configure(mongodb.Configure(func(o *mongodb.Options) { ... }))
func Configure(options func(*mongodb.Options)) core.Configurator {
	return core.NewConfigurator("mongodb-appender", Priority, func(ctx *core.BuildContext) {
		opts := mongodb.NewDefaultOptions("mongodb://localhost:27017", "logkit", "events")
		if options != nil {
			options(opts)
		}

		a, err := mongodb.NewAppender(*opts)
		if err != nil {
			diag.Errorf("configure: mongodb appender unavailable: %v", err)
			return
		}

		ctx.LoggerBuilder().AddAppender(a)
		if err := di.Register[*mongodb.Appender](ctx.Container(), di.WithValue(a)); err != nil {
			diag.Errorf("configure: mongodb appender registration failed: %v", err)
		}

		ctx.SetCleanup("mongodb-appender", func() {
			if err := a.Close(); err != nil {
				diag.Errorf("configure: mongodb appender close failed: %v", err)
			}
		})
	})
}
