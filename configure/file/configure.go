// Package file 提供文件输出器的配置钩子。
package file

import (
	"github.com/gocrud/logkit/appender"
	"github.com/gocrud/logkit/core"
	"github.com/gocrud/logkit/di"
	"github.com/gocrud/logkit/diag"
)

// Priority 文件输出器钩子的优先级
const Priority = 50

// Configure 返回文件输出器配置钩子。
// 使用示例: builder.Configure(file.Configure(appender.FileOptions{Path: "app.log"}))
func Configure(opts appender.FileOptions) core.Configurator {
	return core.NewConfigurator("file-appender", Priority, func(ctx *core.BuildContext) {
		a, err := appender.NewFileAppender(opts)
		if err != nil {
			diag.Errorf("configure: file appender unavailable: %v", err)
			return
		}

		ctx.LoggerBuilder().AddAppender(a)
		if err := di.Register[*appender.FileAppender](ctx.Container(), di.WithValue(a)); err != nil {
			diag.Errorf("configure: file appender registration failed: %v", err)
		}

		ctx.SetCleanup("file-appender", func() {
			if err := a.Close(); err != nil {
				diag.Errorf("configure: file appender close failed: %v", err)
			}
		})
	})
}
