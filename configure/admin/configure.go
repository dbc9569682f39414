// Package admin 提供诊断 HTTP 界面的配置钩子。
// 必须在默认配置步骤之后执行（优先级更大），因为它需要已构建的日志器。
package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/gocrud/logkit/admin"
	"github.com/gocrud/logkit/core"
	"github.com/gocrud/logkit/diag"
)

// Priority 诊断界面钩子的优先级，晚于 core.DefaultPriority
const Priority = 110

// Configure 返回诊断界面配置钩子，在 addr 上启动 HTTP 服务
func Configure(addr string) core.Configurator {
	return core.NewConfigurator("admin", Priority, func(ctx *core.BuildContext) {
		log := ctx.Logger()
		if log == nil {
			diag.Errorf("admin: logger not built yet, is the default configurator missing?")
			return
		}

		server := &http.Server{
			Addr:    addr,
			Handler: admin.NewEngine(log),
		}

		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				diag.Errorf("admin: http server stopped: %v", err)
			}
		}()

		ctx.SetCleanup("admin", func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				diag.Errorf("admin: http server shutdown failed: %v", err)
			}
		})
	})
}
