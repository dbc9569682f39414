// Package dynamic 提供基于 etcd 的运行期动态配置钩子。
// 监听配置前缀下的键变化，在线调整已构建日志器的最小级别。
// 必须在默认配置步骤之后执行。
package dynamic

import (
	"github.com/gocrud/logkit/config"
	"github.com/gocrud/logkit/core"
	"github.com/gocrud/logkit/diag"
	"github.com/gocrud/logkit/event"
)

// Priority 动态配置钩子的优先级，晚于 core.DefaultPriority
const Priority = 120

// LevelKey 前缀下表示最小级别的键名
const LevelKey = "level"

// Configure 返回动态配置钩子，监听给定 etcd 选项指向的前缀
func Configure(opts config.EtcdOptions) core.Configurator {
	return core.NewConfigurator("dynamic-config", Priority, func(ctx *core.BuildContext) {
		log := ctx.Logger()
		if log == nil {
			diag.Errorf("dynamic: logger not built yet, is the default configurator missing?")
			return
		}

		watcher, err := config.NewEtcdWatcher(opts)
		if err != nil {
			diag.Errorf("dynamic: etcd watcher unavailable: %v", err)
			return
		}

		watcher.Watch(func(key, value string) {
			if key != LevelKey {
				return
			}
			level, err := event.ParseLevel(value)
			if err != nil {
				diag.Errorf("dynamic: ignoring invalid level %q: %v", value, err)
				return
			}
			log.SetLevel(level)
		})

		ctx.SetCleanup("dynamic-config", func() {
			if err := watcher.Close(); err != nil {
				diag.Errorf("dynamic: etcd watcher close failed: %v", err)
			}
		})
	})
}
