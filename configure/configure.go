// Package configure 汇总各模块的配置钩子，便于链式声明。
package configure

import (
	appenderpkg "github.com/gocrud/logkit/appender"
	dbappender "github.com/gocrud/logkit/appender/database"
	mongoappender "github.com/gocrud/logkit/appender/mongodb"
	redisappender "github.com/gocrud/logkit/appender/redis"
	"github.com/gocrud/logkit/config"
	"github.com/gocrud/logkit/configure/admin"
	"github.com/gocrud/logkit/configure/database"
	"github.com/gocrud/logkit/configure/dynamic"
	"github.com/gocrud/logkit/configure/file"
	"github.com/gocrud/logkit/configure/mongodb"
	"github.com/gocrud/logkit/configure/redis"
	"github.com/gocrud/logkit/configure/security"
	"github.com/gocrud/logkit/core"
)

// Security 便捷导出安全提供者钩子
// 使用示例: builder.Configure(configure.Security("environment"))
func Security(providerName string) core.Configurator {
	return security.Configure(providerName)
}

// Redis 便捷导出 Redis 输出器钩子
// 使用示例: builder.Configure(configure.Redis(func(o *redisappender.Options) { ... }))
func Redis(options func(*redisappender.Options)) core.Configurator {
	return redis.Configure(options)
}

// Mongodb 便捷导出 MongoDB 输出器钩子
func Mongodb(options func(*mongoappender.Options)) core.Configurator {
	return mongodb.Configure(options)
}

// Database 便捷导出数据库输出器钩子
func Database(options func(*dbappender.Options)) core.Configurator {
	return database.Configure(options)
}

// File 便捷导出文件输出器钩子
func File(opts appenderpkg.FileOptions) core.Configurator {
	return file.Configure(opts)
}

// Admin 便捷导出诊断界面钩子
func Admin(addr string) core.Configurator {
	return admin.Configure(addr)
}

// Dynamic 便捷导出 etcd 动态配置钩子
func Dynamic(opts config.EtcdOptions) core.Configurator {
	return dynamic.Configure(opts)
}
