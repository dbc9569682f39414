// Package core 提供配置期的构建上下文与优先级配置器机制。
// 所有进程级状态（服务容器、提供者注册表、默认提供者）都挂在
// BuildContext 上显式传递，没有环境全局变量。
package core

import (
	"sync"

	"github.com/gocrud/logkit/config"
	"github.com/gocrud/logkit/di"
	"github.com/gocrud/logkit/logger"
)

// BuildContext 构建上下文
// 提供给配置器的环境，包含容器、配置、日志器构建器与提供者注册表。
// 配置器在启动期单线程依次执行，正常事件流开始后不再变更。
type BuildContext struct {
	container     di.Container
	configuration config.Configuration
	loggerBuilder *logger.Builder
	providers     *ProviderRegistry

	defaultProvider Provider
	builtLogger     *logger.Logger
	cleanups        map[string]func()
	mu              sync.RWMutex
}

// NewBuildContext 创建构建上下文
func NewBuildContext(configuration config.Configuration) *BuildContext {
	return &BuildContext{
		container:     di.NewContainer(),
		configuration: configuration,
		loggerBuilder: logger.NewBuilder(),
		providers:     NewProviderRegistry(),
		cleanups:      make(map[string]func()),
	}
}

// Container 返回底层的服务容器
func (c *BuildContext) Container() di.Container {
	return c.container
}

// GetConfiguration 获取配置对象（可能为 nil，表示无外部配置）
func (c *BuildContext) GetConfiguration() config.Configuration {
	return c.configuration
}

// LoggerBuilder 返回日志器构建器，配置器通过它登记过滤器与输出器
func (c *BuildContext) LoggerBuilder() *logger.Builder {
	return c.loggerBuilder
}

// Providers 返回提供者注册表
func (c *BuildContext) Providers() *ProviderRegistry {
	return c.providers
}

// SetDefaultProvider 安装进程级默认提供者，替换之前的默认值
func (c *BuildContext) SetDefaultProvider(p Provider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaultProvider = p
}

// DefaultProvider 返回当前的默认提供者，未安装时为 nil
func (c *BuildContext) DefaultProvider() Provider {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaultProvider
}

// SetLogger 登记构建完成的日志器（默认配置步骤调用）
func (c *BuildContext) SetLogger(l *logger.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.builtLogger = l
}

// Logger 返回构建完成的日志器，默认配置步骤之前为 nil
func (c *BuildContext) Logger() *logger.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.builtLogger
}

// SetCleanup 设置资源清理函数
func (c *BuildContext) SetCleanup(key string, cleanup func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanups[key] = cleanup
}

// RunCleanups 执行并清空全部清理函数
func (c *BuildContext) RunCleanups() {
	c.mu.Lock()
	cleanups := c.cleanups
	c.cleanups = make(map[string]func())
	c.mu.Unlock()

	for _, cleanup := range cleanups {
		cleanup()
	}
}
