// Package security 提供安全上下文提供者的配置钩子。
// 钩子在框架默认配置步骤之前执行（优先级更小），
// 从显式注册表构造指定的提供者并安装为进程级默认提供者。
package security

import (
	"os"

	"github.com/gocrud/logkit/core"
	"github.com/gocrud/logkit/di"
	"github.com/gocrud/logkit/diag"
)

// Priority 安全提供者钩子的优先级，先于 core.DefaultPriority 执行
const Priority = 10

// Configure 返回安全提供者配置钩子。
// providerName 是注册表中的配置期标识符。
// 任何失败（未指定、未注册、构造失败）都只记一条诊断错误并放弃
// 本次安装，之前的默认提供者保持不变，配置流程继续。
func Configure(providerName string) core.Configurator {
	return core.NewConfigurator("security-provider", Priority, func(ctx *core.BuildContext) {
		if providerName == "" {
			diag.Errorf("security: no provider type specified by configurator %q", "security-provider")
			return
		}

		p, err := ctx.Providers().New(providerName)
		if err != nil {
			diag.Errorf("security: failed to install provider %q: %v", providerName, err)
			return
		}

		ctx.SetDefaultProvider(p)
		ctx.Container().Replace(&di.ServiceDefinition{
			Type: di.TypeOf[core.Provider](),
			Impl: p,
		})
	})
}

// EnvironmentProvider 从环境变量读取当前用户的提供者示例实现
type EnvironmentProvider struct{}

// NewEnvironmentProvider 构造函数，可直接注册进提供者注册表
func NewEnvironmentProvider() (core.Provider, error) {
	return &EnvironmentProvider{}, nil
}

// Name 实现 core.Provider
func (p *EnvironmentProvider) Name() string { return "environment" }

// Identity 返回进程的运行身份
func (p *EnvironmentProvider) Identity() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return os.Getenv("USERNAME")
}
