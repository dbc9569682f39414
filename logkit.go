// Package logkit 是日志管道框架的入口。
// 事件准入由过滤链裁决，放行的事件经模式转换链渲染后交给输出器；
// 各模块通过优先级配置钩子在启动期装配。
package logkit

import (
	"github.com/gocrud/logkit/config"
	"github.com/gocrud/logkit/core"
	"github.com/gocrud/logkit/di"
	"github.com/gocrud/logkit/diag"
	"github.com/gocrud/logkit/logger"
)

// Builder 框架构建器
// 这是装配日志管道的入口点。
type Builder struct {
	configBuilder *config.ConfigurationBuilder
	bootstrap     *core.Bootstrap
	providerRegs  []providerRegistration
	loggerFns     []func(*logger.Builder)
}

type providerRegistration struct {
	name string
	ctor core.ProviderConstructor
}

// NewBuilder 创建框架构建器
func NewBuilder() *Builder {
	return &Builder{
		configBuilder: config.NewConfigurationBuilder(),
		bootstrap:     core.NewBootstrap(),
	}
}

// ConfigureConfiguration 配置配置系统
func (b *Builder) ConfigureConfiguration(configure func(*config.ConfigurationBuilder)) *Builder {
	if configure != nil {
		configure(b.configBuilder)
	}
	return b
}

// RegisterProvider 向提供者注册表登记一个构造函数。
// 注册表在任何配置钩子执行之前填充完毕。
func (b *Builder) RegisterProvider(name string, ctor core.ProviderConstructor) *Builder {
	b.providerRegs = append(b.providerRegs, providerRegistration{name: name, ctor: ctor})
	return b
}

// ConfigureLogger 直接配置日志器构建器（过滤器、格式、输出器等）
func (b *Builder) ConfigureLogger(configure func(*logger.Builder)) *Builder {
	if configure != nil {
		b.loggerFns = append(b.loggerFns, configure)
	}
	return b
}

// Configure 登记配置钩子，执行顺序由各钩子的优先级决定
func (b *Builder) Configure(configurators ...core.Configurator) *Builder {
	for _, c := range configurators {
		b.bootstrap.Add(c)
	}
	return b
}

// Build 装配整个管道。
// 流程：构建配置 → 填充提供者注册表 → 应用日志器配置函数 →
// 按优先级执行全部钩子（默认配置步骤固定在 core.DefaultPriority）。
// 配置错误一律降级运行并记入诊断通道，不会返回给调用方；
// 只有配置源本身损坏（文件不可读等）才会报错。
func (b *Builder) Build() (*logger.Logger, *core.BuildContext, error) {
	cfg, err := b.configBuilder.Build()
	if err != nil {
		return nil, nil, err
	}

	ctx := core.NewBuildContext(cfg)

	for _, reg := range b.providerRegs {
		if err := ctx.Providers().Register(reg.name, reg.ctor); err != nil {
			diag.Errorf("logkit: %v", err)
		}
	}

	for _, fn := range b.loggerFns {
		fn(ctx.LoggerBuilder())
	}

	b.bootstrap.Add(core.NewConfigurator("default", core.DefaultPriority, func(ctx *core.BuildContext) {
		applySettings(ctx.GetConfiguration(), ctx.LoggerBuilder())

		log, err := ctx.LoggerBuilder().Build()
		if err != nil {
			// 格式串损坏时退回默认格式，保持降级运行
			diag.Errorf("logkit: logger build failed, falling back to defaults: %v", err)
			log, _ = logger.NewBuilder().Build()
		}

		ctx.SetLogger(log)
		if err := di.Register[*logger.Logger](ctx.Container(), di.WithValue(log)); err != nil {
			diag.Errorf("logkit: logger registration failed: %v", err)
		}
	}))

	b.bootstrap.Run(ctx)
	return ctx.Logger(), ctx, nil
}

// New 创建一个默认的控制台日志器（便于测试与小工具使用）
func New() *logger.Logger {
	log, _ := logger.NewBuilder().Build()
	return log
}
