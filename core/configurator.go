package core

import (
	"sort"
	"sync"

	"github.com/gocrud/logkit/diag"
)

// DefaultPriority 框架默认配置步骤的固定优先级。
// 提供者类钩子应使用更小的优先级，保证在默认配置消费它们之前完成。
const DefaultPriority = 100

// Configurator 配置器
// 按优先级升序在启动期执行一次，扩展构建上下文。
type Configurator interface {
	// Name 配置器名称，同名配置器整个进程只执行一次
	Name() string
	// Priority 执行优先级，数值小的先执行
	Priority() int
	// Configure 执行配置。配置失败只记入诊断通道，
	// 以降级状态继续，绝不让整个配置流程中断。
	Configure(ctx *BuildContext)
}

// NewConfigurator 用函数构造一个配置器
func NewConfigurator(name string, priority int, fn func(*BuildContext)) Configurator {
	return &funcConfigurator{name: name, priority: priority, fn: fn}
}

type funcConfigurator struct {
	name     string
	priority int
	fn       func(*BuildContext)
}

func (c *funcConfigurator) Name() string              { return c.name }
func (c *funcConfigurator) Priority() int             { return c.priority }
func (c *funcConfigurator) Configure(b *BuildContext) { c.fn(b) }

// Bootstrap 配置器引擎
// 收集配置器，按优先级升序执行；同名配置器只执行一次，
// 重复声明是配置错误，报告后忽略而不是合并。
type Bootstrap struct {
	configurators []Configurator
	executed      map[string]bool
	mu            sync.Mutex
}

// NewBootstrap 创建配置器引擎
func NewBootstrap() *Bootstrap {
	return &Bootstrap{
		executed: make(map[string]bool),
	}
}

// Add 登记一个配置器
func (b *Bootstrap) Add(c Configurator) *Bootstrap {
	if c == nil {
		return b
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.configurators = append(b.configurators, c)
	return b
}

// Run 按优先级升序执行全部已登记的配置器。
// 登记顺序只在优先级相同时起作用（稳定排序）。
// 已执行过的名字再次出现时记一条诊断错误并跳过。
func (b *Bootstrap) Run(ctx *BuildContext) {
	b.mu.Lock()
	pending := make([]Configurator, len(b.configurators))
	copy(pending, b.configurators)
	b.configurators = b.configurators[:0]
	b.mu.Unlock()

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Priority() < pending[j].Priority()
	})

	for _, c := range pending {
		b.mu.Lock()
		done := b.executed[c.Name()]
		if !done {
			b.executed[c.Name()] = true
		}
		b.mu.Unlock()

		if done {
			diag.Errorf("core: configurator %q declared more than once, ignoring duplicate", c.Name())
			continue
		}
		c.Configure(ctx)
	}
}
