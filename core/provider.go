package core

import (
	"fmt"
	"sync"
)

// Provider 可插拔提供者
// 典型例子是安全上下文提供者：配置钩子在默认配置步骤之前
// 构造它并安装为进程级默认提供者，供后续无关代码路径使用。
type Provider interface {
	// Name 提供者名称
	Name() string
}

// ProviderConstructor 提供者构造函数
type ProviderConstructor func() (Provider, error)

// ProviderRegistry 提供者注册表
// 配置期标识符到构造函数的显式映射，在程序启动时填充，
// 取代运行期对已加载类型做反射发现。
type ProviderRegistry struct {
	ctors map[string]ProviderConstructor
	mu    sync.RWMutex
}

// NewProviderRegistry 创建提供者注册表
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		ctors: make(map[string]ProviderConstructor),
	}
}

// Register 注册一个提供者构造函数，重名报错
func (r *ProviderRegistry) Register(name string, ctor ProviderConstructor) error {
	if name == "" {
		return fmt.Errorf("core: provider name is required")
	}
	if ctor == nil {
		return fmt.Errorf("core: provider constructor is required for %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ctors[name]; exists {
		return fmt.Errorf("core: provider %q already registered", name)
	}
	r.ctors[name] = ctor
	return nil
}

// New 按名称构造一个提供者实例
func (r *ProviderRegistry) New(name string) (Provider, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("core: provider %q not registered", name)
	}

	p, err := ctor()
	if err != nil {
		return nil, fmt.Errorf("core: provider %q construction failed: %w", name, err)
	}
	if p == nil {
		return nil, fmt.Errorf("core: provider %q constructor returned nil", name)
	}
	return p, nil
}

// Names 返回已注册的提供者名称
func (r *ProviderRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	return names
}
