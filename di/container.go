// Package di 提供一个显式的服务注册表。
// 它是进程级默认状态的唯一落点：配置钩子把提供者等服务
// 注册进来，后续代码从这里解析，而不是读取全局变量。
package di

import (
	"fmt"
	"reflect"
	"sync"
)

// ServiceKey 服务映射的唯一键
type ServiceKey struct {
	Type reflect.Type
	Name string
}

// ServiceDefinition 注册服务的元数据
type ServiceDefinition struct {
	Type      reflect.Type
	Name      string
	Impl      any // 工厂函数或现成实例
	IsFactory bool

	singletonInst any
	singletonErr  error
	singletonOnce sync.Once
}

// Container 服务容器接口
type Container interface {
	// Add 注册一个服务定义，键冲突时报错
	Add(def *ServiceDefinition) error
	// Replace 注册或覆盖一个服务定义
	Replace(def *ServiceDefinition)
	// Get 按类型解析服务
	Get(typ reflect.Type) (any, error)
	// GetNamed 按类型和名称解析服务
	GetNamed(typ reflect.Type, name string) (any, error)
	// Has 判断服务是否已注册
	Has(typ reflect.Type, name string) bool
}

// NewContainer 创建服务容器
func NewContainer() Container {
	return &container{
		definitions: make(map[ServiceKey]*ServiceDefinition),
	}
}

type container struct {
	definitions map[ServiceKey]*ServiceDefinition
	mu          sync.RWMutex
}

func (c *container) Add(def *ServiceDefinition) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := ServiceKey{Type: def.Type, Name: def.Name}
	if _, exists := c.definitions[key]; exists {
		return fmt.Errorf("di: service %v (name %q) already registered", def.Type, def.Name)
	}
	c.definitions[key] = def
	return nil
}

func (c *container) Replace(def *ServiceDefinition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.definitions[ServiceKey{Type: def.Type, Name: def.Name}] = def
}

func (c *container) Has(typ reflect.Type, name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.definitions[ServiceKey{Type: typ, Name: name}]
	return ok
}

func (c *container) Get(typ reflect.Type) (any, error) {
	return c.GetNamed(typ, "")
}

func (c *container) GetNamed(typ reflect.Type, name string) (any, error) {
	c.mu.RLock()
	def, ok := c.definitions[ServiceKey{Type: typ, Name: name}]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("di: service %v (name %q) not registered", typ, name)
	}
	return def.resolve()
}

// resolve 解析实例，工厂服务按单例求值一次
func (d *ServiceDefinition) resolve() (any, error) {
	if !d.IsFactory {
		return d.Impl, nil
	}

	d.singletonOnce.Do(func() {
		d.singletonInst, d.singletonErr = invokeFactory(d.Impl)
	})
	return d.singletonInst, d.singletonErr
}

// invokeFactory 调用无参工厂函数。
// 支持 func() T 与 func() (T, error) 两种签名。
func invokeFactory(fn any) (any, error) {
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func || t.NumIn() != 0 || t.NumOut() < 1 || t.NumOut() > 2 {
		return nil, fmt.Errorf("di: factory must be func() T or func() (T, error), got %T", fn)
	}

	results := v.Call(nil)
	if len(results) == 2 {
		if err, _ := results[1].Interface().(error); err != nil {
			return nil, err
		}
	}
	return results[0].Interface(), nil
}
