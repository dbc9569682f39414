package di

// Option 配置服务注册
type Option func(*ServiceDefinition)

// WithName 设置服务名称，用于区分同类型的多个实例
func WithName(name string) Option {
	return func(d *ServiceDefinition) {
		d.Name = name
	}
}

// WithValue 把现成实例注册为服务
func WithValue(v any) Option {
	return func(d *ServiceDefinition) {
		d.Impl = v
		d.IsFactory = false
	}
}

// WithFactory 把无参工厂函数注册为单例服务。
// 支持 func() T 与 func() (T, error)，首次解析时求值一次。
func WithFactory(fn any) Option {
	return func(d *ServiceDefinition) {
		d.Impl = fn
		d.IsFactory = true
	}
}
