package di

import (
	"fmt"
	"reflect"
)

// Register 向容器注册类型 T 的服务
func Register[T any](c Container, opts ...Option) error {
	def := &ServiceDefinition{Type: TypeOf[T]()}
	for _, opt := range opts {
		opt(def)
	}
	if def.Impl == nil {
		return fmt.Errorf("di: registration of %v needs WithValue or WithFactory", def.Type)
	}
	return c.Add(def)
}

// Resolve 从容器解析类型 T 的服务
func Resolve[T any](c Container) (T, error) {
	return ResolveNamed[T](c, "")
}

// ResolveNamed 从容器解析带名称的类型 T 服务
func ResolveNamed[T any](c Container, name string) (T, error) {
	var zero T

	val, err := c.GetNamed(TypeOf[T](), name)
	if err != nil {
		return zero, err
	}
	if val == nil {
		return zero, nil
	}

	v, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("di: resolved value is %T, expected %v", val, TypeOf[T]())
	}
	return v, nil
}

// TypeOf 获取类型 T 的 reflect.Type（泛型辅助函数）
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
