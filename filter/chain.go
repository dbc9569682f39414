// Package filter 实现事件准入过滤链。
// 过滤器按配置顺序组成一条链，逐个裁决事件是否允许输出，
// Deny/Accept 短路，Neutral 顺延，链走完默认放行。
package filter

import (
	"github.com/gocrud/logkit/event"
)

// Filter 一个准入策略单元
// Decide 不允许失败：会失败的过滤器属于配置缺陷，应当在
// 配置阶段由测试暴露，而不是在逐事件求值时兜底。
// Decide 可以有外部副作用（例如计数），但不得改动链本身。
type Filter interface {
	// Name 过滤器名称，用于诊断与运行时查看
	Name() string
	// Decide 对事件做出三值裁决
	Decide(e *event.LogEvent) Decision
}

// Chain 过滤链
// 链在配置阶段一次性构建，此后只读，可被多个调用方并发遍历。
// 重新配置意味着构建一条新链并由持有方整体替换，
// 替换应在没有事件在途时进行。
type Chain struct {
	filters []Filter
}

// NewChain 由给定过滤器按序构建过滤链
func NewChain(filters ...Filter) *Chain {
	c := &Chain{filters: make([]Filter, 0, len(filters))}
	for _, f := range filters {
		if f != nil {
			c.filters = append(c.filters, f)
		}
	}
	return c
}

// Len 返回链上的过滤器数量
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.filters)
}

// Filters 返回链上过滤器的副本，供诊断展示
func (c *Chain) Filters() []Filter {
	if c == nil {
		return nil
	}
	out := make([]Filter, len(c.filters))
	copy(out, c.filters)
	return out
}

// Evaluate 遍历过滤链裁决事件是否允许输出。
//   - Deny   立即返回 false，后续过滤器不再调用
//   - Accept 立即返回 true，后续过滤器不再调用
//   - Neutral 前进到下一个过滤器
//
// 空链（或 nil 链）等价于单个 Neutral 节点：全部放行。
// 链走完仍未有明确裁决时默认放行。
func (c *Chain) Evaluate(e *event.LogEvent) bool {
	if c == nil {
		return true
	}
	for _, f := range c.filters {
		switch f.Decide(e) {
		case Deny:
			return false
		case Accept:
			return true
		}
	}
	return true
}
