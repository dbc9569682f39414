package appender

import (
	"sync"

	"github.com/gocrud/logkit/diag"
	"github.com/gocrud/logkit/event"
)

// asyncEntry 异步队列里的一条待输出日志
type asyncEntry struct {
	event *event.LogEvent
	line  string
}

// AsyncAppender 异步输出器
// 把已渲染的日志排入队列，由后台协程交给被包装的输出器，
// 调用方不被下游 I/O 阻塞。队列满时退化为阻塞入队，保证不丢日志。
type AsyncAppender struct {
	inner     Appender
	entryCh   chan asyncEntry
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewAsyncAppender 包装一个输出器为异步输出器
func NewAsyncAppender(inner Appender, bufferSize int) *AsyncAppender {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	a := &AsyncAppender{
		inner:   inner,
		entryCh: make(chan asyncEntry, bufferSize),
	}

	a.wg.Add(1)
	go a.process()

	return a
}

// Name 实现 Appender
func (a *AsyncAppender) Name() string { return "async(" + a.inner.Name() + ")" }

// Append 实现 Appender
func (a *AsyncAppender) Append(e *event.LogEvent, line string) error {
	a.entryCh <- asyncEntry{event: e, line: line}
	return nil
}

// Close 排空队列、停止后台协程并关闭被包装的输出器
func (a *AsyncAppender) Close() error {
	a.closeOnce.Do(func() {
		close(a.entryCh)
	})
	a.wg.Wait()
	return a.inner.Close()
}

func (a *AsyncAppender) process() {
	defer a.wg.Done()

	for entry := range a.entryCh {
		if err := a.inner.Append(entry.event, entry.line); err != nil {
			diag.Errorf("appender: async %s append failed: %v", a.inner.Name(), err)
		}
	}
}
