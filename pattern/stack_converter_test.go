package pattern

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gocrud/logkit/diag"
	"github.com/gocrud/logkit/event"
	"github.com/gocrud/logkit/stack"
)

func eventWithStack(src stack.Source) *event.LogEvent {
	e := event.New(event.LevelError, "orders", "payment declined")
	e.Stack = src
	return e
}

func handlerFrame() stack.Frame {
	return stack.Frame{
		Signature: stack.MethodSignature{
			DeclaringType: "OrderService",
			MethodName:    "Charge",
			Params: []stack.Param{
				{Type: "int", Name: "orderId"},
				{Type: "string", Name: "currency"},
			},
		},
		File: "order_service.go",
		Line: 42,
	}
}

func TestStackTraceRendersTopFrame(t *testing.T) {
	layout := MustLayout("%stack", DefaultConverters()...)

	e := eventWithStack(stack.Frames{handlerFrame()})
	if got := layout.Render(e); got != "OrderService.Charge" {
		t.Errorf("got %q", got)
	}
}

func TestStackDetailRendersParameters(t *testing.T) {
	layout := MustLayout("%stackdetail", DefaultConverters()...)

	e := eventWithStack(stack.Frames{handlerFrame()})
	want := "OrderService.Charge(int orderId, string currency)"
	if got := layout.Render(e); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStackDetailNoParameters(t *testing.T) {
	layout := MustLayout("%stackdetail", DefaultConverters()...)

	frame := handlerFrame()
	frame.Signature.Params = nil
	e := eventWithStack(stack.Frames{frame})
	if got := layout.Render(e); got != "OrderService.Charge()" {
		t.Errorf("got %q", got)
	}
}

// failingEnumSource 帧可用但形参枚举失败的调用栈来源
type failingEnumSource struct {
	frames stack.Frames
}

func (s *failingEnumSource) Frames() ([]stack.Frame, error) { return s.frames, nil }

func (s *failingEnumSource) ParamsOf(frame stack.Frame) ([]stack.Param, error) {
	return nil, fmt.Errorf("reflection unavailable")
}

func TestStackDetailEnumerationFailureDropsOnlyParams(t *testing.T) {
	diag.SetQuiet(true)
	defer diag.SetQuiet(false)
	diag.ResetErrorCount()

	layout := MustLayout("%stackdetail %m", DefaultConverters()...)
	e := eventWithStack(&failingEnumSource{frames: stack.Frames{handlerFrame()}})

	got := layout.Render(e)
	if got != "OrderService.Charge() payment declined" {
		t.Errorf("got %q, want empty parameter list and the rest of the line intact", got)
	}
	if diag.ErrorCount() != 1 {
		t.Errorf("expected 1 diagnostic error, got %d", diag.ErrorCount())
	}
}

// enumSource 形参枚举成功的调用栈来源，覆盖帧上自带的形参
type enumSource struct {
	frames stack.Frames
	params []stack.Param
}

func (s *enumSource) Frames() ([]stack.Frame, error) { return s.frames, nil }

func (s *enumSource) ParamsOf(frame stack.Frame) ([]stack.Param, error) {
	return s.params, nil
}

func TestStackDetailEnumeratorOverridesFrameParams(t *testing.T) {
	layout := MustLayout("%stackdetail", DefaultConverters()...)
	e := eventWithStack(&enumSource{
		frames: stack.Frames{handlerFrame()},
		params: []stack.Param{{Type: "bool", Name: "dryRun"}},
	})

	if got := layout.Render(e); got != "OrderService.Charge(bool dryRun)" {
		t.Errorf("got %q", got)
	}
}

func TestStackDetailMissingDescriptionDropsFragment(t *testing.T) {
	diag.SetQuiet(true)
	defer diag.SetQuiet(false)
	diag.ResetErrorCount()

	layout := MustLayout("%stackdetail|%m", DefaultConverters()...)
	e := eventWithStack(stack.Frames{{File: "unknown.go", Line: 1}})

	got := layout.Render(e)
	if got != "|payment declined" {
		t.Errorf("got %q, want empty fragment and the rest of the line intact", got)
	}
	if diag.ErrorCount() != 1 {
		t.Errorf("expected 1 diagnostic error, got %d", diag.ErrorCount())
	}
}

// erroringSource 自省整体失败的调用栈来源
type erroringSource struct{}

func (s *erroringSource) Frames() ([]stack.Frame, error) {
	return nil, fmt.Errorf("stack walk failed")
}

func TestStackConvertersDegradeWithoutFrames(t *testing.T) {
	diag.SetQuiet(true)
	defer diag.SetQuiet(false)

	layout := MustLayout("%stack%stackdetail>%m", DefaultConverters()...)

	cases := []struct {
		name   string
		source stack.Source
	}{
		{"no source", nil},
		{"empty frames", stack.Frames{}},
		{"introspection error", &erroringSource{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := layout.Render(eventWithStack(tc.source))
			if got != ">payment declined" {
				t.Errorf("got %q, want stack fragments empty and message intact", got)
			}
			if strings.Contains(got, "(") {
				t.Errorf("no parentheses expected without a frame: %q", got)
			}
		})
	}
}
