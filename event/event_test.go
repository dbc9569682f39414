package event

import "testing"

func TestLevelString(t *testing.T) {
	cases := []struct {
		level Level
		want  string
	}{
		{LevelTrace, "TRACE"},
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LevelFatal, "FATAL"},
		{Level(99), "UNKNOWN"},
	}
	for _, tc := range cases {
		if got := tc.level.String(); got != tc.want {
			t.Errorf("Level(%d).String() = %q, want %q", tc.level, got, tc.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"DEBUG", LevelDebug},
		{" info ", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"Error", LevelError},
		{"FATAL", LevelFatal},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestFieldLookup(t *testing.T) {
	e := New(LevelInfo, "orders", "created",
		Field{Key: "id", Value: 7},
		Field{Key: "user", Value: "bob"})

	v, ok := e.Field("user")
	if !ok || v != "bob" {
		t.Errorf("Field(user) = (%v, %v)", v, ok)
	}

	if _, ok := e.Field("missing"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestNewFillsTime(t *testing.T) {
	e := New(LevelDebug, "cat", "msg")
	if e.Time.IsZero() {
		t.Error("expected event time to be set")
	}
	if e.Level != LevelDebug || e.Category != "cat" || e.Message != "msg" {
		t.Errorf("unexpected event %+v", e)
	}
}
