package database

import (
	"testing"

	"github.com/gocrud/logkit/event"
)

func TestOptionsValidate(t *testing.T) {
	if err := (&Options{}).Validate(); err == nil {
		t.Error("expected error without dsn or dialector")
	}
	if err := (&Options{DSN: "file::memory:"}).Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestAppendWritesRecord(t *testing.T) {
	a, err := NewAppender(Options{DSN: "file::memory:?cache=shared"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer a.Close()

	e := event.New(event.LevelWarn, "orders", "slow query",
		event.Field{Key: "ms", Value: 230})
	if err := a.Append(e, "WARN slow query"); err != nil {
		t.Fatalf("append: %v", err)
	}

	var records []LogRecord
	if err := a.db.Find(&records).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records", len(records))
	}

	r := records[0]
	if r.Level != "WARN" || r.Category != "orders" || r.Message != "slow query" {
		t.Errorf("got %+v", r)
	}
	if r.Rendered != "WARN slow query" {
		t.Errorf("rendered = %q", r.Rendered)
	}
	if r.Fields != `{"ms":230}` {
		t.Errorf("fields = %q", r.Fields)
	}
}

func TestMarshalFields(t *testing.T) {
	if got := marshalFields(nil); got != "" {
		t.Errorf("empty fields = %q", got)
	}
	got := marshalFields([]event.Field{{Key: "user", Value: "bob"}})
	if got != `{"user":"bob"}` {
		t.Errorf("got %q", got)
	}
}
