package schema

import (
	"testing"

	"entgo.io/ent"
)

func names(fields []ent.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		d := f.Descriptor()
		out[i] = d.Name
		if d.StorageKey != "" {
			out[i] = d.StorageKey
		}
	}
	return out
}

func TestServiceEventFields(t *testing.T) {
	got := append(names(EventMixin{}.Fields()), names(ServiceEvent{}.Fields())...)
	want := []string{
		"created_at", "kind", "provider", "model", "purpose", "input_tokens",
		"output_tokens", "latency_ms", "success", "error_message",
		"request_body", "response_body",
	}
	if len(got) != len(want) {
		t.Fatalf("fields = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestKVEntryKeyColumn(t *testing.T) {
	got := names(KVEntry{}.Fields())
	if got[0] != "name" {
		t.Errorf("key column = %q, want name", got[0])
	}
}
