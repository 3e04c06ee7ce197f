package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := s1.KV().Set(context.Background(), "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()
	v, ok, err := s2.KV().Get(context.Background(), "k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("Get after reopen = %q, %v, %v; want \"v\", true, nil", v, ok, err)
	}
}

func TestEventAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "gpt-4o-mini",
		Model:        "gpt-4o-mini",
		Purpose:      "pos-tagging",
		InputTokens:  12,
		OutputTokens: 30,
		LatencyMs:    250,
		Success:      true,
		RequestBody:  "[user]\nhola",
	}); err != nil {
		t.Fatalf("append llm: %v", err)
	}
	if err := repo.AppendServiceCall(ctx, ServiceCallEventData{
		Kind:         KindTranslate,
		Provider:     "lecto",
		LatencyMs:    40,
		ErrorMessage: "timeout",
	}); err != nil {
		t.Fatalf("append call: %v", err)
	}

	all, err := repo.QueryEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(all))
	}
	if all[0].Kind != KindTranslate {
		t.Errorf("newest kind = %q, want %q", all[0].Kind, KindTranslate)
	}
	if all[0].Success {
		t.Error("translate call should be recorded as failed")
	}

	llmOnly, err := repo.QueryEvents(ctx, QueryOpts{Kind: KindLLM})
	if err != nil {
		t.Fatalf("query llm: %v", err)
	}
	if len(llmOnly) != 1 || llmOnly[0].Purpose != "pos-tagging" || !llmOnly[0].Success {
		t.Fatalf("unexpected llm events: %+v", llmOnly)
	}
	if time.Since(llmOnly[0].Timestamp) > time.Minute {
		t.Errorf("timestamp %v is not recent", llmOnly[0].Timestamp)
	}

	got, err := repo.GetEvent(ctx, llmOnly[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.RequestBody != "[user]\nhola" {
		t.Fatalf("GetEvent = %+v", got)
	}

	missing, err := repo.GetEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Fatalf("GetEvent(missing) = %v, %v; want nil, nil", missing, err)
	}

	limited, err := repo.QueryEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("len(limited) = %d, want 1", len(limited))
	}
}

func TestDefaultDBPath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "sub", "custom.db")
		t.Setenv("LINGUA_DB", p)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		if got != p {
			t.Errorf("path = %q, want %q", got, p)
		}
		if _, err := os.Stat(filepath.Dir(p)); err != nil {
			t.Errorf("parent dir not created: %v", err)
		}
	})

	t.Run("xdg", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("LINGUA_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		want := filepath.Join(dir, "lingua", "lingua.db")
		if got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})
}
