package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVsRedactsSensitiveKeys(t *testing.T) {
	got := sanitizeKVs([]any{"email", "a@b.c", "note", "private", "path", "/api/days", "user_id", 42})
	if got[1] != "[REDACTED]" || got[3] != "[REDACTED]" {
		t.Fatalf("expected email and note to be redacted, got %#v", got)
	}
	if got[5] != "/api/days" {
		t.Fatalf("expected path to pass through, got %#v", got[5])
	}
	hashed, ok := got[7].(string)
	if !ok || !strings.HasPrefix(hashed, "hash:") {
		t.Fatalf("expected user_id to be hashed, got %#v", got[7])
	}
}

func TestSanitizeKVsKeepsDanglingKey(t *testing.T) {
	got := sanitizeKVs([]any{"status", 200, "orphan"})
	if len(got) != 3 || got[2] != "orphan" {
		t.Fatalf("expected dangling key to be kept, got %#v", got)
	}
}

func TestNopLogger(t *testing.T) {
	log := NewNop()
	log.With("component", "test").Info("message", "key", "value")
	log.Sync()
}
