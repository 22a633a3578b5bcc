package api

import (
	"testing"
	"time"
)

func TestAttemptLimiterWindowAndReset(t *testing.T) {
	t.Parallel()

	limiter := newAttemptLimiter(1, time.Hour)
	key := "127.0.0.1|someone@example.com"
	now := time.Now().UTC()

	limiter.addFailure(key, now.Add(-2*time.Hour))
	if limiter.tooManyRecent(key, now) {
		t.Fatal("expected old attempt to be pruned from active window")
	}

	limiter.addFailure(key, now.Add(-30*time.Minute))
	if !limiter.tooManyRecent(key, now) {
		t.Fatal("expected one recent attempt to hit limit 1")
	}

	limiter.reset(key)
	if limiter.tooManyRecent(key, now) {
		t.Fatal("expected no attempts after reset")
	}
}

func TestAttemptLimiterKeysAreIndependent(t *testing.T) {
	t.Parallel()

	limiter := newAttemptLimiter(2, time.Minute)
	now := time.Now().UTC()
	limiter.addFailure("a", now)
	limiter.addFailure("a", now)
	limiter.addFailure("b", now)

	if !limiter.tooManyRecent("a", now) {
		t.Fatal("expected key a limited")
	}
	if limiter.tooManyRecent("b", now) {
		t.Fatal("expected key b below limit")
	}
}
