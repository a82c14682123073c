package cooldown

import (
	"testing"
	"time"
)

func TestCheckAt_AllowsFirstUse(t *testing.T) {
	l := &Limiter{lastUsed: make(map[string]time.Time)}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	remaining, ok := l.checkAt("user-1", "analyze", time.Minute, now)
	if !ok {
		t.Fatalf("expected first use to be allowed")
	}
	if remaining != 0 {
		t.Fatalf("expected zero remaining wait, got %v", remaining)
	}
}

func TestCheckAt_BlocksInsideWindow(t *testing.T) {
	l := &Limiter{lastUsed: make(map[string]time.Time)}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	l.checkAt("user-1", "analyze", time.Minute, now)

	remaining, ok := l.checkAt("user-1", "analyze", time.Minute, now.Add(20*time.Second))
	if ok {
		t.Fatalf("expected second use inside window to be blocked")
	}
	if remaining != 40*time.Second {
		t.Fatalf("expected 40s remaining, got %v", remaining)
	}
}

func TestCheckAt_AllowsAfterWindow(t *testing.T) {
	l := &Limiter{lastUsed: make(map[string]time.Time)}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	l.checkAt("user-1", "analyze", time.Minute, now)

	if _, ok := l.checkAt("user-1", "analyze", time.Minute, now.Add(61*time.Second)); !ok {
		t.Fatalf("expected use after window to be allowed")
	}
}

func TestCheckAt_IsolatesUsersAndCommands(t *testing.T) {
	l := &Limiter{lastUsed: make(map[string]time.Time)}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	l.checkAt("user-1", "analyze", time.Minute, now)

	if _, ok := l.checkAt("user-2", "analyze", time.Minute, now); !ok {
		t.Fatalf("expected a different user to be unaffected")
	}
	if _, ok := l.checkAt("user-1", "structure", time.Minute, now); !ok {
		t.Fatalf("expected a different command to be unaffected")
	}
}

func TestCheckAt_ZeroWindowAlwaysAllows(t *testing.T) {
	l := &Limiter{lastUsed: make(map[string]time.Time)}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if _, ok := l.checkAt("user-1", "help-dev", 0, now); !ok {
			t.Fatalf("expected zero-window command to always be allowed")
		}
	}
}
