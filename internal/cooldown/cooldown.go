package cooldown

import (
	"fmt"
	"sync"
	"time"
)

// Limiter enforces a fixed cooldown window per user and command. A user may
// run a command once per window; further invocations report the remaining wait.
type Limiter struct {
	mu       sync.Mutex
	lastUsed map[string]time.Time
}

// cleanupInterval bounds how long stale entries survive. It must exceed the
// longest command cooldown in use.
const cleanupInterval = 10 * time.Minute

func NewLimiter() *Limiter {
	l := &Limiter{
		lastUsed: make(map[string]time.Time),
	}

	// Cleanup goroutine
	go func() {
		for {
			time.Sleep(cleanupInterval)
			l.mu.Lock()
			for key, t := range l.lastUsed {
				if time.Since(t) > cleanupInterval {
					delete(l.lastUsed, key)
				}
			}
			l.mu.Unlock()
		}
	}()

	return l
}

// Check records an invocation of command by userID if the cooldown has
// elapsed. When the user is still cooling down it returns the remaining wait
// and false, without recording the attempt.
func (l *Limiter) Check(userID, command string, window time.Duration) (time.Duration, bool) {
	return l.checkAt(userID, command, window, time.Now())
}

func (l *Limiter) checkAt(userID, command string, window time.Duration, now time.Time) (time.Duration, bool) {
	if window <= 0 {
		return 0, true
	}

	key := fmt.Sprintf("%s:%s", userID, command)

	l.mu.Lock()
	defer l.mu.Unlock()

	last, exists := l.lastUsed[key]
	if exists {
		elapsed := now.Sub(last)
		if elapsed < window {
			return window - elapsed, false
		}
	}

	l.lastUsed[key] = now
	return 0, true
}
