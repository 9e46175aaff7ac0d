package telegram

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// Group chats accept roughly 20 messages per minute.
	groupEvery = 3 * time.Second
	groupBurst = 20

	limiterIdleTTL   = 10 * time.Minute
	limiterSweepTick = time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter throttles outbound messages: one bucket for the whole bot and
// one per group chat.
type Limiter struct {
	global *rate.Limiter

	mu        sync.Mutex
	groups    map[int64]*limiterEntry
	lastSweep time.Time
}

// NewLimiter allows perSecond messages overall with the given burst.
func NewLimiter(perSecond float64, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Limiter{
		global:    rate.NewLimiter(limit, burst),
		groups:    make(map[int64]*limiterEntry),
		lastSweep: time.Now(),
	}
}

// Wait blocks until a message to chatID may be sent.
func (l *Limiter) Wait(ctx context.Context, chatID int64) error {
	if chatID < 0 {
		if err := l.group(chatID).Wait(ctx); err != nil {
			return err
		}
	}
	return l.global.Wait(ctx)
}

// group returns the limiter for a group chat, creating one if needed.
// Group chat ids are negative.
func (l *Limiter) group(chatID int64) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastSweep) > limiterSweepTick {
		for id, entry := range l.groups {
			if now.Sub(entry.lastSeen) > limiterIdleTTL {
				delete(l.groups, id)
			}
		}
		l.lastSweep = now
	}

	entry, ok := l.groups[chatID]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Every(groupEvery), groupBurst)}
		l.groups[chatID] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

func (l *Limiter) trackedGroups() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.groups)
}
