package ratelimit

import (
	"sync"
	"time"
)

// DailyQuota counts requests per identity per UTC calendar day. The counter
// for an identity resets lazily on the first request of a new day.
type DailyQuota struct {
	mu      sync.Mutex
	limit   int
	entries map[string]*dailyEntry
}

type dailyEntry struct {
	day   string
	count int
}

// QuotaResult is the outcome of a single gate check.
type QuotaResult struct {
	Allowed    bool
	Count      int
	Limit      int
	RetryAfter time.Time
}

func NewDailyQuota(limit int) *DailyQuota {
	return &DailyQuota{
		limit:   limit,
		entries: make(map[string]*dailyEntry),
	}
}

// CheckAndIncrement records one request for identity and reports whether it
// is allowed. The request that reaches the limit is still allowed; the next
// one is denied until the next UTC midnight. The read-modify-write on the
// entry is atomic with respect to concurrent calls for the same identity.
func (q *DailyQuota) CheckAndIncrement(identity string, now time.Time) QuotaResult {
	today := now.UTC().Format("2006-01-02")

	q.mu.Lock()
	defer q.mu.Unlock()

	entry, ok := q.entries[identity]
	if !ok || entry.day != today {
		q.entries[identity] = &dailyEntry{day: today, count: 1}
		return QuotaResult{Allowed: true, Count: 1, Limit: q.limit}
	}

	entry.count++
	if entry.count > q.limit {
		return QuotaResult{
			Allowed:    false,
			Count:      entry.count,
			Limit:      q.limit,
			RetryAfter: nextUTCMidnight(now),
		}
	}

	return QuotaResult{Allowed: true, Count: entry.count, Limit: q.limit}
}

func nextUTCMidnight(now time.Time) time.Time {
	t := now.UTC()
	return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, time.UTC)
}
