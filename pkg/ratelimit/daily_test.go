package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyQuota_LimitBoundary(t *testing.T) {
	quota := NewDailyQuota(30)
	now := time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)

	for i := 1; i <= 30; i++ {
		res := quota.CheckAndIncrement("abu", now)
		require.True(t, res.Allowed, "request %d should be allowed", i)
		assert.Equal(t, i, res.Count)
		assert.Equal(t, 30, res.Limit)
	}

	// request 31 is the first denial
	res := quota.CheckAndIncrement("abu", now)
	assert.False(t, res.Allowed)
	assert.Equal(t, 31, res.Count)
	assert.Equal(t, time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), res.RetryAfter)
}

func TestDailyQuota_ResetsAtUTCMidnight(t *testing.T) {
	quota := NewDailyQuota(2)
	day1 := time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC)

	quota.CheckAndIncrement("abu", day1)
	quota.CheckAndIncrement("abu", day1)
	require.False(t, quota.CheckAndIncrement("abu", day1).Allowed)

	day2 := time.Date(2025, 6, 11, 0, 0, 1, 0, time.UTC)
	res := quota.CheckAndIncrement("abu", day2)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Count)
}

func TestDailyQuota_UsesUTCDayNotLocal(t *testing.T) {
	quota := NewDailyQuota(1)

	// 23:00-0500 on June 10 and 01:00+0200 on June 11 are both June 10 in UTC
	east := time.FixedZone("east", 2*60*60)
	west := time.FixedZone("west", -5*60*60)
	first := time.Date(2025, 6, 10, 23, 0, 0, 0, west)
	second := time.Date(2025, 6, 11, 1, 0, 0, 0, east)

	require.True(t, quota.CheckAndIncrement("abu", first).Allowed)
	res := quota.CheckAndIncrement("abu", second)
	assert.False(t, res.Allowed)
	assert.Equal(t, time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), res.RetryAfter)
}

func TestDailyQuota_IdentitiesAreIndependent(t *testing.T) {
	quota := NewDailyQuota(1)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	require.True(t, quota.CheckAndIncrement("abu", now).Allowed)
	require.False(t, quota.CheckAndIncrement("abu", now).Allowed)

	assert.True(t, quota.CheckAndIncrement("someone-else", now).Allowed)
}

func TestDailyQuota_ConcurrentIncrementsLoseNothing(t *testing.T) {
	const workers = 50
	quota := NewDailyQuota(30)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	allowed := make(chan bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- quota.CheckAndIncrement("abu", now).Allowed
		}()
	}
	wg.Wait()
	close(allowed)

	var granted int
	for ok := range allowed {
		if ok {
			granted++
		}
	}
	assert.Equal(t, 30, granted)
}
