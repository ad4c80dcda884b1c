package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock drives expiry without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestLRU(capacity int, ttl time.Duration) (*LRU, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRU(capacity, ttl)
	c.now = clock.Now
	return c, clock
}

func TestLRU_SetGet(t *testing.T) {
	c, _ := newTestLRU(2, time.Minute)

	_, ok := c.Get("42")
	assert.False(t, ok, "expected miss before Set")

	c.Set("42", "bonus chapter")
	value, ok := c.Get("42")
	assert.True(t, ok)
	assert.Equal(t, "bonus chapter", value)
}

func TestLRU_EmptyValueIsCached(t *testing.T) {
	c, _ := newTestLRU(2, time.Minute)

	c.Set("7", "")
	value, ok := c.Get("7")
	assert.True(t, ok)
	assert.Empty(t, value)
}

func TestLRU_Overwrite(t *testing.T) {
	c, _ := newTestLRU(2, time.Minute)

	c.Set("42", "v1")
	c.Set("42", "v2")

	value, ok := c.Get("42")
	assert.True(t, ok)
	assert.Equal(t, "v2", value)
	assert.Equal(t, 1, c.Len())
}

func TestLRU_TTLExpiry(t *testing.T) {
	c, clock := newTestLRU(2, time.Minute)

	c.Set("42", "content")
	clock.Advance(30 * time.Second)
	_, ok := c.Get("42")
	assert.True(t, ok, "expected hit before TTL")

	// Reads do not extend the expiry.
	clock.Advance(31 * time.Second)
	_, ok = c.Get("42")
	assert.False(t, ok, "expected miss after TTL")
	assert.Equal(t, 0, c.Len())
}

func TestLRU_ZeroTTLNeverExpires(t *testing.T) {
	c, clock := newTestLRU(2, 0)

	c.Set("42", "content")
	clock.Advance(24 * time.Hour)
	_, ok := c.Get("42")
	assert.True(t, ok)
}

func TestLRU_Eviction(t *testing.T) {
	c, _ := newTestLRU(2, 0)

	c.Set("A", "a")
	c.Set("B", "b")
	_, ok := c.Get("A")
	assert.True(t, ok)

	c.Set("C", "c")

	_, ok = c.Get("B")
	assert.False(t, ok, "expected B to be evicted")
	_, ok = c.Get("A")
	assert.True(t, ok)
	_, ok = c.Get("C")
	assert.True(t, ok)
}

func TestLRU_PrunesExpiredBeforeEvicting(t *testing.T) {
	c, clock := newTestLRU(2, time.Minute)

	c.Set("old", "x")
	clock.Advance(2 * time.Minute)
	c.Set("A", "a")
	c.Set("B", "b")

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("A")
	assert.True(t, ok)
	_, ok = c.Get("B")
	assert.True(t, ok)
}

func TestLRU_Delete(t *testing.T) {
	c, _ := newTestLRU(2, time.Minute)

	c.Set("42", "content")
	c.Delete("42")
	c.Delete("missing")

	_, ok := c.Get("42")
	assert.False(t, ok)
}

func TestLRU_ConcurrentAccess(t *testing.T) {
	c, _ := newTestLRU(8, time.Minute)
	keys := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := keys[(i+j)%len(keys)]
				c.Set(key, key)
				c.Get(key)
				if j%10 == 0 {
					c.Delete(key)
				}
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 8)
}
