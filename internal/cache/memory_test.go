package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestMemoryCacheGetSet(t *testing.T) {
	c := NewMemoryCache()

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set("schedule:10000:0.02:12", `{"payment":945.60}`); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}

	val, ok := c.Get("schedule:10000:0.02:12")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if val != `{"payment":945.60}` {
		t.Errorf("Get() = %q", val)
	}
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	c := NewMemoryCache()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n%10)
			_ = c.Set(key, "value")
			_, _ = c.Get(key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		if _, ok := c.Get(fmt.Sprintf("key-%d", i)); !ok {
			t.Errorf("missing key-%d after concurrent writes", i)
		}
	}
}
