package roomdata

import (
	"errors"
	"fmt"
	"testing"
)

type countingLoader struct {
	loads map[int]int
	fail  map[int]bool
}

func (c *countingLoader) Load(id int) (*RoomData, error) {
	c.loads[id]++
	if c.fail[id] {
		return nil, fmt.Errorf("room %d: %w", id, ErrRoomNotFound)
	}
	return &RoomData{ID: id}, nil
}

func newCountingLoader() *countingLoader {
	return &countingLoader{loads: map[int]int{}, fail: map[int]bool{}}
}

func TestCachingLoaderServesFromCache(t *testing.T) {
	inner := newCountingLoader()
	c := NewCachingLoader(inner, 2)

	for i := 0; i < 3; i++ {
		if _, err := c.Load(1); err != nil {
			t.Fatalf("load: %v", err)
		}
	}
	if inner.loads[1] != 1 {
		t.Fatalf("inner loaded room 1 %d times, want 1", inner.loads[1])
	}
}

func TestCachingLoaderEvictsLeastRecentlyUsed(t *testing.T) {
	inner := newCountingLoader()
	c := NewCachingLoader(inner, 2)

	c.Load(1)
	c.Load(2)
	c.Load(1) // touch 1; 2 is now the eviction candidate
	c.Load(3) // evicts 2

	if !c.Cached(1) || !c.Cached(3) {
		t.Fatal("recently used rooms evicted")
	}
	if c.Cached(2) {
		t.Fatal("least recently used room still cached")
	}

	c.Load(2)
	if inner.loads[2] != 2 {
		t.Fatalf("room 2 loaded %d times, want 2 (reload after eviction)", inner.loads[2])
	}
}

func TestCachingLoaderNeverCachesFailures(t *testing.T) {
	inner := newCountingLoader()
	inner.fail[7] = true
	c := NewCachingLoader(inner, 2)

	for i := 0; i < 2; i++ {
		if _, err := c.Load(7); !errors.Is(err, ErrRoomNotFound) {
			t.Fatalf("err = %v, want ErrRoomNotFound", err)
		}
	}
	if inner.loads[7] != 2 {
		t.Fatalf("failed room loaded %d times, want 2 (no negative caching)", inner.loads[7])
	}
	if c.Cached(7) {
		t.Fatal("failure cached")
	}
}

func TestCachingLoaderDisabledWithZeroSize(t *testing.T) {
	inner := newCountingLoader()
	c := NewCachingLoader(inner, 0)

	c.Load(1)
	c.Load(1)
	if inner.loads[1] != 2 {
		t.Fatalf("room loaded %d times, want 2 with caching disabled", inner.loads[1])
	}
}
