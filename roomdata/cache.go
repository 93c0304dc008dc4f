package roomdata

// CachingLoader wraps a Loader and keeps the most recently loaded rooms so
// backtracking through adjacent rooms does not re-parse resources. Parsed
// room data is read-only, so cached values are shared safely. Eviction is
// keep-last-N; the size is a tunable, not a correctness requirement.
type CachingLoader struct {
	inner Loader
	max   int

	rooms map[int]*RoomData
	order []int // least recently used first
}

// NewCachingLoader wraps inner with a cache of up to max rooms. A max of zero
// or less disables caching.
func NewCachingLoader(inner Loader, max int) *CachingLoader {
	return &CachingLoader{
		inner: inner,
		max:   max,
		rooms: make(map[int]*RoomData),
	}
}

// Load returns the cached room when present, loading and caching otherwise.
// Failed loads are never cached.
func (c *CachingLoader) Load(id int) (*RoomData, error) {
	if room, ok := c.rooms[id]; ok {
		c.touch(id)
		return room, nil
	}

	room, err := c.inner.Load(id)
	if err != nil {
		return nil, err
	}
	if c.max > 0 {
		c.rooms[id] = room
		c.order = append(c.order, id)
		for len(c.order) > c.max {
			delete(c.rooms, c.order[0])
			c.order = c.order[1:]
		}
	}
	return room, nil
}

func (c *CachingLoader) touch(id int) {
	for i, cand := range c.order {
		if cand == id {
			c.order = append(append(c.order[:i:i], c.order[i+1:]...), id)
			return
		}
	}
}

// Cached reports whether a room is currently held in the cache.
func (c *CachingLoader) Cached(id int) bool {
	_, ok := c.rooms[id]
	return ok
}
