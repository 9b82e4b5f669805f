package domain

// Cache holds values derived during one render cycle. It is never
// serialized and dies with its State.
type Cache struct {
	entries map[string]any
}

func newCache() *Cache {
	return &Cache{entries: make(map[string]any)}
}

func (c *Cache) Get(key string) (any, bool) {
	v, ok := c.entries[key]
	return v, ok
}

func (c *Cache) Set(key string, v any) {
	c.entries[key] = v
}

func (c *Cache) Delete(key string) {
	delete(c.entries, key)
}

// GetOrCompute returns the cached value, computing and storing it on a miss.
func (c *Cache) GetOrCompute(key string, fn func() any) any {
	if v, ok := c.entries[key]; ok {
		return v
	}
	v := fn()
	c.entries[key] = v
	return v
}

// Clear drops every entry.
func (c *Cache) Clear() {
	clear(c.entries)
}

func (c *Cache) Len() int { return len(c.entries) }

// CacheAs returns the entry under key if it holds a T.
func CacheAs[T any](c *Cache, key string) (T, bool) {
	v, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// CacheOrCompute is the typed form of GetOrCompute. An entry of another type
// is replaced.
func CacheOrCompute[T any](c *Cache, key string, fn func() T) T {
	if t, ok := CacheAs[T](c, key); ok {
		return t
	}
	t := fn()
	c.entries[key] = t
	return t
}
