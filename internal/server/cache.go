package server

import "sync"

// renderCache holds rendered document pages for the process lifetime.
// Construction of a page is guarded per slug: concurrent first requests
// share one in-flight render instead of racing duplicate builds. Failed
// renders are not cached.
type renderCache struct {
	mu      sync.Mutex
	entries map[string]*renderEntry
}

type renderEntry struct {
	ready chan struct{}
	page  *docResponse
	err   error
}

func newRenderCache() *renderCache {
	return &renderCache{entries: make(map[string]*renderEntry)}
}

// get returns the cached page for slug, building it with build on first use.
func (c *renderCache) get(slug string, build func(string) (*docResponse, error)) (*docResponse, error) {
	c.mu.Lock()
	if e, ok := c.entries[slug]; ok {
		c.mu.Unlock()
		<-e.ready
		return e.page, e.err
	}
	e := &renderEntry{ready: make(chan struct{})}
	c.entries[slug] = e
	c.mu.Unlock()

	e.page, e.err = build(slug)
	if e.err != nil {
		c.mu.Lock()
		delete(c.entries, slug)
		c.mu.Unlock()
	}
	close(e.ready)
	return e.page, e.err
}

// purge drops the given slugs from the cache, or everything when slugs is
// empty. Returns the number of entries dropped.
func (c *renderCache) purge(slugs []string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(slugs) == 0 {
		n := len(c.entries)
		c.entries = make(map[string]*renderEntry)
		return n
	}

	n := 0
	for _, slug := range slugs {
		if _, ok := c.entries[slug]; ok {
			delete(c.entries, slug)
			n++
		}
	}
	return n
}
