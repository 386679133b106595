package main

import "sync"

// sourceCache memoizes fetched source bytes by source reference, so a view
// refresh does not re-download an unchanged workbook. The pipeline never
// depends on it: a cold cache just re-fetches, and recomputation from the
// same bytes reproduces the same table.
type sourceCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newSourceCache() *sourceCache {
	return &sourceCache{entries: map[string][]byte{}}
}

// Fetch errors are not cached.
func (c *sourceCache) bytes(ref string, fetch func() ([]byte, error)) ([]byte, error) {
	c.mu.Lock()
	cached, ok := c.entries[ref]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	data, err := fetch()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[ref] = data
	c.mu.Unlock()
	return data, nil
}

func (c *sourceCache) clear() {
	c.mu.Lock()
	c.entries = map[string][]byte{}
	c.mu.Unlock()
}
