package manifest

import "path/filepath"

// Cache is a Parser that serves already loaded units by path and parses
// anything else from disk.
type Cache struct {
	byPath map[string]*Unit
}

// NewCache indexes units by their path.
func NewCache(units []*Unit) *Cache {
	c := &Cache{byPath: make(map[string]*Unit, len(units))}
	for _, u := range units {
		c.byPath[filepath.Clean(u.Path)] = u
	}
	return c
}

// Parse returns the loaded unit for path, parsing the file if it was not
// loaded before.
func (c *Cache) Parse(path string) (*Unit, error) {
	if u, ok := c.byPath[filepath.Clean(path)]; ok {
		return u, nil
	}
	return ParseFile(path)
}
