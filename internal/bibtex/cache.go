package bibtex

// Cache holds parsed bibliography indexes for the lifetime of one run.
// Keys are path strings exactly as given: two spellings of the same
// file load and parse independently. There is no invalidation; a bib
// file changed mid-run is not re-read.
type Cache struct {
	indexes map[string]Index
}

// NewCache returns an empty bibliography cache.
func NewCache() *Cache {
	return &Cache{indexes: make(map[string]Index)}
}

// Load returns the index for path, parsing the file on first use.
func (c *Cache) Load(path string) (Index, error) {
	if idx, ok := c.indexes[path]; ok {
		return idx, nil
	}

	idx, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	c.indexes[path] = idx
	return idx, nil
}

// Clear drops all cached indexes. Intended for test isolation.
func (c *Cache) Clear() {
	c.indexes = make(map[string]Index)
}
