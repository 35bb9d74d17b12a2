package pack

import (
	"fmt"
	"os"
	"sort"

	"github.com/mrhapile/respack/pkg/types"
)

// Catalog holds a Store's index in memory and keeps the blob open, so
// repeated lookups avoid rescanning the index. It must be closed.
type Catalog struct {
	records map[string]types.IndexRecord
	data    *os.File
}

// OpenCatalog reads the whole index of s once. When a key occurs more than
// once the first record wins, matching Store.Lookup.
func OpenCatalog(s *Store) (*Catalog, error) {
	recs, err := s.Records()
	if err != nil {
		return nil, err
	}
	records := make(map[string]types.IndexRecord, len(recs))
	for _, rec := range recs {
		if _, ok := records[rec.Key]; !ok {
			records[rec.Key] = rec
		}
	}

	f, err := os.Open(s.DataPath)
	if err != nil {
		return nil, ioError(err)
	}
	s.readLog.Debug("catalog opened", "resources", len(records))
	return &Catalog{records: records, data: f}, nil
}

// Len returns the number of distinct keys.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Keys returns every key in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.records))
	for k := range c.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the record for key.
func (c *Catalog) Lookup(key string) (types.IndexRecord, error) {
	rec, ok := c.records[key]
	if !ok {
		return rec, fmt.Errorf("%w: %q", ErrResourceNotFound, key)
	}
	return rec, nil
}

// Load returns a fresh copy of the bytes packed under key. It is safe for
// concurrent use.
func (c *Catalog) Load(key string) ([]byte, error) {
	rec, err := c.Lookup(key)
	if err != nil {
		return nil, err
	}
	return readRecord(c.data, rec)
}

func (c *Catalog) Close() error {
	if err := c.data.Close(); err != nil {
		return ioError(err)
	}
	return nil
}
