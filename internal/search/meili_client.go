// Package search membungkus Meilisearch sebagai index katalog wilayah
package search

import (
	"fmt"
	"strings"

	ms "github.com/meilisearch/meilisearch-go"
)

// ClientWrapper wraps Meilisearch client
type ClientWrapper struct {
	cli ms.ServiceManager
}

// NewClientWrapper creates new Meilisearch client wrapper
func NewClientWrapper(url, key string) *ClientWrapper {
	client := ms.New(url, ms.WithAPIKey(key))
	return &ClientWrapper{
		cli: client,
	}
}

// Healthy cek koneksi ke server Meilisearch
func (c *ClientWrapper) Healthy() error {
	if _, err := c.cli.Health(); err != nil {
		return fmt.Errorf("meilisearch tidak dapat dihubungi: %w", err)
	}
	return nil
}

// ListIndex mengambil semua dokumen yang cocok dengan filter, urut sesuai sort
func (c *ClientWrapper) ListIndex(index string, filter string, sort []string, limit int64) (*ms.SearchResponse, error) {
	idx := c.cli.Index(index)

	req := &ms.SearchRequest{
		Limit:  limit,
		Filter: filter, // e.g., "level = 3 AND parent_id = \"3273\""
		Sort:   sort,
	}

	return idx.Search("", req)
}

// FilterLevelParent creates filter string for level and parent_id
func FilterLevelParent(level int, parentID string) string {
	if parentID == "" {
		return FilterLevel(level)
	}
	return fmt.Sprintf("level = %d AND parent_id = %q", level, parentID)
}

// FilterLevel creates simple level filter
func FilterLevel(level int) string {
	return fmt.Sprintf("level = %d", level)
}

// DocumentID id dokumen Meilisearch untuk satu wilayah.
// Id wilayah hanya unik per level, jadi level ikut jadi prefix.
func DocumentID(level int, unitID string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, unitID)
	return fmt.Sprintf("%d-%s", level, safe)
}
