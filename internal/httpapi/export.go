package httpapi

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/zeebo/xxh3"

	"github.com/abianche/uoo-cooldown-manager/internal/cdxml"
	"github.com/abianche/uoo-cooldown-manager/internal/store"
)

type renderedExport struct {
	Body []byte
	ETag string
}

// exportCache keeps encoded documents per session revision; a revision never
// changes content, so entries only expire by age.
type exportCache struct {
	cache *cache.Cache
}

func newExportCache(ttl time.Duration) *exportCache {
	return &exportCache{cache: cache.New(ttl, 2*ttl)}
}

func (c *exportCache) render(snap store.Snapshot) (renderedExport, error) {
	key := fmt.Sprintf("%s:%d", snap.Session, snap.Revision)
	if cached, found := c.cache.Get(key); found {
		return cached.(renderedExport), nil
	}

	body, err := cdxml.Encode(snap.Document)
	if err != nil {
		return renderedExport{}, err
	}
	out := renderedExport{
		Body: body,
		ETag: fmt.Sprintf(`"%016x"`, xxh3.Hash(body)),
	}
	c.cache.Set(key, out, cache.DefaultExpiration)
	return out, nil
}
