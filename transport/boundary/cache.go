package boundary

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

var ResponseCacheSize = 128

type cachedResponse struct {
	status  int
	headers map[string]string
	body    []byte
}

// ResponseCache is an in memory LRU of successful GET and HEAD responses
// keyed by method and resolved URL. It is used by the endpoint wrapper to
// memoize idempotent reads.
type ResponseCache struct {
	data *lru.Cache[string, cachedResponse]
}

// NewResponseCache creates a response cache. The size parameter controls
// the maximum number of responses retained. Pass a value less than 1 to
// use the default size [ResponseCacheSize].
func NewResponseCache(size int) (*ResponseCache, error) {
	if size <= 0 {
		size = ResponseCacheSize
	}
	cache, err := lru.New[string, cachedResponse](size)
	if err != nil {
		return nil, fmt.Errorf("creating response LRU: %w", err)
	}
	return &ResponseCache{data: cache}, nil
}

func (c *ResponseCache) get(key string) (cachedResponse, bool) {
	return c.data.Get(key)
}

func (c *ResponseCache) put(key string, res cachedResponse) {
	c.data.Add(key, res)
}

func cacheKey(r *Request) string {
	return r.Method + " " + r.URL
}
