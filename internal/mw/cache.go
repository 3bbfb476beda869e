package mw

import (
	"bytes"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// Headers owned by compression middleware are not replayed from the cache.
var skipHeaders = map[string]bool{
	"Content-Encoding": true,
	"Content-Length":   true,
	"Vary":             true,
}

type cachedResponse struct {
	status  int
	headers http.Header
	body    []byte
}

type bodyCacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyCacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w bodyCacheWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Cache serves repeated GET requests from memory, keyed by request URI.
func Cache(store *cache.Cache, duration time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if resp, found := store.Get(key); found {
			cached := resp.(cachedResponse)
			for k, v := range cached.headers {
				c.Writer.Header()[k] = v
			}
			c.Writer.Header().Set("X-Cache", "HIT")
			c.Writer.WriteHeader(cached.status)
			c.Writer.Write(cached.body)
			c.Abort()
			return
		}

		blw := &bodyCacheWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// Only cache successful responses
		if blw.Status() >= 200 && blw.Status() < 300 {
			headers := make(http.Header)
			for k, v := range blw.Header() {
				if !skipHeaders[k] {
					headers[k] = append([]string(nil), v...)
				}
			}
			response := cachedResponse{
				status:  blw.Status(),
				headers: headers,
				body:    blw.body.Bytes(),
			}
			store.Set(key, response, duration)
		}
	}
}

// InvalidationMap maps a write path prefix to the cached path prefixes that a
// successful write under it makes stale.
type InvalidationMap map[string][]string

// match returns the stale prefixes for path, using the longest matching key.
func (m InvalidationMap) match(path string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
	for _, k := range keys {
		if strings.HasPrefix(path, k) {
			return m[k]
		}
	}
	return nil
}

// Invalidate drops cached GET responses after successful writes, following deps.
func Invalidate(store *cache.Cache, deps InvalidationMap) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			return
		}
		if status := c.Writer.Status(); status < 200 || status >= 300 {
			return
		}
		Evict(store, deps.match(c.Request.URL.Path)...)
	}
}

// Evict removes every cached entry whose key starts with one of prefixes.
func Evict(store *cache.Cache, prefixes ...string) {
	if len(prefixes) == 0 {
		return
	}
	for key := range store.Items() {
		for _, p := range prefixes {
			if strings.HasPrefix(key, p) {
				store.Delete(key)
				break
			}
		}
	}
}
