package imageio

import (
	"github.com/bluele/gcache"
	"github.com/pkg/errors"
)

// CachedLoader keeps recently decoded images in an LRU cache.
// Pair lists tend to reference the same image many times.
type CachedLoader struct {
	Source ImageLoader
	cache  gcache.Cache
}

// NewCachedLoader wraps source with an LRU holding up to size images
func NewCachedLoader(source ImageLoader, size int) *CachedLoader {
	cl := &CachedLoader{
		Source: source,
	}
	cl.cache = gcache.New(size).
		LRU().
		LoaderFunc(func(key interface{}) (interface{}, error) {
			return source.Load(key.(string))
		}).
		Build()
	return cl
}

// Load returns the cached buffer for path, loading it on a miss.
// Failed loads are not cached.
func (cl *CachedLoader) Load(path string) (*PixelBuffer, error) {
	value, err := cl.cache.Get(path)
	if err != nil {
		return nil, err
	}
	if buffer, ok := value.(*PixelBuffer); ok {
		return buffer, nil
	}
	return nil, errors.Errorf("image cache holds %T for %v", value, path)
}

// HitCount is the number of loads served from the cache
func (cl *CachedLoader) HitCount() uint64 {
	return cl.cache.HitCount()
}
