package monogfx

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"
)

// FontCache caches parsed fonts for long-running programs such as the
// scene renderer, which may load the same header for every scene. Entries
// are evicted least recently used first once maxSize is reached.
//
// Headers loaded from disk are keyed by absolute path and remember the
// file's size and modification time; a later load of a changed file parses
// it again. Fonts parsed from bytes are keyed by the SHA-256 of the header,
// so identical content shares one entry whatever its source.
type FontCache struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // of *cacheEntry, most recently used first
	maxSize int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
	reloads   atomic.Uint64
}

type cacheEntry struct {
	key   string
	font  *Font
	size  int64
	stamp fileStamp
}

// fileStamp identifies one version of a header on disk. Content-keyed
// entries carry the zero stamp.
type fileStamp struct {
	size    int64
	modTime time.Time
}

func stampOf(info os.FileInfo) fileStamp {
	return fileStamp{size: info.Size(), modTime: info.ModTime()}
}

func (s fileStamp) matches(o fileStamp) bool {
	return s.size == o.size && s.modTime.Equal(o.modTime)
}

var defaultCache = NewFontCache(100)

// NewFontCache creates a cache holding at most maxSize fonts. A maxSize of
// 0 or less means unlimited.
func NewFontCache(maxSize int) *FontCache {
	return &FontCache{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		maxSize: maxSize,
	}
}

// LoadFontCached loads a GFX header through the default cache.
func LoadFontCached(path string) (*Font, error) {
	return defaultCache.LoadFont(path)
}

// LoadFont loads a GFX header from disk, returning the cached font when the
// file has not changed since it was last parsed. Safe for concurrent use.
func (c *FontCache) LoadFont(path string) (*Font, error) {
	info, err := os.Stat(path)
	if err != nil {
		c.misses.Add(1)
		return LoadFont(path)
	}

	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}
	key = "file:" + key
	stamp := stampOf(info)

	if font := c.get(key, stamp); font != nil {
		return font, nil
	}

	font, err := LoadFont(path)
	if err != nil {
		return nil, err
	}
	c.put(key, stamp, font)
	return font, nil
}

// ParseFontCached parses a GFX header through the default cache.
func ParseFontCached(data []byte) (*Font, error) {
	return defaultCache.ParseFont(data)
}

// ParseFont parses a GFX header, returning the cached font for content
// seen before. Safe for concurrent use.
func (c *FontCache) ParseFont(data []byte) (*Font, error) {
	hash := sha256.Sum256(data)
	key := "sha256:" + hex.EncodeToString(hash[:])

	if font := c.get(key, fileStamp{}); font != nil {
		return font, nil
	}

	font, err := ParseFontBytes(data)
	if err != nil {
		return nil, err
	}
	c.put(key, fileStamp{}, font)
	return font, nil
}

// get returns the font stored under key if its stamp still matches. A stale
// entry is dropped and counted as a reload.
func (c *FontCache) get(key string, stamp fileStamp) *Font {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		return nil
	}

	entry := el.Value.(*cacheEntry)
	if !entry.stamp.matches(stamp) {
		c.order.Remove(el)
		delete(c.entries, key)
		c.reloads.Add(1)
		c.misses.Add(1)
		return nil
	}

	c.order.MoveToFront(el)
	c.hits.Add(1)
	return entry.font
}

// put stores a font, evicting from the back of the list while full. A
// concurrent load of the same key may have stored it first; the newer
// stamp wins.
func (c *FontCache) put(key string, stamp fileStamp, font *Font) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		entry := el.Value.(*cacheEntry)
		entry.font, entry.stamp, entry.size = font, stamp, estimateFontSize(font)
		c.order.MoveToFront(el)
		return
	}

	for c.maxSize > 0 && c.order.Len() >= c.maxSize {
		c.evictOldest()
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{
		key:   key,
		font:  font,
		size:  estimateFontSize(font),
		stamp: stamp,
	})
}

func (c *FontCache) evictOldest() {
	el := c.order.Back()
	if el == nil {
		return
	}
	c.order.Remove(el)
	delete(c.entries, el.Value.(*cacheEntry).key)
	c.evictions.Add(1)
}

// Clear removes every font. Counters are kept.
func (c *FontCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

// Stats returns a snapshot of the cache counters.
func (c *FontCache) Stats() CacheStats {
	c.mu.Lock()
	size := c.order.Len()
	var total int64
	for el := c.order.Front(); el != nil; el = el.Next() {
		total += el.Value.(*cacheEntry).size
	}
	c.mu.Unlock()

	return CacheStats{
		Size:      size,
		Bytes:     total,
		MaxSize:   c.maxSize,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Reloads:   c.reloads.Load(),
	}
}

// CacheStats contains cache performance statistics
type CacheStats struct {
	Size      int    // Current number of cached fonts
	MaxSize   int    // Maximum cache size
	Bytes     int64  // Approximate memory held by cached fonts
	Hits      uint64 // Number of cache hits
	Misses    uint64 // Number of cache misses, reloads included
	Evictions uint64 // Number of evictions
	Reloads   uint64 // Number of entries dropped because the file changed
}

// HitRate returns the cache hit rate as a percentage (0-100)
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) * 100 / float64(total)
}

// estimateFontSize approximates the memory held by a font: the repacked
// bitmap blob, the glyph table and the name.
func estimateFontSize(f *Font) int64 {
	if f == nil {
		return 0
	}
	return int64(unsafe.Sizeof(*f)) +
		int64(len(f.Name)) +
		int64(len(f.Bitmap)) +
		int64(len(f.Glyphs))*int64(unsafe.Sizeof(Glyph{}))
}

// SetDefaultCacheSize replaces the default cache with an empty one of the
// given size. Call it once at startup.
func SetDefaultCacheSize(maxSize int) {
	defaultCache = NewFontCache(maxSize)
}

// ClearDefaultCache clears the default font cache.
func ClearDefaultCache() {
	defaultCache.Clear()
}

// DefaultCacheStats returns statistics for the default cache.
func DefaultCacheStats() CacheStats {
	return defaultCache.Stats()
}
