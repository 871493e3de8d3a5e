package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// AnnotationKey generates a cache key from article text. Annotation output
// depends only on the text, so identical articles share one entry.
func AnnotationKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "vigil:annotate:v1:" + hex.EncodeToString(hash[:])
}

// FetchKey generates a cache key from a URL for fetched article bodies.
func FetchKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "vigil:fetch:v1:" + hex.EncodeToString(hash[:])
}
