package cache

import (
	"strings"
	"testing"
	"time"
)

func TestAnnotationKeyStableAndNamespaced(t *testing.T) {
	a := AnnotationKey("Militants attacked a village.")
	b := AnnotationKey("Militants attacked a village.")
	c := AnnotationKey("A different article.")

	if a != b {
		t.Error("same text must produce the same key")
	}
	if a == c {
		t.Error("different texts must produce different keys")
	}
	if !strings.HasPrefix(a, "vigil:annotate:v1:") {
		t.Errorf("key missing namespace: %s", a)
	}
	if f := FetchKey("http://example.com"); !strings.HasPrefix(f, "vigil:fetch:v1:") {
		t.Errorf("fetch key missing namespace: %s", f)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	key := AnnotationKey("some article text")

	if _, found := c.Get(key); found {
		t.Fatal("empty cache reported a hit")
	}
	if err := c.Set(key, []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, found := c.Get(key)
	if !found || string(got) != "payload" {
		t.Fatalf("Get = %q, %v", got, found)
	}

	if err := c.Delete(key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("deleted entry still readable")
	}
}

func TestDiskCacheExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	key := AnnotationKey("expiring article")

	if err := c.Set(key, []byte("x"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, found := c.Get(key); found {
		t.Error("expired entry still readable")
	}
}

func TestLayeredCachePromotesFromDisk(t *testing.T) {
	dir := t.TempDir()
	key := AnnotationKey("shared article")

	// Seed the disk layer directly, as a previous process would have
	disk := NewDiskCache(dir, time.Hour)
	if err := disk.Set(key, []byte("annotated"), 0); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	layered := NewLayeredCache(time.Minute, dir, time.Hour)
	got, found := layered.Get(key)
	if !found || string(got) != "annotated" {
		t.Fatalf("layered Get = %q, %v", got, found)
	}

	// Remove the disk entry; the promoted memory copy must still serve
	if err := disk.Delete(key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := layered.Get(key); !found {
		t.Error("promoted entry not served from memory")
	}
}
