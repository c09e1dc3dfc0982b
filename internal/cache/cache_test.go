package cache

import (
	"testing"
	"time"
)

func TestKeyIsStable(t *testing.T) {
	a := Key("https://example.test/doc.xml")
	b := Key("https://example.test/doc.xml")
	c := Key("https://example.test/other.xml")
	if a != b {
		t.Error("same URL produced different keys")
	}
	if a == c {
		t.Error("different URLs produced the same key")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("hit on missing key")
	}
	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := c.Get("k")
	if !ok || string(got) != "v" {
		t.Errorf("Get = %q, %v", got, ok)
	}
	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("hit after delete")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	if err := c.Set("k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("hit on expired entry")
	}
}

func TestDiskCache(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	if err := c.Set(Key("url"), []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := c.Get(Key("url"))
	if !ok || string(got) != "payload" {
		t.Errorf("Get = %q, %v", got, ok)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := c.Get(Key("url")); ok {
		t.Error("hit after clear")
	}
}

func TestDiskCacheExpiredEntryIsAMiss(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	if err := c.Set("k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("hit on expired entry")
	}
}

func TestLayeredCachePromotesFromDisk(t *testing.T) {
	mem := NewMemoryCache(time.Minute, time.Minute)
	disk := NewDiskCache(t.TempDir(), time.Hour)
	layered := NewLayeredCache(mem, disk)

	// Simulate a restart: the entry exists only on disk.
	if err := disk.Set("k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := layered.Get("k")
	if !ok || string(got) != "v" {
		t.Fatalf("layered Get = %q, %v", got, ok)
	}
	if _, ok := mem.Get("k"); !ok {
		t.Error("disk hit was not promoted to the memory tier")
	}
}

func TestLayeredCacheWritesBothTiers(t *testing.T) {
	mem := NewMemoryCache(time.Minute, time.Minute)
	disk := NewDiskCache(t.TempDir(), time.Hour)
	layered := NewLayeredCache(mem, disk)

	if err := layered.Set("k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok := mem.Get("k"); !ok {
		t.Error("memory tier missing entry")
	}
	if _, ok := disk.Get("k"); !ok {
		t.Error("disk tier missing entry")
	}
}
