package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_GetSet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}

	c.Set("k", 123)
	if n, found := c.Get("k"); !found || n != 123 {
		t.Errorf("Expected hit with 123, got %d (found=%v)", n, found)
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set("k", 1)
	c.Clear()
	if _, found := c.Get("k"); found {
		t.Error("Expected miss after Clear")
	}
}

func TestKey_DistinctTexts(t *testing.T) {
	if Key("one") == Key("two") {
		t.Error("Different texts should produce different keys")
	}
	if Key("same") != Key("same") {
		t.Error("Same text should produce the same key")
	}
}
