package media

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type fakeFetcher struct {
	calls int
	data  []byte
	err   error
}

func (f *fakeFetcher) FetchBytes(url string) ([]byte, error) {
	f.calls++

	return f.data, f.err
}

func TestCache_Ensure_DownloadsOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	fetcher := &fakeFetcher{data: []byte("png-bytes")}
	cache := NewCache(dir, fetcher)

	path, err := cache.Ensure("https://example.com/img/iphone-15.png", "iphone_15")
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	if filepath.Base(path) != "iphone_15.png" {
		t.Errorf("cached file name = %s, want iphone_15.png", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "png-bytes" {
		t.Fatalf("cached file content = %q, err = %v", data, err)
	}

	// Second call hits the cache, not the network.
	if _, err := cache.Ensure("https://example.com/img/iphone-15.png", "iphone_15"); err != nil {
		t.Fatalf("Ensure (cached) failed: %v", err)
	}

	if fetcher.calls != 1 {
		t.Errorf("fetcher called %d times, want 1", fetcher.calls)
	}
}

func TestCache_Ensure_EmptyFileIsRefetched(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "iphone_15.png"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	fetcher := &fakeFetcher{data: []byte("png-bytes")}
	cache := NewCache(dir, fetcher)

	if _, err := cache.Ensure("https://example.com/img/iphone-15.png", "iphone_15"); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	if fetcher.calls != 1 {
		t.Errorf("fetcher called %d times, want 1 (empty file is not a cache hit)", fetcher.calls)
	}
}

func TestCache_Ensure_DownloadFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("boom")}
	cache := NewCache(t.TempDir(), fetcher)

	if _, err := cache.Ensure("https://example.com/img/iphone-15.png", "iphone_15"); err == nil {
		t.Fatal("Expected error when download fails, got nil")
	}
}

func TestCache_Ensure_UnsafeModelName(t *testing.T) {
	fetcher := &fakeFetcher{data: []byte("png-bytes")}
	cache := NewCache(t.TempDir(), fetcher)

	path, err := cache.Ensure("https://example.com/img/x.png", "iPhone 15/Pro")
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	if filepath.Base(path) != "iphone-15-pro.png" {
		t.Errorf("cached file name = %s, want iphone-15-pro.png", filepath.Base(path))
	}
}
