// Package media caches referenced product images on local disk.
package media

import (
	"fmt"
	"os"
	"path/filepath"

	"pricewatch/pkg/utils"
)

// Fetcher downloads the raw bytes behind a URL.
type Fetcher interface {
	FetchBytes(url string) ([]byte, error)
}

// Cache stores one image per tracked model under a fixed directory. Images
// are downloaded at most once; later runs reuse the cached file.
type Cache struct {
	dir     string
	fetcher Fetcher
}

// NewCache creates an image cache rooted at dir.
func NewCache(dir string, fetcher Fetcher) *Cache {
	return &Cache{
		dir:     dir,
		fetcher: fetcher,
	}
}

// Ensure returns the local path for a model's image, downloading it only when
// no non-empty cached file exists.
func (c *Cache) Ensure(imageURL, model string) (string, error) {
	target := filepath.Join(c.dir, utils.SafeFileName(model)+".png")

	if info, err := os.Stat(target); err == nil && info.Size() > 0 {
		return target, nil
	}

	data, err := c.fetcher.FetchBytes(imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to download image %s: %w", imageURL, err)
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create images dir: %w", err)
	}

	if err := os.WriteFile(target, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image %s: %w", target, err)
	}

	return target, nil
}
