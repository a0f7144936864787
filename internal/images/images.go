// Package images fetches card art to local asset directories. Fetches are
// idempotent: a file that already exists on disk is never re-downloaded, so
// the whole content pass is safe to re-run.
package images

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"
)

// Fetcher downloads images unless the site is configured to link to the
// upstream URLs instead.
type Fetcher struct {
	// Enabled is false when use_external_links is set; local paths are still
	// computed but nothing is downloaded.
	Enabled bool
	Client  *http.Client
}

func NewFetcher(enabled bool) *Fetcher {
	return &Fetcher{
		Enabled: enabled,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// FileName extracts the image file name from its URL path. An unparseable
// URL yields an empty name, which callers treat as "no image".
func FileName(imgURL string) string {
	u, err := url.Parse(imgURL)
	if err != nil {
		return ""
	}
	return path.Base(u.Path)
}

// LocalPath joins the asset directory with the image's URL-derived file
// name. It never touches the network.
func LocalPath(assetsDir, imgURL string) string {
	name := FileName(imgURL)
	if name == "" || name == "." || name == "/" {
		return ""
	}
	return path.Join(assetsDir, name)
}

// Fetch downloads imgURL to destPath unless the file already exists or
// downloading is disabled. The image lands in a temp file first and is
// renamed into place, so a partially written image never survives.
func (f *Fetcher) Fetch(imgURL, destPath string) error {
	if !f.Enabled || destPath == "" {
		return nil
	}
	if _, err := os.Stat(destPath); err == nil {
		return nil
	}

	slog.Info("fetching image", "url", imgURL)
	resp, err := f.Client.Get(imgURL)
	if err != nil {
		return fmt.Errorf("downloading image %s: %w", imgURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading image %s: status %d", imgURL, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("creating image dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(destPath), "download-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("saving image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("moving image into place: %w", err)
	}
	return nil
}
