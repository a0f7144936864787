package keyforge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// loadDeckCache reads keyforge.cache.json: a flat mapping from deck id to
// merged Record. A missing file is a first run; a corrupt file is fatal for
// this pipeline.
func loadDeckCache(path string) (map[string]*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*Record{}, nil
		}
		return nil, fmt.Errorf("reading keyforge cache %s: %w", path, err)
	}
	var cache map[string]*Record
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("parsing keyforge cache %s: %w", path, err)
	}
	if cache == nil {
		cache = map[string]*Record{}
	}
	return cache, nil
}

// saveDeckCache rewrites the cache as a sorted-key, indented snapshot,
// skipping the write when nothing changed.
func saveDeckCache(path string, cache map[string]*Record) error {
	data, err := json.MarshalIndent(cache, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling keyforge cache: %w", err)
	}
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing keyforge cache %s: %w", path, err)
	}
	return nil
}

// loadBaseline returns the cached DoK global stats, fetching and persisting
// them on first run.
func loadBaseline(path string, fetch func() (Baseline, error)) (Baseline, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		var baseline Baseline
		if err := json.Unmarshal(data, &baseline); err != nil {
			return nil, fmt.Errorf("parsing DoK stats cache %s: %w", path, err)
		}
		return baseline, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading DoK stats cache %s: %w", path, err)
	}

	baseline, err := fetch()
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(baseline, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshaling DoK stats: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return nil, fmt.Errorf("writing DoK stats cache %s: %w", path, err)
	}
	return baseline, nil
}
