package site

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Registry maps file extensions to content readers and drives one full
// content pass.
type Registry struct {
	readers    map[string]Reader
	generators []Generator
}

func NewRegistry() *Registry {
	return &Registry{readers: map[string]Reader{}}
}

// RegisterReader claims the reader's extensions. Claiming an extension twice
// is a wiring bug and fails loudly.
func (r *Registry) RegisterReader(reader Reader) error {
	for _, ext := range reader.Extensions() {
		key := strings.ToLower(strings.TrimPrefix(ext, "."))
		if _, exists := r.readers[key]; exists {
			return fmt.Errorf("extension %q already registered", key)
		}
		r.readers[key] = reader
	}
	return nil
}

// RegisterGenerator adds a page generator to the pass.
func (r *Registry) RegisterGenerator(g Generator) {
	r.generators = append(r.generators, g)
}

// Run walks contentDir, feeds every claimed file to its reader in path order,
// writes the resulting pages, then runs the registered generators. A reader
// error aborts the pass: fatal errors stop the whole site build (soft lookup
// failures never reach here, they surface as incomplete pages).
func (r *Registry) Run(contentDir string, w Writer) error {
	var paths []string
	err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		if _, ok := r.readers[ext]; ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("content directory missing, nothing to do", "dir", contentDir)
			return nil
		}
		return fmt.Errorf("walking content dir: %w", err)
	}
	sort.Strings(paths)

	for _, path := range paths {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		reader := r.readers[ext]

		page, err := reader.Read(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		saveAs, _ := page.Metadata["save_as"].(string)
		template, _ := page.Metadata["template"].(string)
		if saveAs == "" {
			return fmt.Errorf("reading %s: page has no save_as", path)
		}

		context := make(map[string]any, len(page.Metadata)+1)
		for k, v := range page.Metadata {
			context[k] = v
		}
		context["body"] = page.Body

		if err := w.WritePage(saveAs, template, context); err != nil {
			return fmt.Errorf("writing %s: %w", saveAs, err)
		}
		slog.Info("page written", "source", path, "save_as", saveAs)
	}

	for _, g := range r.generators {
		if err := g.Generate(w); err != nil {
			return err
		}
	}
	return nil
}
