package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirWriter writes pages under a root directory. Each page becomes the
// save_as HTML file (body plus template reference) and a sibling .json file
// with the full template context, which is what the theme layer consumes.
type DirWriter struct {
	Root string
}

func NewDirWriter(root string) *DirWriter {
	return &DirWriter{Root: root}
}

func (w *DirWriter) WritePage(saveAs, template string, context map[string]any) error {
	outPath := filepath.Join(w.Root, filepath.FromSlash(saveAs))
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	body, _ := context["body"].(string)
	var sb strings.Builder
	sb.WriteString("<!-- template: ")
	sb.WriteString(template)
	sb.WriteString(" -->\n")
	sb.WriteString(body)
	if err := os.WriteFile(outPath, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("writing page: %w", err)
	}

	data, err := json.MarshalIndent(context, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling page context: %w", err)
	}
	ctxPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".json"
	if err := os.WriteFile(ctxPath, data, 0644); err != nil {
		return fmt.Errorf("writing page context: %w", err)
	}
	return nil
}
