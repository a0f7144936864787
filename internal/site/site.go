// Package site is the seam between the deck pipelines and the hosting
// static-site machinery. Pipelines register content readers keyed by file
// extension and page generators; the host walks the content tree, hands each
// matching file to its reader, and writes the resulting pages.
package site

// Page is what a content reader produces for one source file: a rendered
// HTML body plus the metadata mapping consumed by templates. Metadata always
// carries title, slug, url, save_as, category, template and date, plus one
// game-specific payload key holding the assembled deck model.
type Page struct {
	Body     string
	Metadata map[string]any
}

// Reader turns one deck source file into a Page.
type Reader interface {
	// Extensions lists the file extensions (without dot) this reader claims.
	Extensions() []string
	// Read parses, resolves and assembles a single source file.
	Read(path string) (*Page, error)
}

// Writer writes one output page. Implementations decide how the template
// name and context are rendered.
type Writer interface {
	WritePage(saveAs, template string, context map[string]any) error
}

// Generator produces pages that are not backed by individual content files.
type Generator interface {
	Generate(w Writer) error
}
