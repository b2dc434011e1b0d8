package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/toc"
)

// OutlineItem is one heading in a rendered document's table of contents.
type OutlineItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Depth int    `json:"depth"`
}

// Rendered is a document body converted to HTML along with its outline.
// Heading ids in the HTML match the section ids the extractor produces.
type Rendered struct {
	HTML    string
	Outline []OutlineItem
}

// Render converts a markdown body to HTML and collects its heading outline.
func (e *Extractor) Render(source []byte) (*Rendered, error) {
	doc := e.md.Parser().Parse(text.NewReader(source))

	tree, err := toc.Inspect(doc, source,
		toc.MinDepth(1),
		toc.MaxDepth(MaxSectionDepth),
		toc.Compact(true),
	)
	if err != nil {
		return nil, fmt.Errorf("inspect outline: %w", err)
	}

	var buf bytes.Buffer
	if err := e.md.Renderer().Render(&buf, source, doc); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	var outline []OutlineItem
	flattenOutline(tree.Items, 1, &outline)

	return &Rendered{
		HTML:    buf.String(),
		Outline: outline,
	}, nil
}

// flattenOutline turns the nested TOC tree into a flat, document-ordered list.
func flattenOutline(items toc.Items, depth int, out *[]OutlineItem) {
	for _, item := range items {
		if len(item.Title) > 0 {
			*out = append(*out, OutlineItem{
				ID:    string(item.ID),
				Title: string(item.Title),
				Depth: depth,
			})
		}
		if len(item.Items) > 0 {
			flattenOutline(item.Items, depth+1, out)
		}
	}
}
