// Package markdown extracts plain text, questions, and heading-anchored
// sections from markdown sources, and renders documents to HTML with the same
// heading anchors so search results resolve on rendered pages.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

const (
	// MaxSectionDepth is the deepest heading level that opens a section.
	MaxSectionDepth = 4

	// MaxSectionParagraphs caps the lead paragraphs collected per section.
	MaxSectionParagraphs = 3
)

// Section is a heading with its lead paragraphs. The ID comes from goldmark's
// auto heading IDs, which dedupe repeated heading text with a numeric suffix
// ("overview", "overview-1") and match the IDs the HTML renderer emits.
type Section struct {
	ID      string
	Title   string
	Depth   int
	Content string
}

// Extracted is the searchable text pulled out of one document body.
type Extracted struct {
	Paragraphs []string
	Questions  []string
	Sections   []Section
}

// Extractor parses markdown bodies into searchable text.
type Extractor struct {
	md goldmark.Markdown
}

// NewExtractor creates an Extractor. Auto heading IDs keep the section
// anchors in sync between extraction and rendering.
func NewExtractor() *Extractor {
	return &Extractor{
		md: goldmark.New(
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
	}
}

// Extract walks the document's top-level nodes and returns its paragraphs in
// order, the paragraphs ending in "?", and its heading-anchored sections.
// Paragraphs with no extractable text and headings with empty titles are
// skipped silently.
func (e *Extractor) Extract(source []byte) (*Extracted, error) {
	doc := e.md.Parser().Parse(text.NewReader(source))

	out := &Extracted{}
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Paragraph:
			txt := flattenText(n, source)
			if txt == "" {
				continue
			}
			out.Paragraphs = append(out.Paragraphs, txt)
			if strings.HasSuffix(txt, "?") {
				out.Questions = append(out.Questions, txt)
			}

		case *ast.Heading:
			if n.Level > MaxSectionDepth {
				continue
			}
			title := flattenText(n, source)
			if title == "" {
				continue
			}
			out.Sections = append(out.Sections, Section{
				ID:      headingID(n),
				Title:   title,
				Depth:   n.Level,
				Content: leadParagraphs(n, source),
			})
		}
	}

	return out, nil
}

// leadParagraphs collects up to MaxSectionParagraphs sibling paragraphs after
// a heading, stopping at any heading of equal or shallower depth.
func leadParagraphs(heading *ast.Heading, source []byte) string {
	var paras []string
	for node := heading.NextSibling(); node != nil; node = node.NextSibling() {
		if h, ok := node.(*ast.Heading); ok && h.Level <= heading.Level {
			break
		}
		p, ok := node.(*ast.Paragraph)
		if !ok {
			continue
		}
		if txt := flattenText(p, source); txt != "" {
			paras = append(paras, txt)
		}
		if len(paras) == MaxSectionParagraphs {
			break
		}
	}
	return strings.Join(paras, " ")
}

// headingID reads the ID goldmark's auto heading ID generator attached
// during parsing.
func headingID(h *ast.Heading) string {
	id, ok := h.AttributeString("id")
	if !ok {
		return ""
	}
	b, ok := id.([]byte)
	if !ok {
		return ""
	}
	return string(b)
}

// flattenText reduces a node's inline content to a single plain-text string:
// link, emphasis, and code markup are stripped to their text, line breaks
// become spaces, and runs of whitespace collapse.
func flattenText(node ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(sb.String()), " ")
}
