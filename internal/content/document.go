// Package content defines the document model shared by the index builder,
// the search layer, and the renderer, along with front matter parsing and
// slug-to-file resolution.
package content

// DefaultOrder is the sort position assigned to documents whose front matter
// does not declare one. It sorts after every explicitly ordered document.
const DefaultOrder = 999

// Document is one indexed content file as written to the search artifact.
type Document struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Tags      []string  `json:"tags"`
	Order     int       `json:"order"`
	Body      string    `json:"body"`
	Questions []string  `json:"questions"`
	Sections  []Section `json:"sections"`
}

// Section is a heading plus its lead paragraphs, the unit search results
// link to via URL fragment. IDs are unique within a document, not globally.
type Section struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Depth   int    `json:"depth"`
	Content string `json:"content"`
}
