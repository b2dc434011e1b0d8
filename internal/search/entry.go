// Package search expands indexed documents into searchable entries, builds a
// weighted fuzzy index over them, and answers interactive queries.
package search

import "github.com/prepstack/docsearch/internal/content"

// Entry kinds. A document expands into one document-kind entry plus one
// section-kind entry per section.
const (
	KindDocument = "document"
	KindSection  = "section"
)

// Entry is one searchable unit. Section-kind entries copy the owning
// document's fields and add the section-specific ones.
type Entry struct {
	Kind           string   `json:"kind"`
	Slug           string   `json:"slug"`
	Title          string   `json:"title"`
	Summary        string   `json:"summary"`
	Tags           []string `json:"tags"`
	Body           string   `json:"body"`
	Questions      []string `json:"questions"`
	SectionID      string   `json:"sectionId,omitempty"`
	SectionTitle   string   `json:"sectionTitle,omitempty"`
	SectionContent string   `json:"sectionContent,omitempty"`
}

// Target returns the navigation target for the entry: the document slug,
// with a fragment pointing at the section anchor for section-kind entries.
func (e Entry) Target() string {
	if e.Kind == KindSection {
		return e.Slug + "#" + e.SectionID
	}
	return e.Slug
}

// Expand derives the entry set from a document array. The transform is pure
// and order-preserving: documents in input order, each followed by its
// sections in document order.
func Expand(docs []content.Document) []Entry {
	var entries []Entry
	for _, doc := range docs {
		base := Entry{
			Kind:      KindDocument,
			Slug:      doc.Slug,
			Title:     doc.Title,
			Summary:   doc.Summary,
			Tags:      doc.Tags,
			Body:      doc.Body,
			Questions: doc.Questions,
		}
		entries = append(entries, base)

		for _, s := range doc.Sections {
			sectionEntry := base
			sectionEntry.Kind = KindSection
			sectionEntry.SectionID = s.ID
			sectionEntry.SectionTitle = s.Title
			sectionEntry.SectionContent = s.Content
			entries = append(entries, sectionEntry)
		}
	}
	return entries
}
