package markdown

import (
	"strings"
	"testing"
)

// TestExtract_SectionWithLeadParagraphs covers the basic heading-plus-lead
// shape: a section collects its following paragraphs and stops at the next
// heading of equal depth.
func TestExtract_SectionWithLeadParagraphs(t *testing.T) {
	input := `## Retry Policy

Producers retry on transient errors.

Consumers should be idempotent.

## Deeper

Unrelated text.
`
	extractor := NewExtractor()
	out, err := extractor.Extract([]byte(input))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(out.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(out.Sections))
	}

	s := out.Sections[0]
	if s.Title != "Retry Policy" {
		t.Errorf("Title: expected 'Retry Policy', got %q", s.Title)
	}
	if s.Depth != 2 {
		t.Errorf("Depth: expected 2, got %d", s.Depth)
	}
	if s.ID != "retry-policy" {
		t.Errorf("ID: expected 'retry-policy', got %q", s.ID)
	}
	want := "Producers retry on transient errors. Consumers should be idempotent."
	if s.Content != want {
		t.Errorf("Content: expected %q, got %q", want, s.Content)
	}
	if strings.Contains(s.Content, "Unrelated") {
		t.Error("Content leaked past the next heading")
	}
}

// TestExtract_SectionParagraphCap verifies a section keeps at most three
// lead paragraphs.
func TestExtract_SectionParagraphCap(t *testing.T) {
	input := `## Topic

One.

Two.

Three.

Four.
`
	out, err := NewExtractor().Extract([]byte(input))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(out.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(out.Sections))
	}
	if out.Sections[0].Content != "One. Two. Three." {
		t.Errorf("expected three paragraphs, got %q", out.Sections[0].Content)
	}
}

// TestExtract_SectionStopsAtShallowerHeading checks the stop condition for
// headings above the current depth; a deeper heading does not stop collection.
func TestExtract_SectionStopsAtShallowerHeading(t *testing.T) {
	input := `### Nested

First lead.

# Top Level

Other doc area.
`
	out, err := NewExtractor().Extract([]byte(input))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(out.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(out.Sections))
	}
	if out.Sections[0].Content != "First lead." {
		t.Errorf("expected collection to stop at shallower heading, got %q", out.Sections[0].Content)
	}
}

// TestExtract_DeepHeadingsIgnored verifies headings deeper than level 4 do
// not open sections.
func TestExtract_DeepHeadingsIgnored(t *testing.T) {
	input := `#### Level Four

Text.

##### Level Five

More text.
`
	out, err := NewExtractor().Extract([]byte(input))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(out.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(out.Sections))
	}
	if out.Sections[0].Title != "Level Four" {
		t.Errorf("expected 'Level Four', got %q", out.Sections[0].Title)
	}
}

// TestExtract_EmptyHeadingSkipped verifies headings with no text are skipped
// entirely.
func TestExtract_EmptyHeadingSkipped(t *testing.T) {
	input := "## \n\nText under an empty heading.\n\n## Real\n\nMore.\n"

	out, err := NewExtractor().Extract([]byte(input))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(out.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(out.Sections))
	}
	if out.Sections[0].Title != "Real" {
		t.Errorf("expected 'Real', got %q", out.Sections[0].Title)
	}
}

// TestExtract_DuplicateHeadingsGetDistinctIDs verifies the stateful slugger
// disambiguates repeated heading text within one document.
func TestExtract_DuplicateHeadingsGetDistinctIDs(t *testing.T) {
	input := `## Overview

First.

## Overview

Second.
`
	out, err := NewExtractor().Extract([]byte(input))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(out.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(out.Sections))
	}
	if out.Sections[0].ID == out.Sections[1].ID {
		t.Errorf("duplicate headings share id %q", out.Sections[0].ID)
	}
	if out.Sections[0].ID != "overview" {
		t.Errorf("first id: expected 'overview', got %q", out.Sections[0].ID)
	}
	if out.Sections[1].ID != "overview-1" {
		t.Errorf("second id: expected 'overview-1', got %q", out.Sections[1].ID)
	}
}

// TestExtract_Questions verifies only paragraphs whose trimmed text ends in
// "?" are collected as questions.
func TestExtract_Questions(t *testing.T) {
	input := `Kafka is a distributed log.

Why does this matter?

It decouples producers from consumers.

What about ordering guarantees?
`
	out, err := NewExtractor().Extract([]byte(input))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(out.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d: %v", len(out.Questions), out.Questions)
	}
	if out.Questions[0] != "Why does this matter?" {
		t.Errorf("unexpected first question: %q", out.Questions[0])
	}
	if out.Questions[1] != "What about ordering guarantees?" {
		t.Errorf("unexpected second question: %q", out.Questions[1])
	}
	if len(out.Paragraphs) != 4 {
		t.Errorf("expected 4 paragraphs, got %d", len(out.Paragraphs))
	}
}

// TestExtract_InlineMarkupStripped verifies links, emphasis, and code spans
// flatten to their text content with whitespace collapsed.
func TestExtract_InlineMarkupStripped(t *testing.T) {
	input := "A [link](https://example.com) with *emphasis* and `code`,\nwrapped across lines.\n"

	out, err := NewExtractor().Extract([]byte(input))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(out.Paragraphs) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(out.Paragraphs))
	}
	want := "A link with emphasis and code, wrapped across lines."
	if out.Paragraphs[0] != want {
		t.Errorf("expected %q, got %q", want, out.Paragraphs[0])
	}
}

// TestExtract_NoHeadings verifies a document without qualifying headings
// still yields paragraphs and an empty section list.
func TestExtract_NoHeadings(t *testing.T) {
	input := "Only prose here.\n\nAnd a second paragraph.\n"

	out, err := NewExtractor().Extract([]byte(input))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(out.Sections) != 0 {
		t.Errorf("expected no sections, got %d", len(out.Sections))
	}
	if len(out.Paragraphs) != 2 {
		t.Errorf("expected 2 paragraphs, got %d", len(out.Paragraphs))
	}
}

// TestRender_AnchorsMatchExtraction verifies the rendered HTML carries the
// same heading ids the extractor reports, so search anchors resolve.
func TestRender_AnchorsMatchExtraction(t *testing.T) {
	input := `## Retry Policy

Producers retry on transient errors.
`
	extractor := NewExtractor()

	out, err := extractor.Extract([]byte(input))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	rendered, err := extractor.Render([]byte(input))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	id := out.Sections[0].ID
	if !strings.Contains(rendered.HTML, `id="`+id+`"`) {
		t.Errorf("rendered HTML missing anchor %q: %s", id, rendered.HTML)
	}
	if len(rendered.Outline) != 1 || rendered.Outline[0].ID != id {
		t.Errorf("outline mismatch: %+v", rendered.Outline)
	}
}
