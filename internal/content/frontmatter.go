package content

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Meta is the validated front matter of a content file. Only these keys are
// recognized; anything else in the block is ignored.
type Meta struct {
	Title   string   `yaml:"title"`
	Order   *int     `yaml:"order"`
	Summary string   `yaml:"summary"`
	Tags    []string `yaml:"tags"`
}

// OrderOrDefault returns the declared sort position or DefaultOrder when the
// front matter omits it.
func (m Meta) OrderOrDefault() int {
	if m.Order == nil {
		return DefaultOrder
	}
	return *m.Order
}

const frontMatterDelimiter = "---"

// SplitFrontMatter separates the leading front matter block from the markdown
// body. A file without a front matter block yields a zero Meta and the full
// content as body. A block that opens but never closes, or whose YAML does not
// decode into the recognized keys with the right types, is an error: the build
// treats malformed metadata as fatal rather than guessing.
func SplitFrontMatter(source []byte) (Meta, []byte, error) {
	var meta Meta

	s := strings.TrimPrefix(string(source), "\ufeff")
	if !strings.HasPrefix(s, frontMatterDelimiter) {
		return meta, []byte(s), nil
	}

	parts := strings.SplitN(s, frontMatterDelimiter, 3)
	if len(parts) < 3 {
		return meta, nil, fmt.Errorf("front matter block is not closed")
	}

	if err := yaml.Unmarshal([]byte(parts[1]), &meta); err != nil {
		return Meta{}, nil, fmt.Errorf("parse front matter: %w", err)
	}
	meta.Title = strings.TrimSpace(meta.Title)

	body := strings.TrimPrefix(parts[2], "\n")
	return meta, []byte(body), nil
}
